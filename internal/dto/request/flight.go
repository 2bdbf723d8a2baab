package request

type SearchFlightsRequest struct {
	From       string `validate:"required"`
	To         string `validate:"required"`
	ReturnTrip bool
}
