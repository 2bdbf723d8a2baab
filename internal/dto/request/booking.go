package request

// BookTicketRequest mirrors the body the booking page has always posted.
// TotalPrice is accepted for compatibility but ignored; the server recomputes
// the price from the catalog.
type BookTicketRequest struct {
	User        string             `json:"user" validate:"required,uuid4"`
	Flight      string             `json:"flight" validate:"required,uuid4"`
	FlightName  string             `json:"flightName"`
	FlightID    string             `json:"flightId"`
	Departure   string             `json:"departure"`
	Destination string             `json:"destination"`
	Email       string             `json:"email" validate:"required,email"`
	Mobile      string             `json:"mobile" validate:"required"`
	Passengers  []PassengerRequest `json:"passengers" validate:"required,min=1,dive"`
	TotalPrice  int64              `json:"totalPrice"`
	JourneyDate string             `json:"journeyDate" validate:"required,datetime=2006-01-02"`
	JourneyTime string             `json:"journeyTime"`
	SeatClass   string             `json:"seatClass" validate:"required"`
}

type PassengerRequest struct {
	Name string `json:"name" validate:"required"`
	Age  int    `json:"age" validate:"gte=0"`
}
