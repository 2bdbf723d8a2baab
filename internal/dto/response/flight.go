package response

import "flight-booking/internal/data/entity"

// FlightResponse keeps the field names the original web client reads.
type FlightResponse struct {
	ID            string `json:"id"`
	FlightName    string `json:"flightName"`
	FlightID      string `json:"flightId"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
	BasePrice     int64  `json:"basePrice"`
	TotalSeats    int    `json:"totalSeats"`
}

func FlightToResponse(f *entity.Flight) FlightResponse {
	return FlightResponse{
		ID:            f.ID.String(),
		FlightName:    f.FlightName,
		FlightID:      f.FlightNumber,
		Origin:        f.Origin,
		Destination:   f.Destination,
		DepartureTime: f.DepartureTime,
		ArrivalTime:   f.ArrivalTime,
		BasePrice:     f.BasePrice,
		TotalSeats:    f.TotalSeats,
	}
}

func FlightsToResponse(flights []*entity.Flight) []FlightResponse {
	out := make([]FlightResponse, len(flights))
	for i, f := range flights {
		out[i] = FlightToResponse(f)
	}
	return out
}
