package response

import (
	"time"

	"flight-booking/internal/data/entity"
)

// BookingConfirmation is what a successful commit returns: the identifiers,
// the seats actually assigned and the recomputed price.
type BookingConfirmation struct {
	BookingID  string   `json:"bookingId"`
	OrderID    string   `json:"orderId"`
	Seats      []string `json:"seats"`
	TotalPrice int64    `json:"totalPrice"`
}

type BookingResponse struct {
	ID           string             `json:"id"`
	OrderID      string             `json:"orderId"`
	FlightName   string             `json:"flightName"`
	FlightNumber string             `json:"flightId"`
	Origin       string             `json:"origin"`
	Destination  string             `json:"destination"`
	Email        string             `json:"email"`
	Mobile       string             `json:"mobile"`
	Passengers   []entity.Passenger `json:"passengers"`
	JourneyDate  string             `json:"journeyDate"`
	JourneyTime  string             `json:"journeyTime"`
	SeatClass    entity.SeatClass   `json:"seatClass"`
	Seats        []string           `json:"seats"`
	TotalPrice   int64              `json:"totalPrice"`
	CreatedAt    time.Time          `json:"createdAt"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID.String(),
		OrderID:      b.OrderID,
		FlightName:   b.FlightName,
		FlightNumber: b.FlightNumber,
		Origin:       b.Origin,
		Destination:  b.Destination,
		Email:        b.Email,
		Mobile:       b.Mobile,
		Passengers:   b.Passengers,
		JourneyDate:  b.JourneyDate.Format("2006-01-02"),
		JourneyTime:  b.JourneyTime,
		SeatClass:    b.SeatClass,
		Seats:        b.Seats,
		TotalPrice:   b.TotalPrice,
		CreatedAt:    b.CreatedAt,
	}
}

func BookingsToResponse(bookings []*entity.Booking) []BookingResponse {
	out := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = BookingToResponse(b)
	}
	return out
}
