package wire

import (
	"flight-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	// POST /book-ticket - Commit a booking
	r.Post("/book-ticket", bookingHandler.BookTicket)

	// GET /fetch-bookings/{userId} - Booking history for a user
	r.Get("/fetch-bookings/{userId}", bookingHandler.GetUserBookings)
}
