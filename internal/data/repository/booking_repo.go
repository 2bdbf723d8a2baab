package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"flight-booking/internal/data/entity"
	"flight-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// Create persists the whole booking, seats included, as a single insert.
	// The row either lands complete or not at all; the commit flow relies on
	// that for atomicity.
	Create(ctx context.Context, booking *entity.Booking) error

	// CountSeatsInPartition is the partition occupancy: the sum of assigned
	// seat codes over every booking in the (flight, date, class) triple.
	CountSeatsInPartition(ctx context.Context, p entity.Partition) (int, error)

	// CountSeatsForJourney counts assigned seats across all classes of one
	// flight and date; used only by the strict-capacity mode.
	CountSeatsForJourney(ctx context.Context, flightRef uuid.UUID, journeyDate time.Time) (int, error)

	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	passengers, err := json.Marshal(booking.Passengers)
	if err != nil {
		return fmt.Errorf("encode passengers for booking %s: %w", booking.OrderID, err)
	}

	query := `
		INSERT INTO bookings (id, order_id, user_id, flight_ref, flight_name, flight_number,
		                      origin, destination, email, mobile, passengers, total_price,
		                      journey_date, journey_time, seat_class, seats, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	_, err = r.db.Exec(ctx, query,
		booking.ID,
		booking.OrderID,
		booking.UserID,
		booking.FlightRef,
		booking.FlightName,
		booking.FlightNumber,
		booking.Origin,
		booking.Destination,
		booking.Email,
		booking.Mobile,
		passengers,
		booking.TotalPrice,
		booking.JourneyDate,
		booking.JourneyTime,
		booking.SeatClass,
		booking.Seats,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("order_id", booking.OrderID),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.OrderID, err)
	}

	return nil
}

func (r *bookingRepository) CountSeatsInPartition(ctx context.Context, p entity.Partition) (int, error) {
	query := `
		SELECT COALESCE(SUM(cardinality(seats)), 0)
		FROM bookings
		WHERE flight_ref = $1 AND journey_date = $2 AND seat_class = $3
	`

	var count int
	err := r.db.QueryRow(ctx, query, p.FlightRef, p.JourneyDate, p.SeatClass).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count seats in partition",
			zap.Error(err),
			zap.String("partition", p.Key()),
		)
		return 0, fmt.Errorf("count seats in partition %s: %w", p.Key(), err)
	}

	return count, nil
}

func (r *bookingRepository) CountSeatsForJourney(ctx context.Context, flightRef uuid.UUID, journeyDate time.Time) (int, error) {
	query := `
		SELECT COALESCE(SUM(cardinality(seats)), 0)
		FROM bookings
		WHERE flight_ref = $1 AND journey_date = $2
	`

	var count int
	err := r.db.QueryRow(ctx, query, flightRef, journeyDate).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count seats for journey",
			zap.Error(err),
			zap.String("flight_ref", flightRef.String()),
		)
		return 0, fmt.Errorf("count seats for flight %s: %w", flightRef.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT id, order_id, user_id, flight_ref, flight_name, flight_number,
		       origin, destination, email, mobile, passengers, total_price,
		       journey_date, journey_time, seat_class, seats, created_at, updated_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		var passengers []byte
		err := rows.Scan(
			&booking.ID,
			&booking.OrderID,
			&booking.UserID,
			&booking.FlightRef,
			&booking.FlightName,
			&booking.FlightNumber,
			&booking.Origin,
			&booking.Destination,
			&booking.Email,
			&booking.Mobile,
			&passengers,
			&booking.TotalPrice,
			&booking.JourneyDate,
			&booking.JourneyTime,
			&booking.SeatClass,
			&booking.Seats,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		if err := json.Unmarshal(passengers, &booking.Passengers); err != nil {
			return nil, fmt.Errorf("decode passengers for booking %s: %w", booking.OrderID, err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, rows.Err()
}
