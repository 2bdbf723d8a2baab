package repository

import (
	"context"
	"fmt"

	"flight-booking/internal/data/entity"
	"flight-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type FlightRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Flight, error)
	FindByNumber(ctx context.Context, flightNumber string) (*entity.Flight, error)
	FindAll(ctx context.Context) ([]*entity.Flight, error)
	Search(ctx context.Context, from, to string, returnTrip bool) ([]*entity.Flight, error)

	// ReplaceAll swaps the whole catalog in one transaction; used by seeding.
	ReplaceAll(ctx context.Context, flights []*entity.Flight) error
}

type flightRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFlightRepository(db database.PgxIface, log *zap.Logger) FlightRepository {
	return &flightRepository{
		db:  db,
		log: log.With(zap.String("repository", "flight")),
	}
}

const flightColumns = `id, flight_name, flight_number, origin, destination, departure_time, arrival_time, base_price, total_seats, created_at, updated_at`

func scanFlight(row pgx.Row) (*entity.Flight, error) {
	var f entity.Flight
	err := row.Scan(
		&f.ID,
		&f.FlightName,
		&f.FlightNumber,
		&f.Origin,
		&f.Destination,
		&f.DepartureTime,
		&f.ArrivalTime,
		&f.BasePrice,
		&f.TotalSeats,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *flightRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights WHERE id = $1`

	flight, err := scanFlight(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find flight by ID",
			zap.Error(err),
			zap.String("flight_id", id.String()),
		)
		return nil, fmt.Errorf("find flight by ID %s: %w", id.String(), err)
	}

	return flight, nil
}

func (r *flightRepository) FindByNumber(ctx context.Context, flightNumber string) (*entity.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights WHERE flight_number = $1`

	flight, err := scanFlight(r.db.QueryRow(ctx, query, flightNumber))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find flight by number",
			zap.Error(err),
			zap.String("flight_number", flightNumber),
		)
		return nil, fmt.Errorf("find flight by number %s: %w", flightNumber, err)
	}

	return flight, nil
}

func (r *flightRepository) FindAll(ctx context.Context) ([]*entity.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights ORDER BY origin, destination, flight_number`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list flights", zap.Error(err))
		return nil, fmt.Errorf("list flights: %w", err)
	}
	defer rows.Close()

	return collectFlights(rows)
}

func (r *flightRepository) Search(ctx context.Context, from, to string, returnTrip bool) ([]*entity.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights WHERE origin = $1 AND destination = $2`
	args := []any{from, to}

	if returnTrip {
		query = `SELECT ` + flightColumns + ` FROM flights
			WHERE (origin = $1 AND destination = $2) OR (origin = $2 AND destination = $1)`
	}

	query += ` ORDER BY departure_time`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to search flights",
			zap.Error(err),
			zap.String("from", from),
			zap.String("to", to),
			zap.Bool("return_trip", returnTrip),
		)
		return nil, fmt.Errorf("search flights %s-%s: %w", from, to, err)
	}
	defer rows.Close()

	return collectFlights(rows)
}

func collectFlights(rows pgx.Rows) ([]*entity.Flight, error) {
	var flights []*entity.Flight
	for rows.Next() {
		flight, err := scanFlight(rows)
		if err != nil {
			return nil, fmt.Errorf("scan flight row: %w", err)
		}
		flights = append(flights, flight)
	}
	return flights, rows.Err()
}

func (r *flightRepository) ReplaceAll(ctx context.Context, flights []*entity.Flight) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM flights`); err != nil {
		r.log.Error("Failed to clear flights", zap.Error(err))
		return fmt.Errorf("clear flights: %w", err)
	}

	query := `
		INSERT INTO flights (id, flight_name, flight_number, origin, destination,
		                     departure_time, arrival_time, base_price, total_seats,
		                     created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	for _, f := range flights {
		if _, err := tx.Exec(ctx, query,
			f.ID,
			f.FlightName,
			f.FlightNumber,
			f.Origin,
			f.Destination,
			f.DepartureTime,
			f.ArrivalTime,
			f.BasePrice,
			f.TotalSeats,
			f.CreatedAt,
			f.UpdatedAt,
		); err != nil {
			r.log.Error("Failed to insert flight",
				zap.Error(err),
				zap.String("flight_number", f.FlightNumber),
			)
			return fmt.Errorf("insert flight %s: %w", f.FlightNumber, err)
		}
	}

	return tx.Commit(ctx)
}
