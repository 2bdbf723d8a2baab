package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Passenger struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

type Booking struct {
	Base
	OrderID      string      `db:"order_id"`
	UserID       uuid.UUID   `db:"user_id"`
	FlightRef    uuid.UUID   `db:"flight_ref"`
	FlightName   string      `db:"flight_name"`
	FlightNumber string      `db:"flight_number"`
	Origin       string      `db:"origin"`
	Destination  string      `db:"destination"`
	Email        string      `db:"email"`
	Mobile       string      `db:"mobile"`
	Passengers   []Passenger `db:"passengers"`
	TotalPrice   int64       `db:"total_price"`
	JourneyDate  time.Time   `db:"journey_date"`
	JourneyTime  string      `db:"journey_time"`
	SeatClass    SeatClass   `db:"seat_class"`
	Seats        []string    `db:"seats"` // one code per passenger, manifest order
}

// Partition is the unit of seat-allocation contention: seat-code uniqueness
// and occupancy counting are scoped to one (flight, journey date, seat class)
// triple.
type Partition struct {
	FlightRef   uuid.UUID
	JourneyDate time.Time
	SeatClass   SeatClass
}

func (p Partition) Key() string {
	return fmt.Sprintf("%s:%s:%s", p.FlightRef, p.JourneyDate.Format("2006-01-02"), p.SeatClass)
}

// JourneyKey spans every class of the flight and date. The strict-capacity
// check reads occupancy across classes, so it must serialize at this level,
// not per class.
func (p Partition) JourneyKey() string {
	return fmt.Sprintf("%s:%s", p.FlightRef, p.JourneyDate.Format("2006-01-02"))
}
