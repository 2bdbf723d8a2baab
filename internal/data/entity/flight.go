package entity

type Flight struct {
	Base
	FlightName    string `db:"flight_name"`   // display name, e.g. "IndiGo 100"
	FlightNumber  string `db:"flight_number"` // e.g. "IN100"
	Origin        string `db:"origin"`
	Destination   string `db:"destination"`
	DepartureTime string `db:"departure_time"` // "06:00 AM"
	ArrivalTime   string `db:"arrival_time"`
	BasePrice     int64  `db:"base_price"`
	TotalSeats    int    `db:"total_seats"`
}
