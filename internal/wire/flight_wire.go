package wire

import (
	"flight-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireFlight(r chi.Router, flightHandler *adaptor.FlightHandler) {
	// GET /fetch-flight/{flightId} - Fetch a single flight by ID or number
	r.Get("/fetch-flight/{flightId}", flightHandler.FetchFlight)

	// GET /fetch-flights - List the whole catalog
	r.Get("/fetch-flights", flightHandler.ListFlights)

	// GET /search-flights?from=&to=&returnTrip= - Search by city pair
	r.Get("/search-flights", flightHandler.SearchFlights)

	// GET /seed-flights - Rebuild the demo catalog
	r.Get("/seed-flights", flightHandler.SeedFlights)
}
