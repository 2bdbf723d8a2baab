package adaptor

import (
	"errors"
	"net/http"
	"strconv"

	"flight-booking/internal/data/entity"
	"flight-booking/internal/dto/request"
	"flight-booking/internal/usecase"
	"flight-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type FlightHandler struct {
	service usecase.FlightService
	log     *zap.Logger
}

func NewFlightHandler(service usecase.FlightService, log *zap.Logger) *FlightHandler {
	return &FlightHandler{
		service: service,
		log:     log.With(zap.String("handler", "flight")),
	}
}

// FetchFlight handles GET /fetch-flight/{flightId}
func (h *FlightHandler) FetchFlight(w http.ResponseWriter, r *http.Request) {
	flightID := chi.URLParam(r, "flightId")
	if flightID == "" {
		utils.ResponseBadRequest(w, "Flight ID is required", nil)
		return
	}

	flight, err := h.service.FetchFlight(r.Context(), flightID)
	if err != nil {
		h.handleServiceError(w, err, "fetch flight")
		return
	}

	utils.ResponseSuccess(w, "success", flight)
}

// ListFlights handles GET /fetch-flights
func (h *FlightHandler) ListFlights(w http.ResponseWriter, r *http.Request) {
	flights, err := h.service.ListFlights(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list flights")
		return
	}

	utils.ResponseSuccess(w, "success", flights)
}

// SearchFlights handles GET /search-flights?from=Delhi&to=Mumbai&returnTrip=false
func (h *FlightHandler) SearchFlights(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	returnTrip, _ := strconv.ParseBool(query.Get("returnTrip"))

	req := &request.SearchFlightsRequest{
		From:       query.Get("from"),
		To:         query.Get("to"),
		ReturnTrip: returnTrip,
	}

	flights, err := h.service.SearchFlights(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "search flights")
		return
	}

	utils.ResponseSuccess(w, "success", flights)
}

// SeedFlights handles GET /seed-flights
func (h *FlightHandler) SeedFlights(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.SeedFlights(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "seed flights")
		return
	}

	utils.ResponseSuccess(w, "Flights seeded", map[string]int{"count": count})
}

func (h *FlightHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	var validationErr *entity.ValidationError

	switch {
	case errors.As(err, &validationErr):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)

	case errors.Is(err, entity.ErrFlightNotFound):
		h.log.Warn(operation+" failed - flight not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
