package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"flight-booking/internal/cache"
	"flight-booking/internal/data/entity"
	"flight-booking/internal/data/repository"
	"flight-booking/internal/dto/request"
	"flight-booking/internal/dto/response"
	"flight-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FlightService interface {
	FetchFlight(ctx context.Context, flightID string) (*response.FlightResponse, error)
	ListFlights(ctx context.Context) ([]response.FlightResponse, error)
	SearchFlights(ctx context.Context, req *request.SearchFlightsRequest) ([]response.FlightResponse, error)
	SeedFlights(ctx context.Context) (int, error)
}

type flightService struct {
	repo  *repository.Repository
	cache cache.FlightCache
	log   *zap.Logger
}

func NewFlightService(repo *repository.Repository, flightCache cache.FlightCache, log *zap.Logger) FlightService {
	return &flightService{
		repo:  repo,
		cache: flightCache,
		log:   log.With(zap.String("service", "flight")),
	}
}

// FetchFlight accepts either the catalog row's UUID or the airline flight
// number such as "IN104".
func (s *flightService) FetchFlight(ctx context.Context, flightID string) (*response.FlightResponse, error) {
	var (
		flight *entity.Flight
		err    error
	)

	if id, parseErr := uuid.Parse(flightID); parseErr == nil {
		flight, err = s.repo.Flight.FindByID(ctx, id)
	} else {
		flight, err = s.repo.Flight.FindByNumber(ctx, flightID)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch flight %s: %w", flightID, err)
	}
	if flight == nil {
		return nil, entity.ErrFlightNotFound
	}

	resp := response.FlightToResponse(flight)
	return &resp, nil
}

func (s *flightService) ListFlights(ctx context.Context) ([]response.FlightResponse, error) {
	flights, err := s.repo.Flight.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list flights: %w", err)
	}
	return response.FlightsToResponse(flights), nil
}

func (s *flightService) SearchFlights(ctx context.Context, req *request.SearchFlightsRequest) ([]response.FlightResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, entity.NewValidationError(errs)
	}

	if s.cache != nil {
		cached, err := s.cache.GetSearch(ctx, req.From, req.To, req.ReturnTrip)
		if err != nil {
			s.log.Warn("Flight search cache read failed", zap.Error(err))
		} else if cached != nil {
			return response.FlightsToResponse(cached), nil
		}
	}

	flights, err := s.repo.Flight.Search(ctx, req.From, req.To, req.ReturnTrip)
	if err != nil {
		return nil, fmt.Errorf("search flights %s->%s: %w", req.From, req.To, err)
	}

	if s.cache != nil {
		if err := s.cache.SetSearch(ctx, req.From, req.To, req.ReturnTrip, flights); err != nil {
			s.log.Warn("Flight search cache write failed", zap.Error(err))
		}
	}

	return response.FlightsToResponse(flights), nil
}

var seedCities = []string{
	"Delhi", "Mumbai", "Bangalore", "Chennai", "Kolkata", "Hyderabad",
	"Pune", "Ahmedabad", "Jaipur", "Goa", "Lucknow", "Kochi",
}

var seedAirlines = []string{"IndiGo", "AirAsia", "SpiceJet", "Akasa", "GoAir"}

var seedTimes = []struct {
	departure string
	arrival   string
}{
	{"06:00", "08:15"},
	{"09:30", "11:45"},
	{"13:00", "15:10"},
	{"17:20", "19:35"},
	{"21:00", "23:05"},
}

// SeedFlights rebuilds the demo catalog: one to three flights for every
// ordered city pair. The old catalog is replaced in a single transaction and
// cached searches are dropped so stale results never outlive a reseed.
func (s *flightService) SeedFlights(ctx context.Context) (int, error) {
	var flights []*entity.Flight
	counter := 100
	now := time.Now()

	for _, from := range seedCities {
		for _, to := range seedCities {
			if from == to {
				continue
			}
			for i := 0; i < 1+rand.Intn(3); i++ {
				airline := seedAirlines[rand.Intn(len(seedAirlines))]
				slot := seedTimes[rand.Intn(len(seedTimes))]
				flights = append(flights, &entity.Flight{
					Base: entity.Base{
						ID:        uuid.New(),
						CreatedAt: now,
						UpdatedAt: now,
					},
					FlightName:    fmt.Sprintf("%s %d", airline, counter),
					FlightNumber:  fmt.Sprintf("%s%d", strings.ToUpper(airline[:2]), counter),
					Origin:        from,
					Destination:   to,
					DepartureTime: slot.departure,
					ArrivalTime:   slot.arrival,
					BasePrice:     int64(2500 + rand.Intn(2000)),
					TotalSeats:    40 + rand.Intn(40),
				})
				counter++
			}
		}
	}

	if err := s.repo.Flight.ReplaceAll(ctx, flights); err != nil {
		return 0, fmt.Errorf("seed flights: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidateSearches(ctx); err != nil {
			s.log.Warn("Failed to invalidate flight search cache", zap.Error(err))
		}
	}

	s.log.Info("Flight catalog seeded", zap.Int("flights", len(flights)))
	return len(flights), nil
}
