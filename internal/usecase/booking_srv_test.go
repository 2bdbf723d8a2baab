package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"flight-booking/internal/data/entity"
	"flight-booking/internal/data/repository"
	"flight-booking/internal/dto/request"
	"flight-booking/internal/events"
	"flight-booking/pkg/lock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeFlightRepo serves a fixed catalog from memory.
type fakeFlightRepo struct {
	flights map[uuid.UUID]*entity.Flight
}

func (r *fakeFlightRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Flight, error) {
	return r.flights[id], nil
}

func (r *fakeFlightRepo) FindByNumber(_ context.Context, flightNumber string) (*entity.Flight, error) {
	for _, f := range r.flights {
		if f.FlightNumber == flightNumber {
			return f, nil
		}
	}
	return nil, nil
}

func (r *fakeFlightRepo) FindAll(context.Context) ([]*entity.Flight, error) {
	var out []*entity.Flight
	for _, f := range r.flights {
		out = append(out, f)
	}
	return out, nil
}

func (r *fakeFlightRepo) Search(_ context.Context, from, to string, returnTrip bool) ([]*entity.Flight, error) {
	var out []*entity.Flight
	for _, f := range r.flights {
		if (f.Origin == from && f.Destination == to) ||
			(returnTrip && f.Origin == to && f.Destination == from) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFlightRepo) ReplaceAll(_ context.Context, flights []*entity.Flight) error {
	r.flights = make(map[uuid.UUID]*entity.Flight, len(flights))
	for _, f := range flights {
		r.flights[f.ID] = f
	}
	return nil
}

// fakeBookingStore keeps committed bookings in memory and counts occupancy
// the same way the SQL store does: by summing seat slices.
type fakeBookingStore struct {
	mu        sync.Mutex
	bookings  []*entity.Booking
	createErr error

	// widens the window between reading journey occupancy and committing
	journeyCountDelay time.Duration
}

func (s *fakeBookingStore) Create(_ context.Context, booking *entity.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	s.bookings = append(s.bookings, booking)
	return nil
}

func (s *fakeBookingStore) CountSeatsInPartition(_ context.Context, p entity.Partition) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, b := range s.bookings {
		if b.FlightRef == p.FlightRef &&
			b.JourneyDate.Equal(p.JourneyDate) &&
			b.SeatClass == p.SeatClass {
			count += len(b.Seats)
		}
	}
	return count, nil
}

func (s *fakeBookingStore) CountSeatsForJourney(_ context.Context, flightRef uuid.UUID, journeyDate time.Time) (int, error) {
	if s.journeyCountDelay > 0 {
		time.Sleep(s.journeyCountDelay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, b := range s.bookings {
		if b.FlightRef == flightRef && b.JourneyDate.Equal(journeyDate) {
			count += len(b.Seats)
		}
	}
	return count, nil
}

func (s *fakeBookingStore) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Booking
	for _, b := range s.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *fakeBookingStore) all() []*entity.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*entity.Booking(nil), s.bookings...)
}

type capturedEvent struct {
	topic   string
	key     string
	payload any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []capturedEvent
}

func (p *fakePublisher) Publish(_ context.Context, topic, key string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, capturedEvent{topic: topic, key: key, payload: payload})
	return nil
}

var testFlightID = uuid.MustParse("8a1f9d32-5b6c-4e7d-8f90-a1b2c3d4e5f6")

func newTestFlight() *entity.Flight {
	return &entity.Flight{
		Base:          entity.Base{ID: testFlightID},
		FlightName:    "IndiGo",
		FlightNumber:  "IN104",
		Origin:        "Delhi",
		Destination:   "Mumbai",
		DepartureTime: "06:00",
		ArrivalTime:   "08:15",
		BasePrice:     2500,
		TotalSeats:    60,
	}
}

func newTestService(t *testing.T, store *fakeBookingStore, opts ...BookingServiceOption) BookingService {
	t.Helper()
	repo := &repository.Repository{
		Flight:  &fakeFlightRepo{flights: map[uuid.UUID]*entity.Flight{testFlightID: newTestFlight()}},
		Booking: store,
	}
	return NewBookingService(repo, lock.NewKeyedManager(), time.Second, zap.NewNop(), opts...)
}

func newBookRequest(passengers int, seatClass string) *request.BookTicketRequest {
	reqPassengers := make([]request.PassengerRequest, passengers)
	for i := range reqPassengers {
		reqPassengers[i] = request.PassengerRequest{Name: fmt.Sprintf("Passenger %d", i+1), Age: 30}
	}
	return &request.BookTicketRequest{
		User:        uuid.NewString(),
		Flight:      testFlightID.String(),
		FlightName:  "IndiGo",
		FlightID:    "IN104",
		Departure:   "Delhi",
		Destination: "Mumbai",
		Email:       "traveler@example.com",
		Mobile:      "9876543210",
		Passengers:  reqPassengers,
		JourneyDate: "2026-09-15",
		JourneyTime: "06:00",
		SeatClass:   seatClass,
	}
}

func TestBookTicket_AllocatesSequentialSeats(t *testing.T) {
	store := &fakeBookingStore{}
	svc := newTestService(t, store)

	first, err := svc.BookTicket(context.Background(), newBookRequest(3, "business"))
	require.NoError(t, err)
	assert.Equal(t, []string{"B-1", "B-2", "B-3"}, first.Seats)
	assert.Equal(t, int64(22500), first.TotalPrice) // 2500 * 3 * 3

	second, err := svc.BookTicket(context.Background(), newBookRequest(2, "business"))
	require.NoError(t, err)
	assert.Equal(t, []string{"B-4", "B-5"}, second.Seats)
	assert.Equal(t, int64(15000), second.TotalPrice)
}

func TestBookTicket_EconomyEndToEnd(t *testing.T) {
	store := &fakeBookingStore{}
	svc := newTestService(t, store)

	first, err := svc.BookTicket(context.Background(), newBookRequest(3, "economy"))
	require.NoError(t, err)
	assert.Equal(t, []string{"E-1", "E-2", "E-3"}, first.Seats)
	assert.Equal(t, int64(7500), first.TotalPrice)

	second, err := svc.BookTicket(context.Background(), newBookRequest(2, "economy"))
	require.NoError(t, err)
	assert.Equal(t, []string{"E-4", "E-5"}, second.Seats)
	assert.Equal(t, int64(5000), second.TotalPrice)
}

func TestBookTicket_ConcurrentRequestsGetUniqueSeats(t *testing.T) {
	store := &fakeBookingStore{}
	svc := newTestService(t, store)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.BookTicket(context.Background(), newBookRequest(1, "economy"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	seen := make(map[string]bool)
	for _, b := range store.all() {
		for _, seat := range b.Seats {
			assert.False(t, seen[seat], "seat %s assigned twice", seat)
			seen[seat] = true
		}
	}
	assert.Len(t, seen, 10)
	for i := 1; i <= 10; i++ {
		assert.True(t, seen[fmt.Sprintf("E-%d", i)], "expected E-%d to be assigned", i)
	}
}

func TestBookTicket_PartitionsAreIndependent(t *testing.T) {
	store := &fakeBookingStore{}
	svc := newTestService(t, store)

	economy, err := svc.BookTicket(context.Background(), newBookRequest(2, "economy"))
	require.NoError(t, err)
	assert.Equal(t, []string{"E-1", "E-2"}, economy.Seats)

	// same flight and date, other class starts its own numbering
	business, err := svc.BookTicket(context.Background(), newBookRequest(1, "business"))
	require.NoError(t, err)
	assert.Equal(t, []string{"B-1"}, business.Seats)

	// other journey date, numbering restarts
	otherDay := newBookRequest(1, "economy")
	otherDay.JourneyDate = "2026-09-16"
	resp, err := svc.BookTicket(context.Background(), otherDay)
	require.NoError(t, err)
	assert.Equal(t, []string{"E-1"}, resp.Seats)
}

func TestBookTicket_UnknownClassFallsBackToEconomyRates(t *testing.T) {
	store := &fakeBookingStore{}
	svc := newTestService(t, store)

	_, err := svc.BookTicket(context.Background(), newBookRequest(2, "economy"))
	require.NoError(t, err)

	// unknown class prices as economy but occupies its own partition, so its
	// numbering does not continue from the economy bookings
	resp, err := svc.BookTicket(context.Background(), newBookRequest(1, "super-deluxe"))
	require.NoError(t, err)
	assert.Equal(t, []string{"E-1"}, resp.Seats)
	assert.Equal(t, int64(2500), resp.TotalPrice)

	bookings := store.all()
	last := bookings[len(bookings)-1]
	assert.Equal(t, entity.SeatClass("super-deluxe"), last.SeatClass)
}

func TestBookTicket_RejectsEmptyManifest(t *testing.T) {
	store := &fakeBookingStore{}
	svc := newTestService(t, store)

	req := newBookRequest(1, "economy")
	req.Passengers = nil

	_, err := svc.BookTicket(context.Background(), req)

	var validationErr *entity.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Empty(t, store.all(), "a rejected booking must not consume seats")
}

func TestBookTicket_RejectsBlankPassengerName(t *testing.T) {
	store := &fakeBookingStore{}
	svc := newTestService(t, store)

	req := newBookRequest(2, "economy")
	req.Passengers[1].Name = "   "

	_, err := svc.BookTicket(context.Background(), req)

	var validationErr *entity.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "passengers[1].name")
	assert.Empty(t, store.all())
}

func TestBookTicket_FlightNotFound(t *testing.T) {
	store := &fakeBookingStore{}
	svc := newTestService(t, store)

	req := newBookRequest(1, "economy")
	req.Flight = uuid.NewString()

	_, err := svc.BookTicket(context.Background(), req)
	assert.ErrorIs(t, err, entity.ErrFlightNotFound)
}

func TestBookTicket_FailedPersistLeavesNoTrace(t *testing.T) {
	store := &fakeBookingStore{createErr: errors.New("connection reset")}
	svc := newTestService(t, store)

	_, err := svc.BookTicket(context.Background(), newBookRequest(2, "economy"))
	require.Error(t, err)

	// occupancy unchanged: the next attempt starts from seat 1
	store.mu.Lock()
	store.createErr = nil
	store.mu.Unlock()

	resp, err := svc.BookTicket(context.Background(), newBookRequest(2, "economy"))
	require.NoError(t, err)
	assert.Equal(t, []string{"E-1", "E-2"}, resp.Seats)
}

func TestBookTicket_LockContentionTimesOut(t *testing.T) {
	store := &fakeBookingStore{}
	locks := lock.NewKeyedManager()
	repo := &repository.Repository{
		Flight:  &fakeFlightRepo{flights: map[uuid.UUID]*entity.Flight{testFlightID: newTestFlight()}},
		Booking: store,
	}
	svc := NewBookingService(repo, locks, 30*time.Millisecond, zap.NewNop())

	partition := entity.Partition{
		FlightRef:   testFlightID,
		JourneyDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		SeatClass:   entity.SeatClassEconomy,
	}
	release, err := locks.Acquire(context.Background(), partition.Key())
	require.NoError(t, err)
	defer release()

	_, err = svc.BookTicket(context.Background(), newBookRequest(1, "economy"))
	assert.ErrorIs(t, err, entity.ErrLockTimeout)
	assert.Empty(t, store.all())
}

func TestBookTicket_StrictCapacity(t *testing.T) {
	store := &fakeBookingStore{}
	flight := newTestFlight()
	flight.TotalSeats = 3
	repo := &repository.Repository{
		Flight:  &fakeFlightRepo{flights: map[uuid.UUID]*entity.Flight{testFlightID: flight}},
		Booking: store,
	}
	svc := NewBookingService(repo, lock.NewKeyedManager(), time.Second, zap.NewNop(), WithStrictCapacity())

	_, err := svc.BookTicket(context.Background(), newBookRequest(2, "economy"))
	require.NoError(t, err)

	// capacity is shared across classes of the journey
	_, err = svc.BookTicket(context.Background(), newBookRequest(2, "business"))
	assert.ErrorIs(t, err, entity.ErrCapacityExceeded)

	_, err = svc.BookTicket(context.Background(), newBookRequest(1, "business"))
	assert.NoError(t, err)
}

func TestBookTicket_StrictCapacityConcurrentAcrossClasses(t *testing.T) {
	store := &fakeBookingStore{journeyCountDelay: 50 * time.Millisecond}
	flight := newTestFlight()
	flight.TotalSeats = 2
	repo := &repository.Repository{
		Flight:  &fakeFlightRepo{flights: map[uuid.UUID]*entity.Flight{testFlightID: flight}},
		Booking: store,
	}
	svc := NewBookingService(repo, lock.NewKeyedManager(), time.Second, zap.NewNop(), WithStrictCapacity())

	// both hold their own class partition; capacity exclusivity must span
	// the whole journey or both read zero occupancy and both commit
	results := make(chan error, 2)
	for _, class := range []string{"economy", "business"} {
		go func(class string) {
			_, err := svc.BookTicket(context.Background(), newBookRequest(2, class))
			results <- err
		}(class)
	}

	var failures int
	for i := 0; i < 2; i++ {
		if err := <-results; err != nil {
			assert.ErrorIs(t, err, entity.ErrCapacityExceeded)
			failures++
		}
	}
	assert.Equal(t, 1, failures, "exactly one of the two bookings must be rejected")

	committed := 0
	for _, b := range store.all() {
		committed += len(b.Seats)
	}
	assert.LessOrEqual(t, committed, flight.TotalSeats)
}

func TestBookTicket_OverbookingAllowedByDefault(t *testing.T) {
	store := &fakeBookingStore{}
	flight := newTestFlight()
	flight.TotalSeats = 1
	repo := &repository.Repository{
		Flight:  &fakeFlightRepo{flights: map[uuid.UUID]*entity.Flight{testFlightID: flight}},
		Booking: store,
	}
	svc := NewBookingService(repo, lock.NewKeyedManager(), time.Second, zap.NewNop())

	_, err := svc.BookTicket(context.Background(), newBookRequest(3, "economy"))
	assert.NoError(t, err)
}

func TestBookTicket_PublishesEvent(t *testing.T) {
	store := &fakeBookingStore{}
	publisher := &fakePublisher{}
	svc := newTestService(t, store,
		WithPublisher(publisher, "booking_events", "booking_notifications"))

	resp, err := svc.BookTicket(context.Background(), newBookRequest(1, "economy"))
	require.NoError(t, err)

	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	require.Len(t, publisher.events, 2)
	assert.Equal(t, "booking_events", publisher.events[0].topic)
	assert.Equal(t, resp.OrderID, publisher.events[0].key)

	event, ok := publisher.events[0].payload.(events.BookingEvent)
	require.True(t, ok)
	assert.Equal(t, events.EventTicketBooked, event.Type)
	assert.Equal(t, resp.Seats, event.Seats)
}

func TestGetUserBookings(t *testing.T) {
	store := &fakeBookingStore{}
	svc := newTestService(t, store)

	req := newBookRequest(2, "economy")
	_, err := svc.BookTicket(context.Background(), req)
	require.NoError(t, err)

	bookings, err := svc.GetUserBookings(context.Background(), req.User)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, []string{"E-1", "E-2"}, bookings[0].Seats)

	other, err := svc.GetUserBookings(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, other)
}
