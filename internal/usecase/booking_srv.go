package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"flight-booking/internal/data/entity"
	"flight-booking/internal/data/repository"
	"flight-booking/internal/dto/request"
	"flight-booking/internal/dto/response"
	"flight-booking/internal/events"
	"flight-booking/pkg/lock"
	"flight-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// BookTicket runs the whole commit: validate, resolve the flight, lock
	// the partition, allocate seats, price and persist. A failure anywhere
	// leaves no trace; no seats are consumed by a failed attempt.
	BookTicket(ctx context.Context, req *request.BookTicketRequest) (*response.BookingConfirmation, error)

	GetUserBookings(ctx context.Context, userID string) ([]response.BookingResponse, error)
}

// Publisher is the event sink for committed bookings; nil disables publishing.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload any) error
}

type bookingService struct {
	repo               *repository.Repository
	locks              lock.Manager
	producer           Publisher
	bookingTopic       string
	notificationsTopic string
	lockWait           time.Duration
	strictCapacity     bool
	log                *zap.Logger
}

type BookingServiceOption func(*bookingService)

func WithPublisher(producer Publisher, bookingTopic, notificationsTopic string) BookingServiceOption {
	return func(s *bookingService) {
		s.producer = producer
		s.bookingTopic = bookingTopic
		s.notificationsTopic = notificationsTopic
	}
}

// WithStrictCapacity turns on the capacity check the original system never
// had: a booking is rejected when the flight's total seats would be exceeded
// across all classes of the journey. Off by default to preserve the
// reference behavior.
func WithStrictCapacity() BookingServiceOption {
	return func(s *bookingService) {
		s.strictCapacity = true
	}
}

func NewBookingService(
	repo *repository.Repository,
	locks lock.Manager,
	lockWait time.Duration,
	log *zap.Logger,
	opts ...BookingServiceOption,
) BookingService {
	s := &bookingService{
		repo:     repo,
		locks:    locks,
		lockWait: lockWait,
		log:      log.With(zap.String("service", "booking")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *bookingService) BookTicket(ctx context.Context, req *request.BookTicketRequest) (*response.BookingConfirmation, error) {
	// Validate request; nothing is touched until this passes
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Book ticket validation failed", zap.Any("errors", errs))
		return nil, entity.NewValidationError(errs)
	}

	for i, p := range req.Passengers {
		if strings.TrimSpace(p.Name) == "" {
			return nil, entity.NewValidationError(map[string]string{
				fmt.Sprintf("passengers[%d].name", i): "passenger name must not be blank",
			})
		}
	}

	userID, err := uuid.Parse(req.User)
	if err != nil {
		return nil, entity.NewValidationError(map[string]string{"user": "invalid user ID format"})
	}

	flightRef, err := uuid.Parse(req.Flight)
	if err != nil {
		return nil, entity.NewValidationError(map[string]string{"flight": "invalid flight ID format"})
	}

	journeyDate, err := time.Parse("2006-01-02", req.JourneyDate)
	if err != nil {
		return nil, entity.NewValidationError(map[string]string{"journeyDate": "invalid date, expected YYYY-MM-DD"})
	}

	// Unknown classes keep their own partition but price and number seats as
	// economy; the class table decides
	seatClass := entity.SeatClass(req.SeatClass)
	if !seatClass.Known() {
		s.log.Warn("Unrecognized seat class, falling back to economy rates",
			zap.String("seat_class", req.SeatClass))
	}
	classInfo := seatClass.Info()

	flight, err := s.repo.Flight.FindByID(ctx, flightRef)
	if err != nil {
		return nil, fmt.Errorf("resolve flight %s: %w", req.Flight, err)
	}
	if flight == nil {
		return nil, entity.ErrFlightNotFound
	}

	partition := entity.Partition{
		FlightRef:   flight.ID,
		JourneyDate: journeyDate,
		SeatClass:   seatClass,
	}

	// Steps below must be atomic per partition: two concurrent requests must
	// never read the same occupancy and allocate overlapping seat codes.
	lockCtx, cancel := context.WithTimeout(ctx, s.lockWait)
	defer cancel()

	// The capacity check counts seats across every class of the journey, so
	// it needs exclusivity wider than one partition. Always taken before the
	// partition key so holders never deadlock each other.
	if s.strictCapacity {
		releaseJourney, err := s.locks.Acquire(lockCtx, partition.JourneyKey())
		if err != nil {
			if errors.Is(err, lock.ErrNotAcquired) {
				s.log.Warn("Journey lock wait exceeded",
					zap.String("journey", partition.JourneyKey()),
					zap.Duration("wait", s.lockWait),
				)
				return nil, entity.ErrLockTimeout
			}
			return nil, fmt.Errorf("acquire journey lock %s: %w", partition.JourneyKey(), err)
		}
		defer releaseJourney()
	}

	release, err := s.locks.Acquire(lockCtx, partition.Key())
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			s.log.Warn("Partition lock wait exceeded",
				zap.String("partition", partition.Key()),
				zap.Duration("wait", s.lockWait),
			)
			return nil, entity.ErrLockTimeout
		}
		return nil, fmt.Errorf("acquire partition lock %s: %w", partition.Key(), err)
	}
	defer release()

	priorSeats, err := s.repo.Booking.CountSeatsInPartition(ctx, partition)
	if err != nil {
		return nil, fmt.Errorf("read partition occupancy: %w", err)
	}

	if s.strictCapacity {
		journeySeats, err := s.repo.Booking.CountSeatsForJourney(ctx, flight.ID, journeyDate)
		if err != nil {
			return nil, fmt.Errorf("read journey occupancy: %w", err)
		}
		if journeySeats+len(req.Passengers) > flight.TotalSeats {
			return nil, entity.ErrCapacityExceeded
		}
	}

	seats := AllocateSeats(priorSeats, len(req.Passengers), classInfo.Prefix)
	totalPrice := ComputeTotal(flight.BasePrice, classInfo.Multiplier, len(req.Passengers))

	passengers := make([]entity.Passenger, len(req.Passengers))
	for i, p := range req.Passengers {
		passengers[i] = entity.Passenger{Name: p.Name, Age: p.Age}
	}

	journeyTime := req.JourneyTime
	if journeyTime == "" {
		journeyTime = flight.DepartureTime
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderID:      utils.GenerateOrderID(),
		UserID:       userID,
		FlightRef:    flight.ID,
		FlightName:   flight.FlightName,
		FlightNumber: flight.FlightNumber,
		Origin:       flight.Origin,
		Destination:  flight.Destination,
		Email:        req.Email,
		Mobile:       req.Mobile,
		Passengers:   passengers,
		TotalPrice:   totalPrice,
		JourneyDate:  journeyDate,
		JourneyTime:  journeyTime,
		SeatClass:    seatClass,
		Seats:        seats,
	}

	// Single insert while the partition lock is held: either the row lands
	// with every seat or the occupancy count is unchanged
	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to persist booking",
			zap.Error(err),
			zap.String("partition", partition.Key()),
			zap.String("order_id", booking.OrderID),
		)
		return nil, fmt.Errorf("persist booking: %w", err)
	}

	s.log.Info("Booking committed",
		zap.String("booking_id", booking.ID.String()),
		zap.String("order_id", booking.OrderID),
		zap.String("partition", partition.Key()),
		zap.Strings("seats", seats),
		zap.Int64("total_price", totalPrice),
	)

	s.publishBooked(ctx, booking)

	return &response.BookingConfirmation{
		BookingID:  booking.ID.String(),
		OrderID:    booking.OrderID,
		Seats:      seats,
		TotalPrice: totalPrice,
	}, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string) ([]response.BookingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, entity.NewValidationError(map[string]string{"userId": "invalid user ID format"})
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	return response.BookingsToResponse(bookings), nil
}

// publishBooked emits the committed-booking event; the commit never fails on
// a publish error.
func (s *bookingService) publishBooked(ctx context.Context, booking *entity.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}

	event := events.BookingEvent{
		Type:         events.EventTicketBooked,
		OrderID:      booking.OrderID,
		BookingID:    booking.ID.String(),
		FlightRef:    booking.FlightRef.String(),
		FlightNumber: booking.FlightNumber,
		JourneyDate:  booking.JourneyDate.Format("2006-01-02"),
		SeatClass:    string(booking.SeatClass),
		Seats:        booking.Seats,
		TotalPrice:   booking.TotalPrice,
		Email:        booking.Email,
		BookedAt:     booking.CreatedAt,
	}

	if err := s.producer.Publish(ctx, s.bookingTopic, booking.OrderID, event); err != nil {
		s.log.Warn("Failed to publish booking event",
			zap.Error(err),
			zap.String("order_id", booking.OrderID),
		)
		return
	}

	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.OrderID, event); err != nil {
			s.log.Warn("Failed to publish booking notification",
				zap.Error(err),
				zap.String("order_id", booking.OrderID),
			)
		}
	}
}
