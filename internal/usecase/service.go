package usecase

import (
	"time"

	"flight-booking/internal/cache"
	"flight-booking/internal/data/repository"
	"flight-booking/pkg/lock"
	"flight-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Flight  FlightService
	Booking BookingService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
	locks lock.Manager,
	flightCache cache.FlightCache,
	producer Publisher,
) *Service {
	sessionExpiry := time.Duration(config.Session.ExpiryHours) * time.Hour
	lockWait := time.Duration(config.Booking.LockWaitSeconds) * time.Second

	var bookingOpts []BookingServiceOption
	if producer != nil {
		bookingOpts = append(bookingOpts,
			WithPublisher(producer, config.Kafka.BookingTopic, config.Kafka.NotificationsTopic))
	}
	if config.Booking.StrictCapacity {
		bookingOpts = append(bookingOpts, WithStrictCapacity())
	}

	return &Service{
		Auth:    NewAuthService(repo, sessionExpiry, log),
		Flight:  NewFlightService(repo, flightCache, log),
		Booking: NewBookingService(repo, locks, lockWait, log, bookingOpts...),
	}
}
