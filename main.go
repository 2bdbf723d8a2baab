package main

import (
	"context"
	"log"
	"time"

	"flight-booking/cmd"
	"flight-booking/internal/cache"
	"flight-booking/internal/data/repository"
	"flight-booking/internal/events"
	"flight-booking/internal/usecase"
	"flight-booking/internal/wire"
	"flight-booking/pkg/database"
	"flight-booking/pkg/lock"
	"flight-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Redis backs the distributed lock and the search cache; neither is
	// required for a single-instance deployment
	var redisClient *redis.Client
	if config.Booking.LockBackend == "redis" || config.Redis.CacheEnabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()

		logger.Info("Redis connected successfully", zap.String("addr", config.Redis.Addr))
	}

	// Partition lock manager
	var locks lock.Manager
	switch config.Booking.LockBackend {
	case "redis":
		locks = lock.NewRedisManager(redisClient,
			time.Duration(config.Booking.LockTTLSeconds)*time.Second)
		logger.Info("Using Redis partition locks")
	default:
		locks = lock.NewKeyedManager()
		logger.Info("Using in-process partition locks")
	}

	var flightCache cache.FlightCache
	if config.Redis.CacheEnabled {
		flightCache = cache.NewRedisCache(redisClient,
			time.Duration(config.Redis.CacheTTLSeconds)*time.Second)
	}

	// Kafka event pipeline
	var producer usecase.Publisher
	if config.Kafka.Enabled {
		kafkaProducer := events.NewProducer(config.Kafka.Brokers)
		defer kafkaProducer.Close()
		producer = kafkaProducer

		consumer := events.NewConsumer(config.Kafka.Brokers, config.Kafka.GroupID,
			config.Kafka.NotificationsTopic)
		defer consumer.Close()

		notifier := events.NewNotifier(consumer, logger)
		go func() {
			if err := notifier.Run(context.Background()); err != nil {
				logger.Error("Notification consumer stopped", zap.Error(err))
			}
		}()

		logger.Info("Kafka event pipeline started",
			zap.Strings("brokers", config.Kafka.Brokers),
			zap.String("booking_topic", config.Kafka.BookingTopic),
		)
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger, locks, flightCache, producer)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
