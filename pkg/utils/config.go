package utils

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Session  SessionConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr            string
	Password        string
	DB              int
	CacheEnabled    bool
	CacheTTLSeconds int
}

type KafkaConfig struct {
	Enabled            bool
	Brokers            []string
	BookingTopic       string
	NotificationsTopic string
	GroupID            string
}

type SessionConfig struct {
	ExpiryHours int
}

type BookingConfig struct {
	// LockBackend selects the partition lock manager: "memory" for a single
	// instance, "redis" when several instances share the booking store.
	LockBackend     string
	LockWaitSeconds int
	LockTTLSeconds  int
	StrictCapacity  bool
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "6001")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_CACHE_ENABLED", false)
	viper.SetDefault("REDIS_CACHE_TTL_SECONDS", 300)
	viper.SetDefault("KAFKA_ENABLED", false)
	viper.SetDefault("KAFKA_BOOKING_TOPIC", "booking_events")
	viper.SetDefault("KAFKA_NOTIFICATIONS_TOPIC", "booking_notifications")
	viper.SetDefault("KAFKA_GROUP_ID", "flight-booking")
	viper.SetDefault("BOOKING_LOCK_BACKEND", "memory")
	viper.SetDefault("BOOKING_LOCK_WAIT_SECONDS", 5)
	viper.SetDefault("BOOKING_LOCK_TTL_SECONDS", 30)
	viper.SetDefault("BOOKING_STRICT_CAPACITY", false)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:            viper.GetString("REDIS_ADDR"),
			Password:        viper.GetString("REDIS_PASS"),
			DB:              viper.GetInt("REDIS_DB"),
			CacheEnabled:    viper.GetBool("REDIS_CACHE_ENABLED"),
			CacheTTLSeconds: viper.GetInt("REDIS_CACHE_TTL_SECONDS"),
		},
		Kafka: KafkaConfig{
			Enabled:            viper.GetBool("KAFKA_ENABLED"),
			Brokers:            strings.Split(viper.GetString("KAFKA_BROKERS"), ","),
			BookingTopic:       viper.GetString("KAFKA_BOOKING_TOPIC"),
			NotificationsTopic: viper.GetString("KAFKA_NOTIFICATIONS_TOPIC"),
			GroupID:            viper.GetString("KAFKA_GROUP_ID"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Booking: BookingConfig{
			LockBackend:     viper.GetString("BOOKING_LOCK_BACKEND"),
			LockWaitSeconds: viper.GetInt("BOOKING_LOCK_WAIT_SECONDS"),
			LockTTLSeconds:  viper.GetInt("BOOKING_LOCK_TTL_SECONDS"),
			StrictCapacity:  viper.GetBool("BOOKING_STRICT_CAPACITY"),
		},
	}

	return config, nil
}
