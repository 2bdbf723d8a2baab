package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"flight-booking/internal/data/entity"

	"github.com/redis/go-redis/v9"
)

// FlightCache keeps city-pair search results out of the catalog's hot path.
// A miss is (nil, nil); cache errors are reported but callers treat the cache
// as best effort.
type FlightCache interface {
	GetSearch(ctx context.Context, from, to string, returnTrip bool) ([]*entity.Flight, error)
	SetSearch(ctx context.Context, from, to string, returnTrip bool, flights []*entity.Flight) error
	InvalidateSearches(ctx context.Context) error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) GetSearch(ctx context.Context, from, to string, returnTrip bool) ([]*entity.Flight, error) {
	data, err := c.client.Get(ctx, searchKey(from, to, returnTrip)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var flights []*entity.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetSearch(ctx context.Context, from, to string, returnTrip bool, flights []*entity.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, searchKey(from, to, returnTrip), payload, c.ttl).Err()
}

// InvalidateSearches drops every cached search; called after the catalog is
// reseeded.
func (c *RedisCache) InvalidateSearches(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, searchKeyPrefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

const searchKeyPrefix = "cache:flights:search:"

func searchKey(from, to string, returnTrip bool) string {
	trip := "oneway"
	if returnTrip {
		trip = "return"
	}
	return fmt.Sprintf("%s%s:%s:%s", searchKeyPrefix, from, to, trip)
}

var _ FlightCache = (*RedisCache)(nil)
