package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Domenick1991/flightdeck/config"
	"github.com/Domenick1991/flightdeck/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
	}
}

func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.FlightDetails, error) {
	data, err := c.client.Get(ctx, flightsKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.FlightDetails
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.FlightDetails) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(), payload, c.flightsTTL).Err()
}

// InvalidateFlights drops the cached list. Called whenever a booking or an
// operator edit changes seat availability; TTL alone would serve stale
// counts in between.
func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Del(ctx, flightsKey()).Err()
}

func flightsKey() string {
	return "cache:flights"
}
