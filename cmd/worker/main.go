package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightdeck/config"
	"github.com/Domenick1991/flightdeck/internal/cache"
	"github.com/Domenick1991/flightdeck/internal/email"
	"github.com/Domenick1991/flightdeck/internal/kafka"
	"github.com/Domenick1991/flightdeck/internal/repository"
	"github.com/Domenick1991/flightdeck/internal/service/flights"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTLSeconds)*time.Second)
	flightRepo := repository.NewFlightRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	flightService := flights.NewFlightService(flightRepo, redisCache)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender(userRepo)

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, event kafka.BookingEvent) error {
			if err := emailSender.Send(ctx, event); err != nil {
				log.Printf("notify for ticket %s: %v", event.TicketID, err)
			}
			return nil
		}); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	warmMinutes := cfg.Worker.CacheWarmMinutes
	if warmMinutes <= 0 {
		warmMinutes = 5
	}
	warmTicker := time.NewTicker(time.Duration(warmMinutes) * time.Minute)
	defer warmTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-warmTicker.C:
			// An unfiltered search repopulates the flights cache after
			// invalidations, so passengers rarely hit a cold read.
			if _, err := flightService.Search(ctx, flights.SearchQuery{}); err != nil {
				log.Printf("cache warm error: %v", err)
			}
		case s := <-sig:
			log.Printf("received signal %v, shutting down", s)
			return
		}
	}
}
