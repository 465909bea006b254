package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightdeck/config"
	"github.com/Domenick1991/flightdeck/internal/auth"
	"github.com/Domenick1991/flightdeck/internal/bootstrap"
	"github.com/Domenick1991/flightdeck/internal/cache"
	"github.com/Domenick1991/flightdeck/internal/inventory"
	"github.com/Domenick1991/flightdeck/internal/kafka"
	"github.com/Domenick1991/flightdeck/internal/repository"
	"github.com/Domenick1991/flightdeck/internal/service/booking"
	"github.com/Domenick1991/flightdeck/internal/service/catalog"
	"github.com/Domenick1991/flightdeck/internal/service/flights"
	"github.com/Domenick1991/flightdeck/internal/service/users"
	"github.com/Domenick1991/flightdeck/internal/service/verification"
	"github.com/Domenick1991/flightdeck/internal/ticket"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTLSeconds)*time.Second)

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()
	if err := producer.CheckConnection(ctx); err != nil {
		log.Printf("kafka unreachable, events will fail until it recovers: %v", err)
	}

	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	catalogRepo := repository.NewCatalogRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	seats := inventory.NewPGManager(pool)
	issuer := ticket.NewIssuer(bookingRepo)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)

	flightService := flights.NewFlightService(flightRepo, redisCache)
	bookingService := booking.NewBookingService(
		bookingRepo,
		flightRepo,
		seats,
		issuer,
		redisCache,
		producer,
		cfg.Kafka.BookingTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	verificationService := verification.NewVerificationService(bookingRepo, flightRepo)
	catalogService := catalog.NewCatalogService(catalogRepo)
	userService := users.NewUserService(userRepo, tokens)

	err = bootstrap.Run(ctx, cfg, bootstrap.Services{
		Flights:      flightService,
		Bookings:     bookingService,
		Verification: verificationService,
		Catalog:      catalogService,
		Users:        userService,
		Tokens:       tokens,
	})
	if err != nil {
		log.Fatalf("server error: %v", err)
	}
}
