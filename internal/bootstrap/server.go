package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/flightdeck/api"
	"github.com/Domenick1991/flightdeck/config"
	"github.com/Domenick1991/flightdeck/internal/auth"
	"github.com/Domenick1991/flightdeck/internal/ratelimit"
	"github.com/Domenick1991/flightdeck/internal/service/booking"
	"github.com/Domenick1991/flightdeck/internal/service/catalog"
	"github.com/Domenick1991/flightdeck/internal/service/flights"
	"github.com/Domenick1991/flightdeck/internal/service/users"
	"github.com/Domenick1991/flightdeck/internal/service/verification"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Services bundles everything the HTTP surface needs.
type Services struct {
	Flights      flights.FlightUseCase
	Bookings     booking.BookingUseCase
	Verification verification.VerificationUseCase
	Catalog      catalog.CatalogUseCase
	Users        users.UserUseCase
	Tokens       *auth.TokenManager
}

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, svc Services) error {
	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(cfg, svc),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

// NewRouter wires handlers, auth middleware and the rate limiter into a gin
// engine. Split out from Run so tests can drive the full routing table.
func NewRouter(cfg *config.Config, svc Services) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	limiterCfg := ratelimit.DefaultConfig()
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiterCfg.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
	}
	if cfg.RateLimit.Burst > 0 {
		limiterCfg.BurstSize = cfg.RateLimit.Burst
	}
	engine.Use(ratelimit.NewClientLimiter(limiterCfg).Middleware())

	authHandler := api.NewAuthHandler(svc.Users)
	flightHandler := api.NewFlightHandler(svc.Flights)
	bookingHandler := api.NewBookingHandler(svc.Bookings)
	ticketHandler := api.NewTicketHandler(svc.Verification)
	catalogHandler := api.NewCatalogHandler(svc.Catalog)

	authHandler.Register(engine.Group("/auth"))
	flightHandler.Register(engine.Group("/flights"))
	ticketHandler.Register(engine.Group("/tickets"))
	catalogHandler.Register(engine.Group("/"))

	authenticated := engine.Group("/bookings", auth.Middleware(svc.Tokens))
	bookingHandler.Register(authenticated)

	admin := engine.Group("/admin", auth.Middleware(svc.Tokens), auth.RequireOperator())
	flightHandler.RegisterAdmin(admin.Group("/flights"))
	catalogHandler.RegisterAdmin(admin)

	if cfg.HTTP.SwaggerDir != "" {
		engine.StaticFS("/swagger", http.Dir(cfg.HTTP.SwaggerDir))
		engine.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/openapi.json"),
		)))
	}

	return engine
}
