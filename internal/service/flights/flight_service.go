package flights

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Domenick1991/flightdeck/internal/domain"
	"github.com/Domenick1991/flightdeck/internal/repository"
)

type FlightUseCase interface {
	Search(ctx context.Context, query SearchQuery) ([]domain.FlightDetails, error)
	GetByID(ctx context.Context, id int64) (*domain.FlightDetails, error)
	Create(ctx context.Context, principal domain.Principal, input FlightInput) (*domain.Flight, error)
	Update(ctx context.Context, principal domain.Principal, id int64, input FlightInput) (*domain.Flight, error)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.FlightDetails, error)
	SetFlights(ctx context.Context, flights []domain.FlightDetails) error
	InvalidateFlights(ctx context.Context) error
}

// SearchQuery filters the catalog snapshot. Empty fields match everything;
// Date matches the calendar day of departure, ignoring time of day.
type SearchQuery struct {
	Origin      string
	Destination string
	Date        *time.Time
}

type FlightInput struct {
	RouteID       int64
	AirlineID     int64
	FlightNumber  string
	DepartureTime time.Time
	TotalSeats    int
	PriceCents    int64
}

type FlightService struct {
	repo  repository.FlightRepository
	cache Cache
}

func NewFlightService(repo repository.FlightRepository, cache Cache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

func (s *FlightService) Search(ctx context.Context, query SearchQuery) ([]domain.FlightDetails, error) {
	flights, err := s.list(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]domain.FlightDetails, 0, len(flights))
	for _, f := range flights {
		if matchesQuery(f, query) {
			matched = append(matched, f)
		}
	}
	return matched, nil
}

func (s *FlightService) list(ctx context.Context) ([]domain.FlightDetails, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlights(ctx, flights); err != nil {
			log.Printf("cache flights: %v", err)
		}
	}
	return flights, nil
}

func matchesQuery(f domain.FlightDetails, q SearchQuery) bool {
	if q.Origin != "" && !containsFold(f.OriginCity, q.Origin) {
		return false
	}
	if q.Destination != "" && !containsFold(f.DestinationCity, q.Destination) {
		return false
	}
	if q.Date != nil {
		y1, m1, d1 := f.DepartureTime.Date()
		y2, m2, d2 := q.Date.Date()
		if y1 != y2 || m1 != m2 || d1 != d2 {
			return false
		}
	}
	return true
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.FlightDetails, error) {
	return s.repo.GetDetails(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, principal domain.Principal, input FlightInput) (*domain.Flight, error) {
	if !principal.IsOperator() {
		return nil, domain.ErrOperatorRequired
	}
	if input.TotalSeats <= 0 {
		return nil, domain.ErrInvalidSeatCount
	}

	flight := &domain.Flight{
		RouteID:       input.RouteID,
		AirlineID:     input.AirlineID,
		FlightNumber:  input.FlightNumber,
		DepartureTime: input.DepartureTime,
		TotalSeats:    input.TotalSeats,
		PriceCents:    input.PriceCents,
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return flight, nil
}

func (s *FlightService) Update(ctx context.Context, principal domain.Principal, id int64, input FlightInput) (*domain.Flight, error) {
	if !principal.IsOperator() {
		return nil, domain.ErrOperatorRequired
	}
	if input.TotalSeats <= 0 {
		return nil, domain.ErrInvalidSeatCount
	}

	updated, err := s.repo.Update(ctx, &domain.Flight{
		ID:            id,
		RouteID:       input.RouteID,
		AirlineID:     input.AirlineID,
		FlightNumber:  input.FlightNumber,
		DepartureTime: input.DepartureTime,
		TotalSeats:    input.TotalSeats,
		PriceCents:    input.PriceCents,
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return updated, nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		log.Printf("invalidate flights cache: %v", err)
	}
}

var _ FlightUseCase = (*FlightService)(nil)
