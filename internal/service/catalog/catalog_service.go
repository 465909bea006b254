package catalog

import (
	"context"

	"github.com/Domenick1991/flightdeck/internal/domain"
	"github.com/Domenick1991/flightdeck/internal/repository"
)

type CatalogUseCase interface {
	ListLocations(ctx context.Context) ([]domain.Location, error)
	CreateLocation(ctx context.Context, principal domain.Principal, city, country string) (*domain.Location, error)
	ListAirlines(ctx context.Context) ([]domain.Airline, error)
	GetAirline(ctx context.Context, id int64) (*domain.Airline, error)
	CreateAirline(ctx context.Context, principal domain.Principal, input AirlineInput) (*domain.Airline, error)
	ListRoutes(ctx context.Context) ([]domain.RouteDetails, error)
	CreateRoute(ctx context.Context, principal domain.Principal, input RouteInput) (*domain.Route, error)
}

type AirlineInput struct {
	Name            string
	CarrierCode     string
	Logo            []byte
	LogoContentType string
}

type RouteInput struct {
	OriginID        int64
	DestinationID   int64
	DurationMinutes int
	DistanceKM      int
}

type CatalogService struct {
	repo repository.CatalogRepository
}

func NewCatalogService(repo repository.CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) ListLocations(ctx context.Context) ([]domain.Location, error) {
	return s.repo.ListLocations(ctx)
}

func (s *CatalogService) CreateLocation(ctx context.Context, principal domain.Principal, city, country string) (*domain.Location, error) {
	if !principal.IsOperator() {
		return nil, domain.ErrOperatorRequired
	}
	loc := &domain.Location{City: city, Country: country}
	if err := s.repo.CreateLocation(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *CatalogService) ListAirlines(ctx context.Context) ([]domain.Airline, error) {
	return s.repo.ListAirlines(ctx)
}

func (s *CatalogService) GetAirline(ctx context.Context, id int64) (*domain.Airline, error) {
	return s.repo.GetAirline(ctx, id)
}

func (s *CatalogService) CreateAirline(ctx context.Context, principal domain.Principal, input AirlineInput) (*domain.Airline, error) {
	if !principal.IsOperator() {
		return nil, domain.ErrOperatorRequired
	}
	airline := &domain.Airline{
		Name:            input.Name,
		CarrierCode:     input.CarrierCode,
		Logo:            input.Logo,
		LogoContentType: input.LogoContentType,
	}
	if err := s.repo.CreateAirline(ctx, airline); err != nil {
		return nil, err
	}
	return airline, nil
}

func (s *CatalogService) ListRoutes(ctx context.Context) ([]domain.RouteDetails, error) {
	return s.repo.ListRoutes(ctx)
}

func (s *CatalogService) CreateRoute(ctx context.Context, principal domain.Principal, input RouteInput) (*domain.Route, error) {
	if !principal.IsOperator() {
		return nil, domain.ErrOperatorRequired
	}
	if input.OriginID == input.DestinationID {
		return nil, domain.ErrRouteEndpoints
	}
	route := &domain.Route{
		OriginID:        input.OriginID,
		DestinationID:   input.DestinationID,
		DurationMinutes: input.DurationMinutes,
		DistanceKM:      input.DistanceKM,
	}
	if err := s.repo.CreateRoute(ctx, route); err != nil {
		return nil, err
	}
	return route, nil
}

var _ CatalogUseCase = (*CatalogService)(nil)
