package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/flightdeck/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CatalogRepository covers the read-mostly reference data: locations,
// airlines, routes.
type CatalogRepository interface {
	ListLocations(ctx context.Context) ([]domain.Location, error)
	CreateLocation(ctx context.Context, loc *domain.Location) error
	ListAirlines(ctx context.Context) ([]domain.Airline, error)
	GetAirline(ctx context.Context, id int64) (*domain.Airline, error)
	CreateAirline(ctx context.Context, airline *domain.Airline) error
	ListRoutes(ctx context.Context) ([]domain.RouteDetails, error)
	CreateRoute(ctx context.Context, route *domain.Route) error
}

type PGCatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) CatalogRepository {
	return &PGCatalogRepository{db: db}
}

func (r *PGCatalogRepository) ListLocations(ctx context.Context) ([]domain.Location, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, city, country, created_at FROM locations ORDER BY city`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	locations := make([]domain.Location, 0)
	for rows.Next() {
		var l domain.Location
		if err := rows.Scan(&l.ID, &l.City, &l.Country, &l.CreatedAt); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

func (r *PGCatalogRepository) CreateLocation(ctx context.Context, loc *domain.Location) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO locations (city, country) VALUES ($1, $2) RETURNING id, created_at`,
		loc.City, loc.Country).Scan(&loc.ID, &loc.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

func (r *PGCatalogRepository) ListAirlines(ctx context.Context) ([]domain.Airline, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, carrier_code, logo, logo_content_type, created_at FROM airlines ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list airlines: %w", err)
	}
	defer rows.Close()

	airlines := make([]domain.Airline, 0)
	for rows.Next() {
		var a domain.Airline
		if err := rows.Scan(&a.ID, &a.Name, &a.CarrierCode, &a.Logo, &a.LogoContentType, &a.CreatedAt); err != nil {
			return nil, err
		}
		airlines = append(airlines, a)
	}
	return airlines, rows.Err()
}

func (r *PGCatalogRepository) GetAirline(ctx context.Context, id int64) (*domain.Airline, error) {
	var a domain.Airline
	err := r.db.QueryRow(ctx,
		`SELECT id, name, carrier_code, logo, logo_content_type, created_at FROM airlines WHERE id=$1`, id).
		Scan(&a.ID, &a.Name, &a.CarrierCode, &a.Logo, &a.LogoContentType, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get airline: %w", err)
	}
	return &a, nil
}

func (r *PGCatalogRepository) CreateAirline(ctx context.Context, airline *domain.Airline) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO airlines (name, carrier_code, logo, logo_content_type)
		 VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		airline.Name, airline.CarrierCode, airline.Logo, airline.LogoContentType).
		Scan(&airline.ID, &airline.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert airline: %w", err)
	}
	return nil
}

func (r *PGCatalogRepository) ListRoutes(ctx context.Context) ([]domain.RouteDetails, error) {
	rows, err := r.db.Query(ctx,
		`SELECT r.id, r.origin_id, r.destination_id, r.duration_minutes, r.distance_km, r.created_at,
		        lo.city, lo.country, ld.city, ld.country
		 FROM routes r
		 JOIN locations lo ON lo.id = r.origin_id
		 JOIN locations ld ON ld.id = r.destination_id
		 ORDER BY lo.city, ld.city`)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	defer rows.Close()

	routes := make([]domain.RouteDetails, 0)
	for rows.Next() {
		var rt domain.RouteDetails
		if err := rows.Scan(&rt.ID, &rt.OriginID, &rt.DestinationID, &rt.DurationMinutes, &rt.DistanceKM, &rt.CreatedAt,
			&rt.OriginCity, &rt.OriginCountry, &rt.DestinationCity, &rt.DestCountry); err != nil {
			return nil, err
		}
		routes = append(routes, rt)
	}
	return routes, rows.Err()
}

func (r *PGCatalogRepository) CreateRoute(ctx context.Context, route *domain.Route) error {
	if route.OriginID == route.DestinationID {
		return domain.ErrRouteEndpoints
	}
	err := r.db.QueryRow(ctx,
		`INSERT INTO routes (origin_id, destination_id, duration_minutes, distance_km)
		 VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		route.OriginID, route.DestinationID, route.DurationMinutes, route.DistanceKM).
		Scan(&route.ID, &route.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert route: %w", err)
	}
	return nil
}

var _ CatalogRepository = (*PGCatalogRepository)(nil)
