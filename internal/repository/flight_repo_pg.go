package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/flightdeck/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.FlightDetails, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	GetDetails(ctx context.Context, id int64) (*domain.FlightDetails, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) (*domain.Flight, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightDetailsQuery = `
	SELECT f.id, f.route_id, f.airline_id, f.flight_number, f.departure_time,
	       f.total_seats, f.available_seats, f.price_cents, f.created_at, f.updated_at,
	       lo.city, lo.country, ld.city, ld.country,
	       a.name, a.carrier_code, r.duration_minutes, r.distance_km
	FROM flights f
	JOIN routes r ON r.id = f.route_id
	JOIN locations lo ON lo.id = r.origin_id
	JOIN locations ld ON ld.id = r.destination_id
	JOIN airlines a ON a.id = f.airline_id`

func scanFlightDetails(row pgx.Row, f *domain.FlightDetails) error {
	return row.Scan(&f.ID, &f.RouteID, &f.AirlineID, &f.FlightNumber, &f.DepartureTime,
		&f.TotalSeats, &f.AvailableSeats, &f.PriceCents, &f.CreatedAt, &f.UpdatedAt,
		&f.OriginCity, &f.OriginCountry, &f.DestinationCity, &f.DestCountry,
		&f.AirlineName, &f.CarrierCode, &f.DurationMinutes, &f.DistanceKM)
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.FlightDetails, error) {
	rows, err := r.db.Query(ctx, flightDetailsQuery+` ORDER BY f.departure_time`)
	if err != nil {
		return nil, fmt.Errorf("list flights: %w", err)
	}
	defer rows.Close()

	flights := make([]domain.FlightDetails, 0)
	for rows.Next() {
		var f domain.FlightDetails
		if err := scanFlightDetails(rows, &f); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, route_id, airline_id, flight_number, departure_time, total_seats, available_seats, price_cents, created_at, updated_at
		 FROM flights WHERE id=$1`, id)
	var f domain.Flight
	err := row.Scan(&f.ID, &f.RouteID, &f.AirlineID, &f.FlightNumber, &f.DepartureTime,
		&f.TotalSeats, &f.AvailableSeats, &f.PriceCents, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, fmt.Errorf("get flight: %w", err)
	}
	return &f, nil
}

func (r *PGFlightRepository) GetDetails(ctx context.Context, id int64) (*domain.FlightDetails, error) {
	row := r.db.QueryRow(ctx, flightDetailsQuery+` WHERE f.id=$1`, id)
	var f domain.FlightDetails
	if err := scanFlightDetails(row, &f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, fmt.Errorf("get flight details: %w", err)
	}
	return &f, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO flights (route_id, airline_id, flight_number, departure_time, total_seats, available_seats, price_cents)
		 VALUES ($1, $2, $3, $4, $5, $5, $6)
		 RETURNING id, available_seats, created_at, updated_at`,
		flight.RouteID, flight.AirlineID, flight.FlightNumber, flight.DepartureTime,
		flight.TotalSeats, flight.PriceCents).
		Scan(&flight.ID, &flight.AvailableSeats, &flight.CreatedAt, &flight.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert flight: %w", err)
	}
	return nil
}

// Update edits flight attributes. Shrinking the seat pool below the seats
// already held is rejected; available_seats is re-derived from the new
// total under the same row lock the inventory manager uses.
func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) (*domain.Flight, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin update tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var total, available int
	err = tx.QueryRow(ctx,
		`SELECT total_seats, available_seats FROM flights WHERE id=$1 FOR UPDATE`,
		flight.ID).Scan(&total, &available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, fmt.Errorf("lock flight %d: %w", flight.ID, err)
	}

	held := total - available
	if flight.TotalSeats < held {
		return nil, domain.ErrTotalBelowHeld
	}

	var updated domain.Flight
	err = tx.QueryRow(ctx,
		`UPDATE flights
		 SET route_id=$2, airline_id=$3, flight_number=$4, departure_time=$5,
		     total_seats=$6, available_seats=$7, price_cents=$8, updated_at=now()
		 WHERE id=$1
		 RETURNING id, route_id, airline_id, flight_number, departure_time, total_seats, available_seats, price_cents, created_at, updated_at`,
		flight.ID, flight.RouteID, flight.AirlineID, flight.FlightNumber, flight.DepartureTime,
		flight.TotalSeats, flight.TotalSeats-held, flight.PriceCents).
		Scan(&updated.ID, &updated.RouteID, &updated.AirlineID, &updated.FlightNumber, &updated.DepartureTime,
			&updated.TotalSeats, &updated.AvailableSeats, &updated.PriceCents, &updated.CreatedAt, &updated.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update flight: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}
	return &updated, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
