package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/flightdeck/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByTicketID(ctx context.Context, ticketID string) (*domain.Booking, error)
	TicketExists(ctx context.Context, ticketID string) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, payment domain.PaymentStatus) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, ticket_id, user_id, flight_id, seats, seat_numbers, total_price_cents, status, payment_status, qr_png, qr_content_type, created_at, updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(&b.ID, &b.TicketID, &b.UserID, &b.FlightID, &b.Seats, &b.SeatNumbers,
		&b.TotalPriceCents, &b.Status, &b.PaymentStatus, &b.QRCode, &b.QRContentType,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO bookings (ticket_id, user_id, flight_id, seats, seat_numbers, total_price_cents, status, payment_status, qr_png, qr_content_type)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at`,
		booking.TicketID, booking.UserID, booking.FlightID, booking.Seats, booking.SeatNumbers,
		booking.TotalPriceCents, booking.Status, booking.PaymentStatus, booking.QRCode, booking.QRContentType).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

func (r *PGBookingRepository) GetByTicketID(ctx context.Context, ticketID string) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE ticket_id=$1`, ticketID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get booking by ticket: %w", err)
	}
	return b, nil
}

func (r *PGBookingRepository) TicketExists(ctx context.Context, ticketID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM bookings WHERE ticket_id=$1)`, ticketID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check ticket id: %w", err)
	}
	return exists, nil
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, payment domain.PaymentStatus) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx,
		`UPDATE bookings SET status=$2, payment_status=$3, updated_at=now() WHERE id=$1
		 RETURNING `+bookingColumns, id, status, payment))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update booking status: %w", err)
	}
	return b, nil
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
