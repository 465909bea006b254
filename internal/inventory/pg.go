package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/flightdeck/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGManager keeps held seats in the flight_seats ledger. The per-flight
// critical section is the row lock taken on the flights row: every
// Reserve/Release on a flight queues on that lock, while other flights
// proceed on their own rows.
type PGManager struct {
	db *pgxpool.Pool
}

func NewPGManager(db *pgxpool.Pool) *PGManager {
	return &PGManager{db: db}
}

func (m *PGManager) Reserve(ctx context.Context, flightID int64, count int) ([]int32, error) {
	if count <= 0 {
		return nil, domain.ErrInvalidSeatCount
	}

	tx, err := m.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin reserve tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var total, available int
	err = tx.QueryRow(ctx,
		`SELECT total_seats, available_seats FROM flights WHERE id=$1 FOR UPDATE`,
		flightID).Scan(&total, &available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, fmt.Errorf("lock flight %d: %w", flightID, err)
	}
	if available < count {
		return nil, domain.ErrSoldOut
	}

	taken, err := heldSeats(ctx, tx, flightID)
	if err != nil {
		return nil, err
	}

	seats := make([]int32, 0, count)
	for n := int32(1); int(n) <= total && len(seats) < count; n++ {
		if _, held := taken[n]; !held {
			seats = append(seats, n)
		}
	}
	if len(seats) < count {
		return nil, fmt.Errorf("flight %d: counter says %d free but ledger has %d", flightID, available, len(seats))
	}

	batch := &pgx.Batch{}
	for _, s := range seats {
		batch.Queue(`INSERT INTO flight_seats (flight_id, seat_number) VALUES ($1, $2)`, flightID, s)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, fmt.Errorf("insert seats: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE flights SET available_seats = available_seats - $2, updated_at = now() WHERE id=$1`,
		flightID, count); err != nil {
		return nil, fmt.Errorf("decrement available: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit reserve: %w", err)
	}
	return seats, nil
}

func (m *PGManager) Release(ctx context.Context, flightID int64, seats []int32) error {
	if len(seats) == 0 {
		return nil
	}

	tx, err := m.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin release tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, `SELECT id FROM flights WHERE id=$1 FOR UPDATE`, flightID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrFlightNotFound
		}
		return fmt.Errorf("lock flight %d: %w", flightID, err)
	}

	res, err := tx.Exec(ctx,
		`DELETE FROM flight_seats WHERE flight_id=$1 AND seat_number = ANY($2)`,
		flightID, seats)
	if err != nil {
		return fmt.Errorf("delete seats: %w", err)
	}
	if res.RowsAffected() != int64(len(seats)) {
		return domain.ErrSeatNotHeld
	}

	if _, err := tx.Exec(ctx,
		`UPDATE flights SET available_seats = available_seats + $2, updated_at = now() WHERE id=$1`,
		flightID, len(seats)); err != nil {
		return fmt.Errorf("increment available: %w", err)
	}

	return tx.Commit(ctx)
}

func heldSeats(ctx context.Context, tx pgx.Tx, flightID int64) (map[int32]struct{}, error) {
	rows, err := tx.Query(ctx,
		`SELECT seat_number FROM flight_seats WHERE flight_id=$1 ORDER BY seat_number`, flightID)
	if err != nil {
		return nil, fmt.Errorf("scan ledger: %w", err)
	}
	defer rows.Close()

	taken := make(map[int32]struct{})
	for rows.Next() {
		var n int32
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		taken[n] = struct{}{}
	}
	return taken, rows.Err()
}

var _ Manager = (*PGManager)(nil)
