// Package inventory owns the authoritative seat count and seat-number
// allocation for each flight. All mutation of one flight's seat state is
// serialized; flights never block each other.
package inventory

import "context"

// Manager hands out and takes back seat numbers for a flight.
//
// Reserve picks the lowest-numbered free seats first, so allocation is
// deterministic for a given ledger state. The check-decrement-assign
// sequence is atomic with respect to other Reserve/Release calls on the
// same flight: two concurrent reservations for the last seat cannot both
// succeed.
//
// Release returns seats to the free pool. Releasing a seat that is not
// currently held fails with domain.ErrSeatNotHeld and changes nothing.
type Manager interface {
	Reserve(ctx context.Context, flightID int64, count int) ([]int32, error)
	Release(ctx context.Context, flightID int64, seats []int32) error
}
