package inventory

import (
	"context"
	"sync"

	"github.com/Domenick1991/flightdeck/internal/domain"
)

type flightSeats struct {
	mu        sync.Mutex
	total     int
	available int
	held      map[int32]struct{}
}

// MemoryManager is the in-process implementation, used in tests and when
// running without postgres. One mutex per flight, so contention on one
// flight never blocks another.
type MemoryManager struct {
	mu      sync.RWMutex
	flights map[int64]*flightSeats
}

func NewMemoryManager() *MemoryManager {
	return &MemoryManager{flights: make(map[int64]*flightSeats)}
}

// AddFlight registers a flight's seat pool. Re-adding an existing flight
// is ignored so callers can seed idempotently.
func (m *MemoryManager) AddFlight(flightID int64, totalSeats int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.flights[flightID]; ok {
		return
	}
	m.flights[flightID] = &flightSeats{
		total:     totalSeats,
		available: totalSeats,
		held:      make(map[int32]struct{}),
	}
}

func (m *MemoryManager) get(flightID int64) (*flightSeats, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fs, ok := m.flights[flightID]
	return fs, ok
}

func (m *MemoryManager) Reserve(ctx context.Context, flightID int64, count int) ([]int32, error) {
	if count <= 0 {
		return nil, domain.ErrInvalidSeatCount
	}
	fs, ok := m.get(flightID)
	if !ok {
		return nil, domain.ErrFlightNotFound
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.available < count {
		return nil, domain.ErrSoldOut
	}

	seats := make([]int32, 0, count)
	for n := int32(1); int(n) <= fs.total && len(seats) < count; n++ {
		if _, held := fs.held[n]; !held {
			seats = append(seats, n)
		}
	}
	for _, s := range seats {
		fs.held[s] = struct{}{}
	}
	fs.available -= count
	return seats, nil
}

func (m *MemoryManager) Release(ctx context.Context, flightID int64, seats []int32) error {
	if len(seats) == 0 {
		return nil
	}
	fs, ok := m.get(flightID)
	if !ok {
		return domain.ErrFlightNotFound
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	// Validate the whole list before touching anything so a bad release
	// leaves the flight untouched. A duplicate in the list is a second
	// release of the same seat and fails like one.
	seen := make(map[int32]struct{}, len(seats))
	for _, s := range seats {
		if _, dup := seen[s]; dup {
			return domain.ErrSeatNotHeld
		}
		seen[s] = struct{}{}
		if _, held := fs.held[s]; !held {
			return domain.ErrSeatNotHeld
		}
	}
	for _, s := range seats {
		delete(fs.held, s)
	}
	fs.available += len(seats)
	return nil
}

// Available reports the current free-seat count, for availability display
// and invariant checks in tests.
func (m *MemoryManager) Available(flightID int64) (int, error) {
	fs, ok := m.get(flightID)
	if !ok {
		return 0, domain.ErrFlightNotFound
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.available, nil
}

var _ Manager = (*MemoryManager)(nil)
