package domain

import "errors"

// Failure taxonomy for the booking core. Handlers map these to HTTP
// statuses in one place; services never return bare booleans.
var (
	// ErrInvalidSeatCount is returned when a reservation asks for zero or
	// a negative number of seats.
	ErrInvalidSeatCount = errors.New("seat count must be positive")

	// ErrFlightNotFound is returned when the referenced flight does not exist.
	ErrFlightNotFound = errors.New("flight not found")

	// ErrSoldOut is returned when a flight has fewer free seats than requested.
	ErrSoldOut = errors.New("not enough available seats")

	// ErrTicketIssuance is returned when a ticket could not be minted for a
	// reservation. The reservation is rolled back before this propagates.
	ErrTicketIssuance = errors.New("ticket issuance failed")

	// ErrSeatNotHeld is returned when a release names a seat that is not
	// currently allocated. Double releases are bugs, not no-ops.
	ErrSeatNotHeld = errors.New("seat is not held")

	// ErrNotFound is returned when a booking, ticket, or catalog record
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotOwner is returned when a user acts on a booking they do not own.
	ErrNotOwner = errors.New("booking belongs to another user")

	// ErrAlreadyCancelled is returned when cancelling a booking that is
	// already cancelled, so callers can tell a repeat from a state change.
	ErrAlreadyCancelled = errors.New("booking is already cancelled")

	// ErrUnauthenticated is returned when a command requires a principal
	// and none (or an invalid one) was presented.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrOperatorRequired is returned when a catalog-changing operation is
	// attempted by a principal without the operator role.
	ErrOperatorRequired = errors.New("operator role required")

	// ErrTotalBelowHeld is returned when an operator shrinks a flight's
	// seat pool below the seats already allocated to bookings.
	ErrTotalBelowHeld = errors.New("total seats below currently held seats")

	// ErrRouteEndpoints is returned when a route's origin and destination
	// are the same location.
	ErrRouteEndpoints = errors.New("route origin and destination must differ")

	// ErrEmailTaken is returned when signing up with an email that is
	// already registered.
	ErrEmailTaken = errors.New("email already registered")
)
