package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

// Booking is persisted only once Confirmed. A reservation that fails before
// that point leaves no record; cancellation is the only further transition.
type Booking struct {
	ID              int64
	TicketID        string
	UserID          string
	FlightID        int64
	Seats           int
	SeatNumbers     []int32
	TotalPriceCents int64
	Status          BookingStatus
	PaymentStatus   PaymentStatus
	QRCode          []byte
	QRContentType   string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TicketView is what ticket verification exposes. The ticket id is the
// capability; nothing identifying the owning user is included.
type TicketView struct {
	TicketID        string
	FlightNumber    string
	AirlineName     string
	OriginCity      string
	DestinationCity string
	DepartureTime   time.Time
	Seats           int
	SeatNumbers     []int32
	TotalPriceCents int64
	PaymentStatus   PaymentStatus
	BookedAt        time.Time
	QRCode          []byte
	QRContentType   string
}
