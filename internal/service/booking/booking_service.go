package booking

import (
	"context"
	"fmt"
	"log"

	"github.com/Domenick1991/flightdeck/internal/domain"
	"github.com/Domenick1991/flightdeck/internal/inventory"
	"github.com/Domenick1991/flightdeck/internal/kafka"
	"github.com/Domenick1991/flightdeck/internal/repository"
	"github.com/Domenick1991/flightdeck/internal/ticket"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, principal domain.Principal, input CreateBookingInput) (*domain.Booking, error)
	CancelBooking(ctx context.Context, principal domain.Principal, bookingID int64) (*domain.Booking, error)
	ListBookingsForUser(ctx context.Context, principal domain.Principal) ([]domain.Booking, error)
}

// Issuer mints the ticket for a reservation. Declared here so tests can
// swap it out.
type Issuer interface {
	Issue(ctx context.Context, flightID int64) (*ticket.Issued, error)
}

type Cache interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	inventory          inventory.Manager
	issuer             Issuer
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
}

type CreateBookingInput struct {
	FlightID int64 `json:"flight_id"`
	Seats    int   `json:"seats"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	inv inventory.Manager,
	issuer Issuer,
	cache Cache,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		flights:      flights,
		inventory:    inv,
		issuer:       issuer,
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking reserves seats, mints a ticket, and persists the booking
// already Confirmed. A failure after the reservation releases the seats
// before the error propagates, so no reservation is ever left dangling.
func (s *BookingService) CreateBooking(ctx context.Context, principal domain.Principal, input CreateBookingInput) (*domain.Booking, error) {
	if input.Seats <= 0 {
		return nil, domain.ErrInvalidSeatCount
	}

	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}

	seats, err := s.inventory.Reserve(ctx, flight.ID, input.Seats)
	if err != nil {
		return nil, err
	}

	issued, err := s.issuer.Issue(ctx, flight.ID)
	if err != nil {
		s.releaseQuietly(ctx, flight.ID, seats)
		return nil, fmt.Errorf("%w: %v", domain.ErrTicketIssuance, err)
	}

	booking := &domain.Booking{
		TicketID:        issued.TicketID,
		UserID:          principal.UserID,
		FlightID:        flight.ID,
		Seats:           input.Seats,
		SeatNumbers:     seats,
		TotalPriceCents: int64(input.Seats) * flight.PriceCents,
		Status:          domain.BookingStatusConfirmed,
		PaymentStatus:   domain.PaymentStatusPending,
		QRCode:          issued.QRCode,
		QRContentType:   issued.QRContentType,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		s.releaseQuietly(ctx, flight.ID, seats)
		return nil, err
	}

	s.invalidateFlights(ctx)
	s.publish(ctx, "booking_created", booking)
	return booking, nil
}

// CancelBooking releases the booking's seats and then flips the status.
// Release comes first so a crash in between frees seats rather than
// stranding them with a cancelled booking.
func (s *BookingService) CancelBooking(ctx context.Context, principal domain.Principal, bookingID int64) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if current.UserID != principal.UserID && !principal.IsOperator() {
		return nil, domain.ErrNotOwner
	}
	if current.Status == domain.BookingStatusCancelled {
		return nil, domain.ErrAlreadyCancelled
	}

	if err := s.inventory.Release(ctx, current.FlightID, current.SeatNumbers); err != nil {
		return nil, err
	}

	updated, err := s.bookings.UpdateStatus(ctx, current.ID, domain.BookingStatusCancelled, domain.PaymentStatusCancelled)
	if err != nil {
		return nil, err
	}

	s.invalidateFlights(ctx)
	s.publish(ctx, "booking_cancelled", updated)
	return updated, nil
}

func (s *BookingService) ListBookingsForUser(ctx context.Context, principal domain.Principal) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, principal.UserID)
}

func (s *BookingService) releaseQuietly(ctx context.Context, flightID int64, seats []int32) {
	if err := s.inventory.Release(ctx, flightID, seats); err != nil {
		log.Printf("compensating release for flight %d seats %v failed: %v", flightID, seats, err)
	}
}

func (s *BookingService) invalidateFlights(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		log.Printf("invalidate flights cache: %v", err)
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:            eventType,
		TicketID:        booking.TicketID,
		BookingID:       booking.ID,
		UserID:          booking.UserID,
		FlightID:        booking.FlightID,
		Seats:           booking.Seats,
		SeatNumbers:     booking.SeatNumbers,
		TotalPriceCents: booking.TotalPriceCents,
		Status:          string(booking.Status),
		CreatedAt:       booking.CreatedAt,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.TicketID, event); err != nil {
		log.Printf("publish %s for booking %s: %v", eventType, booking.TicketID, err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.TicketID, event); err != nil {
			log.Printf("publish %s notification for booking %s: %v", eventType, booking.TicketID, err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
