// Package verification resolves a ticket identifier back to booking and
// flight details. The ticket id is the capability: the endpoint is public
// (kiosk scanning) and the view carries nothing about the owning user.
package verification

import (
	"context"

	"github.com/Domenick1991/flightdeck/internal/domain"
	"github.com/Domenick1991/flightdeck/internal/repository"
)

type VerificationUseCase interface {
	Resolve(ctx context.Context, ticketID string) (*domain.TicketView, error)
}

type VerificationService struct {
	bookings repository.BookingRepository
	flights  repository.FlightRepository
}

func NewVerificationService(bookings repository.BookingRepository, flights repository.FlightRepository) *VerificationService {
	return &VerificationService{bookings: bookings, flights: flights}
}

func (s *VerificationService) Resolve(ctx context.Context, ticketID string) (*domain.TicketView, error) {
	booking, err := s.bookings.GetByTicketID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	flight, err := s.flights.GetDetails(ctx, booking.FlightID)
	if err != nil {
		return nil, err
	}

	return &domain.TicketView{
		TicketID:        booking.TicketID,
		FlightNumber:    flight.FlightNumber,
		AirlineName:     flight.AirlineName,
		OriginCity:      flight.OriginCity,
		DestinationCity: flight.DestinationCity,
		DepartureTime:   flight.DepartureTime,
		Seats:           booking.Seats,
		SeatNumbers:     booking.SeatNumbers,
		TotalPriceCents: booking.TotalPriceCents,
		PaymentStatus:   booking.PaymentStatus,
		BookedAt:        booking.CreatedAt,
		QRCode:          booking.QRCode,
		QRContentType:   booking.QRContentType,
	}, nil
}

var _ VerificationUseCase = (*VerificationService)(nil)
