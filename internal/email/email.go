package email

import (
	"context"
	"fmt"
	"log"

	"github.com/Domenick1991/flightdeck/internal/domain"
	"github.com/Domenick1991/flightdeck/internal/kafka"
)

// UserDirectory resolves the recipient of a notification; the booking
// event only carries the user id.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Sender is the notification sink behind the worker. Delivery is a log
// line for now; the event plus the resolved user carry everything a mail
// template needs.
type Sender struct {
	users UserDirectory
}

func NewSender(users UserDirectory) *Sender {
	return &Sender{users: users}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	user, err := s.users.GetByID(ctx, event.UserID)
	if err != nil {
		return fmt.Errorf("resolve user %s: %w", event.UserID, err)
	}
	log.Printf("notify %s <%s>: %s for ticket %s (flight %d, %d seats, %d cents)",
		user.Name, user.Email, event.Type, event.TicketID, event.FlightID, event.Seats, event.TotalPriceCents)
	return nil
}
