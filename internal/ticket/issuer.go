// Package ticket mints globally unique ticket identifiers and the
// scannable payload bound to a confirmed booking.
package ticket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

// Registry answers whether a ticket id is already taken. Collision
// probability is treated as non-zero: every candidate id is checked and
// regenerated on a hit rather than assumed unique.
type Registry interface {
	TicketExists(ctx context.Context, ticketID string) (bool, error)
}

// Payload is what the QR code encodes. It is enough for the verification
// service to resolve the booking without any further context.
type Payload struct {
	TicketID string `json:"ticket_id"`
	FlightID int64  `json:"flight_id"`
}

type Issued struct {
	TicketID      string
	QRCode        []byte
	QRContentType string
}

type Issuer struct {
	registry    Registry
	qrSize      int
	maxAttempts int
}

func NewIssuer(registry Registry) *Issuer {
	return &Issuer{registry: registry, qrSize: 256, maxAttempts: 5}
}

func (i *Issuer) Issue(ctx context.Context, flightID int64) (*Issued, error) {
	for attempt := 0; attempt < i.maxAttempts; attempt++ {
		id := uuid.NewString()
		exists, err := i.registry.TicketExists(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("check ticket id: %w", err)
		}
		if exists {
			continue
		}

		payload, err := json.Marshal(Payload{TicketID: id, FlightID: flightID})
		if err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
		png, err := qrcode.Encode(string(payload), qrcode.Medium, i.qrSize)
		if err != nil {
			return nil, fmt.Errorf("render qr: %w", err)
		}
		return &Issued{TicketID: id, QRCode: png, QRContentType: "image/png"}, nil
	}
	return nil, fmt.Errorf("no unique ticket id after %d attempts", i.maxAttempts)
}
