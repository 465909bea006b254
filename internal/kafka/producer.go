package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// BookingEvent is the payload published on every booking lifecycle change
// and consumed by the notifications worker.
type BookingEvent struct {
	Type            string    `json:"type"`
	TicketID        string    `json:"ticket_id"`
	BookingID       int64     `json:"booking_id"`
	UserID          string    `json:"user_id"`
	FlightID        int64     `json:"flight_id"`
	Seats           int       `json:"seats"`
	SeatNumbers     []int32   `json:"seat_numbers"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

type Producer struct {
	brokers []string
	writer  *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}
	return &Producer{brokers: brokers, writer: writer}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// CheckConnection dials the first broker and reads partition metadata, so
// startup can log broker problems before the first booking.
func (p *Producer) CheckConnection(ctx context.Context) error {
	conn, err := kafka.DialContext(ctx, "tcp", p.brokers[0])
	if err != nil {
		return fmt.Errorf("connect to kafka: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ReadPartitions(); err != nil {
		return fmt.Errorf("read partitions: %w", err)
	}
	return nil
}
