package kafka

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Consumer reads booking lifecycle events from one topic. A payload that
// does not decode as a BookingEvent is logged and skipped so a poison
// message cannot wedge the consumer group.
type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, BookingEvent) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}
		event, ok := decodeEvent(msg.Value)
		if !ok {
			continue
		}
		if err := handler(ctx, event); err != nil {
			return err
		}
	}
}

func decodeEvent(value []byte) (BookingEvent, bool) {
	var event BookingEvent
	if err := json.Unmarshal(value, &event); err != nil {
		log.Printf("skip malformed event: %v", err)
		return BookingEvent{}, false
	}
	return event, true
}
