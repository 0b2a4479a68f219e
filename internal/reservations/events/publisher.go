package events

import (
	"context"

	"goodfoods/internal/reservations/service"
	"goodfoods/pkg/kafka"
)

const schemaVersion = "1"

// messageWriter is the slice of the Kafka producer the publisher needs.
type messageWriter interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// Publisher turns reservation events into Kafka messages keyed by booking
// id, so every booking's confirm/cancel history lands on one partition in
// order.
type Publisher struct {
	writer messageWriter
	source string
}

func NewPublisher(producer *kafka.Producer, source string) *Publisher {
	return &Publisher{writer: producer, source: source}
}

func (p *Publisher) PublishReservationEvent(ctx context.Context, event service.ReservationEvent) error {
	msg, err := kafka.NewMessage().
		WithKey(event.BookingID).
		WithValue(event).
		WithEventType(event.Type).
		WithSchemaVersion(schemaVersion).
		WithSource(p.source).
		Build()
	if err != nil {
		return err
	}
	return p.writer.Publish(ctx, msg)
}
