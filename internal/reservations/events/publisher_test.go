package events

import (
	"context"
	"testing"
	"time"

	"goodfoods/internal/reservations/service"
	"goodfoods/pkg/kafka"
)

type captureWriter struct {
	messages []kafka.Message
}

func (c *captureWriter) Publish(_ context.Context, msg kafka.Message) error {
	c.messages = append(c.messages, msg)
	return nil
}

func TestPublishReservationEvent(t *testing.T) {
	writer := &captureWriter{}
	pub := &Publisher{writer: writer, source: "reservations"}

	event := service.ReservationEvent{
		Type:           service.EventReservationConfirmed,
		BookingID:      "ab12cd34",
		Date:           "15.03.2026",
		RestaurantName: "Bistro A",
		TimeSlot:       "07:00 PM",
		PartySize:      9,
		TablesDelta:    -3,
		OccurredAt:     time.Now().UTC().Truncate(time.Second),
	}

	if err := pub.PublishReservationEvent(context.Background(), event); err != nil {
		t.Fatalf("PublishReservationEvent() error: %v", err)
	}
	if len(writer.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(writer.messages))
	}

	msg := writer.messages[0]
	if msg.Key != "ab12cd34" {
		t.Errorf("expected booking id key, got %q", msg.Key)
	}
	if msg.GetEventType() != service.EventReservationConfirmed {
		t.Errorf("unexpected event type header: %q", msg.GetEventType())
	}
	if msg.GetEventID() == "" {
		t.Error("expected a generated event id")
	}
	if msg.Headers[kafka.HeaderSource] != "reservations" {
		t.Errorf("unexpected source header: %q", msg.Headers[kafka.HeaderSource])
	}

	var decoded service.ReservationEvent
	if err := msg.DecodeValue(&decoded); err != nil {
		t.Fatalf("DecodeValue() error: %v", err)
	}
	if decoded != event {
		t.Errorf("payload did not round-trip: %+v vs %+v", decoded, event)
	}
}
