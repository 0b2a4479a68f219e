package service

import (
	"context"
	"time"
)

const (
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationCancelled = "reservation.cancelled"
)

// ReservationEvent is the notification payload emitted after a booking state
// change commits. Events are advisory; consumers must tolerate loss.
type ReservationEvent struct {
	Type           string    `json:"type"`
	BookingID      string    `json:"booking_id"`
	Date           string    `json:"date"`
	RestaurantName string    `json:"restaurant_name"`
	TimeSlot       string    `json:"time_slot"`
	PartySize      int       `json:"party_size"`
	TablesDelta    int       `json:"tables_delta"`
	CustomerEmail  string    `json:"customer_email"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// EventPublisher delivers reservation events to downstream consumers.
// Publishing is best-effort: failures are logged and never change the
// outcome of the operation that produced the event.
type EventPublisher interface {
	PublishReservationEvent(ctx context.Context, event ReservationEvent) error
}
