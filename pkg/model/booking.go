package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	// StatusCancelledTrackerError marks a booking voided because the
	// availability tracker could not be reconciled with it.
	StatusCancelledTrackerError = "cancelled (tracker error)"
)

// cancelledStatuses is the "already done" set for re-cancel checks, matched
// case-insensitively.
var cancelledStatuses = []string{
	StatusCancelled,
	StatusCancelledTrackerError,
}

// IsCancelledStatus reports whether status already indicates cancellation.
func IsCancelledStatus(status string) bool {
	for _, s := range cancelledStatuses {
		if strings.EqualFold(status, s) {
			return true
		}
	}
	return false
}

// Booking is one reservation record in a per-date ledger. TablesReserved is
// derived once at creation and never recomputed; it must equal the magnitude
// of the availability delta applied at creation and at cancellation.
type Booking struct {
	BookingID         string    `json:"booking_id" bson:"_id"`
	Date              string    `json:"date" bson:"date"`
	CustomerName      string    `json:"customer_name" bson:"customer_name"`
	CustomerEmail     string    `json:"customer_email" bson:"customer_email"`
	CustomerPhone     string    `json:"customer_phone" bson:"customer_phone"`
	RestaurantName    string    `json:"restaurant_name" bson:"restaurant_name"`
	RestaurantAddress string    `json:"restaurant_address" bson:"restaurant_address"`
	PartySize         int       `json:"party_size" bson:"party_size"`
	TimeSlot          string    `json:"time_slot" bson:"time_slot"`
	TablesReserved    int       `json:"tables_reserved" bson:"tables_reserved"`
	Status            string    `json:"status" bson:"status"`
	SpecialRequests   string    `json:"special_requests" bson:"special_requests"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" bson:"updated_at"`
}

// BookingRequest is the flat argument record the planner submits for a new
// reservation.
type BookingRequest struct {
	CustomerName    string `json:"customer_name" validate:"required,min=2,max=100"`
	CustomerEmail   string `json:"customer_email" validate:"required,email"`
	CustomerPhone   string `json:"customer_phone" validate:"required,min=7,max=20"`
	RestaurantName  string `json:"restaurant_name" validate:"required"`
	PartySize       int    `json:"party_size" validate:"required,min=1"`
	Date            string `json:"date" validate:"required"`
	TimeSlot        string `json:"time_slot" validate:"required,slot_label"`
	SpecialRequests string `json:"special_requests" validate:"omitempty,max=500"`
}

// CustomerIdentity identifies a customer for booking lookups. Text fields
// are matched case-insensitively.
type CustomerIdentity struct {
	Name  string `json:"customer_name" validate:"required"`
	Email string `json:"customer_email" validate:"required,email"`
	Phone string `json:"customer_phone" validate:"required"`
}

// NewBookingID returns a short unique booking id: the first 8 hex characters
// of a UUID, matching the ids customers quote back over chat.
func NewBookingID() string {
	return uuid.NewString()[:8]
}
