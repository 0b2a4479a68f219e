package errors

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "goodfoods/pkg/errors"
)

// Closed kind enumeration for reservation operations. Callers branch on
// these codes instead of parsing message text.
const (
	KindInvalidFormat            = "INVALID_FORMAT"
	KindOutOfWindow              = "OUT_OF_WINDOW"
	KindPastTime                 = "PAST_TIME"
	KindInsufficientLeadTime     = "INSUFFICIENT_LEAD_TIME"
	KindRestaurantNotFound       = "RESTAURANT_NOT_FOUND"
	KindPartySizeExceedsCapacity = "PARTY_SIZE_EXCEEDS_CAPACITY"
	KindInsufficientTables       = "INSUFFICIENT_TABLES"
	KindUnknownSlot              = "UNKNOWN_SLOT"
	KindTrackerUpdateFailed      = "TRACKER_UPDATE_FAILED"
	KindBookingPersistFailed     = "BOOKING_PERSIST_FAILED"
	KindNotFound                 = "NOT_FOUND"
	KindAlreadyCancelled         = "ALREADY_CANCELLED"
	KindCriticalInconsistency    = "CRITICAL_INCONSISTENCY"
)

// Store-level sentinel errors. Repositories return these; the service maps
// them onto the tagged kinds above.
var (
	ErrNotFound          = errors.New("booking not found")
	ErrUnknownRestaurant = errors.New("restaurant not found in tracker")
	ErrUnknownSlot       = errors.New("time slot is not a valid column")
	ErrWouldGoNegative   = errors.New("not enough tables to apply change")
	ErrLockHeld          = errors.New("slot lock already held")
)

func InvalidFormat(message string) *apperrors.AppError {
	return apperrors.New(KindInvalidFormat, message, http.StatusBadRequest)
}

func OutOfWindow(message string) *apperrors.AppError {
	return apperrors.New(KindOutOfWindow, message, http.StatusUnprocessableEntity)
}

func PastTime(message string) *apperrors.AppError {
	return apperrors.New(KindPastTime, message, http.StatusUnprocessableEntity)
}

func InsufficientLeadTime(message string) *apperrors.AppError {
	return apperrors.New(KindInsufficientLeadTime, message, http.StatusUnprocessableEntity)
}

func RestaurantNotFound(name string) *apperrors.AppError {
	return apperrors.New(KindRestaurantNotFound,
		fmt.Sprintf("Restaurant %q not found", name),
		http.StatusNotFound).
		WithDetails(map[string]any{"restaurant_name": name})
}

func PartySizeExceedsCapacity(name string, partySize, maxPartySize int) *apperrors.AppError {
	return apperrors.New(KindPartySizeExceedsCapacity,
		fmt.Sprintf("%q accepts parties of up to %d guests; requested %d", name, maxPartySize, partySize),
		http.StatusUnprocessableEntity).
		WithDetails(map[string]any{
			"restaurant_name": name,
			"party_size":      partySize,
			"max_party_size":  maxPartySize,
		})
}

// InsufficientTables reports the shortfall explicitly: how many tables the
// party needs against how many are left.
func InsufficientTables(name, slot string, needed, available int) *apperrors.AppError {
	return apperrors.New(KindInsufficientTables,
		fmt.Sprintf("Not enough tables at %q for %s: need %d, only %d left", name, slot, needed, available),
		http.StatusConflict).
		WithDetails(map[string]any{
			"restaurant_name":  name,
			"time_slot":        slot,
			"tables_needed":    needed,
			"tables_available": available,
		})
}

func UnknownSlot(slot string) *apperrors.AppError {
	return apperrors.New(KindUnknownSlot,
		fmt.Sprintf("%q is not a valid time slot", slot),
		http.StatusBadRequest).
		WithDetails(map[string]any{"time_slot": slot})
}

func TrackerUpdateFailed(err error) *apperrors.AppError {
	return apperrors.Wrap(err, KindTrackerUpdateFailed,
		"Could not update the availability tracker; no booking was made",
		http.StatusInternalServerError)
}

func BookingPersistFailed(err error) *apperrors.AppError {
	return apperrors.Wrap(err, KindBookingPersistFailed,
		"Reserved tables were released because the booking record could not be written; please try again",
		http.StatusInternalServerError)
}

// CancelPersistFailed is the cancel-side twin of BookingPersistFailed: the
// tables were returned and then re-reserved because the status change could
// not be written, so the booking stays confirmed.
func CancelPersistFailed(err error) *apperrors.AppError {
	return apperrors.Wrap(err, KindBookingPersistFailed,
		"The cancellation could not be recorded; the booking is still confirmed, please try again",
		http.StatusInternalServerError)
}

func BookingNotFound(id, date string) *apperrors.AppError {
	return apperrors.New(KindNotFound,
		fmt.Sprintf("Booking %q not found for date %s", id, date),
		http.StatusNotFound).
		WithDetails(map[string]any{"booking_id": id, "date": date})
}

func AlreadyCancelled(id string) *apperrors.AppError {
	return apperrors.New(KindAlreadyCancelled,
		fmt.Sprintf("Booking %s is already cancelled", id),
		http.StatusConflict).
		WithDetails(map[string]any{"booking_id": id})
}

// CriticalInconsistency is the one non-self-healing failure: both halves of a
// paired update failed and the conservation invariant may be violated. The
// details carry everything manual reconciliation needs.
func CriticalInconsistency(restaurant, date, slot string, deltaOwed int, err error) *apperrors.AppError {
	return apperrors.Wrap(err, KindCriticalInconsistency,
		fmt.Sprintf("Availability tracker for %q on %s at %s is owed a delta of %+d tables; manual reconciliation required",
			restaurant, date, slot, deltaOwed),
		http.StatusInternalServerError).
		WithDetails(map[string]any{
			"restaurant_name": restaurant,
			"date":            date,
			"time_slot":       slot,
			"delta_owed":      deltaOwed,
		})
}
