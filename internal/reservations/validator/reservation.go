package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	reserrors "goodfoods/internal/reservations/errors"
	"goodfoods/pkg/logger"
	"goodfoods/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// ReservationValidator holds the deterministic booking rules: the rolling
// date window, the minimum lead time, and request-shape validation. It is
// stateless; "now" is re-derived on every call, never cached.
type ReservationValidator struct {
	validate    *validator.Validate
	logger      *logger.Logger
	windowDays  int
	minLeadTime time.Duration

	// now is overridable in tests; production always uses time.Now.
	now func() time.Time
}

func NewReservationValidator(log *logger.Logger, windowDays int, minLeadTime time.Duration) *ReservationValidator {
	v := validator.New()

	if err := v.RegisterValidation("slot_label", validateSlotLabel); err != nil {
		log.Fatal("Failed to register 'slot_label' validator",
			"error", err,
		)
	}

	return &ReservationValidator{
		validate:    v,
		logger:      log,
		windowDays:  windowDays,
		minLeadTime: minLeadTime,
		now:         time.Now,
	}
}

func validateSlotLabel(fl validator.FieldLevel) bool {
	return model.IsTimeSlot(fl.Field().String())
}

// ParseDate parses a DD.MM.YYYY date without any window check. Lookups use
// this so historical bookings stay readable after their date leaves the
// booking window.
func (v *ReservationValidator) ParseDate(dateStr string) (time.Time, error) {
	bookDate, err := time.ParseInLocation(model.DateLayout, dateStr, time.Local)
	if err != nil {
		return time.Time{}, reserrors.InvalidFormat("Invalid date format. Please use DD.MM.YYYY.")
	}
	return bookDate, nil
}

// ValidateDateWindow parses date (DD.MM.YYYY) and checks the rolling booking
// window: today <= date <= today+windowDays, inclusive on both ends,
// comparing date components only. The window slides forward as wall-clock
// time advances.
func (v *ReservationValidator) ValidateDateWindow(dateStr string) (time.Time, error) {
	bookDate, err := v.ParseDate(dateStr)
	if err != nil {
		return time.Time{}, err
	}

	today := dateOnly(v.now())
	maxDate := today.AddDate(0, 0, v.windowDays)

	if bookDate.Before(today) || bookDate.After(maxDate) {
		return time.Time{}, reserrors.OutOfWindow(fmt.Sprintf(
			"Bookings are only allowed from today (%s) up to %d days in advance (%s).",
			today.Format(model.DateLayout), v.windowDays, maxDate.Format(model.DateLayout),
		))
	}

	return bookDate, nil
}

// ValidateLeadTime combines the parsed booking date with the slot label and
// checks the absolute instant against now. A past instant and a too-soon
// instant are distinct failures: both block booking, but callers report them
// differently.
func (v *ReservationValidator) ValidateLeadTime(bookDate time.Time, timeSlot string) error {
	instant, err := slotInstant(bookDate, timeSlot)
	if err != nil {
		return reserrors.InvalidFormat(fmt.Sprintf("Invalid time slot format: %q. Please use a slot like %q.", timeSlot, model.TimeSlots[0]))
	}

	now := v.now()
	if instant.Before(now) {
		return reserrors.PastTime(fmt.Sprintf(
			"The time slot %s on %s is in the past. Please select a future time.",
			timeSlot, bookDate.Format(model.DateLayout),
		))
	}

	minBookingTime := now.Add(v.minLeadTime)
	if instant.Before(minBookingTime) {
		return reserrors.InsufficientLeadTime(fmt.Sprintf(
			"Bookings must be made at least %d minutes in advance. The earliest time you can book for is around %s.",
			int(v.minLeadTime.Minutes()), minBookingTime.Format(model.SlotLayout),
		))
	}

	return nil
}

// BookableSlots returns the slots still bookable on the given date. For a
// strictly future date the full schedule qualifies; for today the schedule is
// filtered by the lead-time rule. When nothing qualifies the returned note
// explains why; window errors propagate as errors.
func (v *ReservationValidator) BookableSlots(dateStr string) ([]string, string, error) {
	bookDate, err := v.ValidateDateWindow(dateStr)
	if err != nil {
		return nil, "", err
	}

	now := v.now()
	if bookDate.After(dateOnly(now)) {
		return model.TimeSlots, "", nil
	}

	minBookingTime := now.Add(v.minLeadTime)
	valid := make([]string, 0, len(model.TimeSlots))
	for _, slot := range model.TimeSlots {
		instant, err := slotInstant(bookDate, slot)
		if err != nil {
			continue
		}
		if !instant.Before(minBookingTime) {
			valid = append(valid, slot)
		}
	}

	if len(valid) == 0 {
		return valid, fmt.Sprintf(
			"All available time slots for today are in the past or within the next %d minutes.",
			int(v.minLeadTime.Minutes()),
		), nil
	}

	return valid, "", nil
}

// ValidateRequest checks the shape of a booking request: required fields,
// email format, positive party size, and a known slot label.
func (v *ReservationValidator) ValidateRequest(req *model.BookingRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *ReservationValidator) ValidateIdentity(id *model.CustomerIdentity) error {
	if err := v.validate.Struct(id); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *ReservationValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "slot_label":
			message = fmt.Sprintf("%s must be one of the fixed time slots (e.g. %q)", err.Field(), model.TimeSlots[0])
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func slotInstant(bookDate time.Time, slot string) (time.Time, error) {
	st, err := time.ParseInLocation(model.SlotLayout, slot, bookDate.Location())
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		bookDate.Year(), bookDate.Month(), bookDate.Day(),
		st.Hour(), st.Minute(), 0, 0, bookDate.Location(),
	), nil
}
