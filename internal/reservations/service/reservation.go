package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	reserrors "goodfoods/internal/reservations/errors"
	"goodfoods/internal/reservations/repository"
	"goodfoods/internal/reservations/validator"
	"goodfoods/pkg/config"
	apperrors "goodfoods/pkg/errors"
	"goodfoods/pkg/logger"
	"goodfoods/pkg/model"
	"goodfoods/pkg/sanitizer"
)

// ReservationService coordinates the validator, the availability tracker and
// the booking ledger so the conservation invariant holds: for every confirmed
// booking the tracker has been decremented by exactly its tables_reserved,
// and for every cancelled one the same count has been returned.
//
// All mutations for a date run under that date's in-process mutex. When a
// slot-lock repository is attached, a TTL advisory lock per
// (date, restaurant, slot) additionally fences concurrent instances.
type ReservationService struct {
	directory repository.RestaurantDirectory
	tracker   repository.AvailabilityStore
	ledger    repository.BookingLedger
	validator *validator.ReservationValidator
	logger    *logger.Logger

	slotLocks repository.DateLockRepository
	publisher EventPublisher

	guestsPerTable int
	slotLockTTL    time.Duration

	dates *dateLocks
}

func NewReservationService(
	directory repository.RestaurantDirectory,
	tracker repository.AvailabilityStore,
	ledger repository.BookingLedger,
	v *validator.ReservationValidator,
	log *logger.Logger,
	cfg *config.Config,
) *ReservationService {
	return &ReservationService{
		directory:      directory,
		tracker:        tracker,
		ledger:         ledger,
		validator:      v,
		logger:         log,
		guestsPerTable: cfg.GuestsPerTable,
		slotLockTTL:    cfg.SlotLockTTL,
		dates:          newDateLocks(),
	}
}

// WithSlotLocks attaches a cross-instance advisory lock store. Optional: a
// single-instance deployment relies on the per-date mutex alone.
func (s *ReservationService) WithSlotLocks(locks repository.DateLockRepository) *ReservationService {
	s.slotLocks = locks
	return s
}

// WithPublisher attaches a best-effort reservation event publisher.
func (s *ReservationService) WithPublisher(pub EventPublisher) *ReservationService {
	s.publisher = pub
	return s
}

// Book places a reservation. The tracker is decremented before the ledger
// insert: a failed decrement leaves nothing to undo, and a failed insert is
// compensated by returning the tables. Only when that compensation also
// fails is the result a critical inconsistency.
func (s *ReservationService) Book(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	sanitizeRequest(req)

	if err := s.validator.ValidateRequest(req); err != nil {
		return nil, s.asAppError(err, "book")
	}
	bookDate, err := s.validator.ValidateDateWindow(req.Date)
	if err != nil {
		return nil, s.asAppError(err, "book")
	}
	if err := s.validator.ValidateLeadTime(bookDate, req.TimeSlot); err != nil {
		return nil, s.asAppError(err, "book")
	}

	restaurant, err := s.directory.FindByName(ctx, req.RestaurantName)
	if err != nil {
		if errors.Is(err, reserrors.ErrUnknownRestaurant) {
			return nil, reserrors.RestaurantNotFound(req.RestaurantName)
		}
		return nil, s.asAppError(err, "book")
	}
	if restaurant.MaxPartySize > 0 && req.PartySize > restaurant.MaxPartySize {
		return nil, reserrors.PartySizeExceedsCapacity(restaurant.Name, req.PartySize, restaurant.MaxPartySize)
	}

	unlock := s.dates.Lock(req.Date)
	defer unlock()

	release, err := s.acquireSlotLock(ctx, req.Date, restaurant.Name, req.TimeSlot)
	if err != nil {
		return nil, err
	}
	defer release()

	tablesNeeded := model.TablesNeeded(req.PartySize, s.guestsPerTable)

	available, err := s.tracker.TableCount(ctx, req.Date, restaurant.Name, req.TimeSlot)
	if err != nil {
		return nil, s.trackerReadError(err, restaurant.Name, req.TimeSlot)
	}
	if available < tablesNeeded {
		return nil, reserrors.InsufficientTables(restaurant.Name, req.TimeSlot, tablesNeeded, available)
	}

	if err := s.tracker.Adjust(ctx, req.Date, restaurant.Name, req.TimeSlot, -tablesNeeded); err != nil {
		if errors.Is(err, reserrors.ErrWouldGoNegative) {
			// Lost a race since the pre-check; report the fresh count.
			current, countErr := s.tracker.TableCount(ctx, req.Date, restaurant.Name, req.TimeSlot)
			if countErr != nil {
				current = 0
			}
			return nil, reserrors.InsufficientTables(restaurant.Name, req.TimeSlot, tablesNeeded, current)
		}
		return nil, reserrors.TrackerUpdateFailed(err)
	}

	booking := &model.Booking{
		CustomerName:      req.CustomerName,
		CustomerEmail:     req.CustomerEmail,
		CustomerPhone:     req.CustomerPhone,
		RestaurantName:    restaurant.Name,
		RestaurantAddress: restaurant.Address,
		PartySize:         req.PartySize,
		TimeSlot:          req.TimeSlot,
		SpecialRequests:   req.SpecialRequests,
	}

	stored, err := s.ledger.Insert(ctx, req.Date, booking)
	if err != nil {
		s.logger.Error("Booking insert failed after tracker decrement; compensating",
			"restaurant", restaurant.Name,
			"date", req.Date,
			"time_slot", req.TimeSlot,
			"tables", tablesNeeded,
			"error", err,
		)
		if compErr := s.tracker.Adjust(ctx, req.Date, restaurant.Name, req.TimeSlot, tablesNeeded); compErr != nil {
			s.logger.Error("Compensation failed; tracker is owed tables",
				"restaurant", restaurant.Name,
				"date", req.Date,
				"time_slot", req.TimeSlot,
				"delta_owed", tablesNeeded,
				"error", compErr,
			)
			return nil, reserrors.CriticalInconsistency(restaurant.Name, req.Date, req.TimeSlot, tablesNeeded, compErr)
		}
		return nil, reserrors.BookingPersistFailed(err)
	}

	s.logger.Info("Booking confirmed",
		"booking_id", stored.BookingID,
		"restaurant", stored.RestaurantName,
		"date", stored.Date,
		"time_slot", stored.TimeSlot,
		"party_size", stored.PartySize,
		"tables_reserved", stored.TablesReserved,
	)

	s.publish(ctx, ReservationEvent{
		Type:           EventReservationConfirmed,
		BookingID:      stored.BookingID,
		Date:           stored.Date,
		RestaurantName: stored.RestaurantName,
		TimeSlot:       stored.TimeSlot,
		PartySize:      stored.PartySize,
		TablesDelta:    -stored.TablesReserved,
		CustomerEmail:  stored.CustomerEmail,
		OccurredAt:     time.Now().UTC(),
	})

	return stored, nil
}

// Cancel voids a booking and returns its tables to the tracker. The tables
// are returned first; a failed status write re-reserves them so the booking
// stays consistent with the tracker either way.
func (s *ReservationService) Cancel(ctx context.Context, date, bookingID string) (*model.Booking, error) {
	if _, err := s.validator.ValidateDateWindow(date); err != nil {
		return nil, s.asAppError(err, "cancel")
	}

	unlock := s.dates.Lock(date)
	defer unlock()

	booking, err := s.ledger.FindByID(ctx, date, bookingID)
	if err != nil {
		if errors.Is(err, reserrors.ErrNotFound) {
			return nil, reserrors.BookingNotFound(bookingID, date)
		}
		return nil, s.asAppError(err, "cancel")
	}
	if model.IsCancelledStatus(booking.Status) {
		return nil, reserrors.AlreadyCancelled(bookingID)
	}

	release, err := s.acquireSlotLock(ctx, date, booking.RestaurantName, booking.TimeSlot)
	if err != nil {
		return nil, err
	}
	defer release()

	tables := booking.TablesReserved
	if err := s.tracker.Adjust(ctx, date, booking.RestaurantName, booking.TimeSlot, tables); err != nil {
		// Nothing changed yet; the booking stays confirmed.
		return nil, reserrors.TrackerUpdateFailed(err)
	}

	if err := s.ledger.UpdateStatus(ctx, date, bookingID, model.StatusCancelled); err != nil {
		s.logger.Error("Status update failed after returning tables; compensating",
			"booking_id", bookingID,
			"restaurant", booking.RestaurantName,
			"date", date,
			"time_slot", booking.TimeSlot,
			"tables", tables,
			"error", err,
		)
		if compErr := s.tracker.Adjust(ctx, date, booking.RestaurantName, booking.TimeSlot, -tables); compErr != nil {
			s.logger.Error("Compensation failed; tracker holds excess tables",
				"booking_id", bookingID,
				"restaurant", booking.RestaurantName,
				"date", date,
				"time_slot", booking.TimeSlot,
				"delta_owed", -tables,
				"error", compErr,
			)
			return nil, reserrors.CriticalInconsistency(booking.RestaurantName, date, booking.TimeSlot, -tables, compErr)
		}
		return nil, reserrors.CancelPersistFailed(err)
	}

	booking.Status = model.StatusCancelled

	s.logger.Info("Booking cancelled",
		"booking_id", bookingID,
		"restaurant", booking.RestaurantName,
		"date", date,
		"time_slot", booking.TimeSlot,
		"tables_returned", tables,
	)

	s.publish(ctx, ReservationEvent{
		Type:           EventReservationCancelled,
		BookingID:      bookingID,
		Date:           date,
		RestaurantName: booking.RestaurantName,
		TimeSlot:       booking.TimeSlot,
		PartySize:      booking.PartySize,
		TablesDelta:    tables,
		CustomerEmail:  booking.CustomerEmail,
		OccurredAt:     time.Now().UTC(),
	})

	return booking, nil
}

// Modify moves a booking to a new request by booking the new slot first and
// cancelling the old one only after the new booking is confirmed. A create
// failure leaves the old booking untouched. If the cancel then fails, both
// bookings exist; the error carries the new id so the caller can retry the
// cancel alone.
func (s *ReservationService) Modify(ctx context.Context, oldDate, bookingID string, req *model.BookingRequest) (*model.Booking, error) {
	newBooking, err := s.Book(ctx, req)
	if err != nil {
		return nil, err
	}

	if _, err := s.Cancel(ctx, oldDate, bookingID); err != nil {
		s.logger.Error("Modification booked the new slot but could not cancel the old booking",
			"old_booking_id", bookingID,
			"old_date", oldDate,
			"new_booking_id", newBooking.BookingID,
			"error", err,
		)
		if appErr := apperrors.AsAppError(err); appErr != nil {
			return nil, appErr.WithDetails(map[string]any{
				"new_booking_id": newBooking.BookingID,
				"new_date":       newBooking.Date,
			})
		}
		return nil, err
	}

	s.logger.Info("Booking modified",
		"old_booking_id", bookingID,
		"new_booking_id", newBooking.BookingID,
		"new_date", newBooking.Date,
		"new_time_slot", newBooking.TimeSlot,
	)
	return newBooking, nil
}

// AvailableRestaurants lists restaurants with enough tables left for the
// party at the given slot, together with the remaining count.
func (s *ReservationService) AvailableRestaurants(ctx context.Context, date, slot string, partySize int) ([]*model.RestaurantAvailability, error) {
	if _, err := s.validator.ValidateDateWindow(date); err != nil {
		return nil, s.asAppError(err, "search")
	}
	if !model.IsTimeSlot(slot) {
		return nil, reserrors.UnknownSlot(slot)
	}
	if partySize <= 0 {
		return nil, apperrors.InvalidInput("party_size must be positive")
	}

	matrix, err := s.tracker.Matrix(ctx, date)
	if err != nil {
		return nil, s.asAppError(err, "search")
	}

	tablesNeeded := model.TablesNeeded(partySize, s.guestsPerTable)
	results := make([]*model.RestaurantAvailability, 0, len(matrix))
	for _, row := range matrix {
		if row.Slots[slot] >= tablesNeeded {
			results = append(results, &model.RestaurantAvailability{
				Name:            row.Name,
				Location:        row.Location,
				Address:         row.Address,
				Phone:           row.Phone,
				TablesAvailable: row.Slots[slot],
			})
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results, nil
}

// BookingDetails fetches one booking. The date is format-checked only, so
// bookings remain readable after their date leaves the booking window.
func (s *ReservationService) BookingDetails(ctx context.Context, date, bookingID string) (*model.Booking, error) {
	if _, err := s.validator.ParseDate(date); err != nil {
		return nil, s.asAppError(err, "details")
	}
	booking, err := s.ledger.FindByID(ctx, date, bookingID)
	if err != nil {
		if errors.Is(err, reserrors.ErrNotFound) {
			return nil, reserrors.BookingNotFound(bookingID, date)
		}
		return nil, s.asAppError(err, "details")
	}
	return booking, nil
}

// FindBookings lists a customer's bookings for a date, matching the identity
// triple case-insensitively.
func (s *ReservationService) FindBookings(ctx context.Context, date string, identity model.CustomerIdentity) ([]*model.Booking, error) {
	if _, err := s.validator.ParseDate(date); err != nil {
		return nil, s.asAppError(err, "find")
	}
	identity.Name = sanitizer.NormalizeName(identity.Name)
	identity.Email = sanitizer.NormalizeEmail(identity.Email)
	identity.Phone = sanitizer.NormalizePhone(identity.Phone)
	if err := s.validator.ValidateIdentity(&identity); err != nil {
		return nil, s.asAppError(err, "find")
	}

	bookings, err := s.ledger.FindByCustomer(ctx, date, identity)
	if err != nil {
		return nil, s.asAppError(err, "find")
	}
	return bookings, nil
}

// BookableSlots returns the slot labels still bookable on a date, with an
// explanatory note when the list is empty.
func (s *ReservationService) BookableSlots(_ context.Context, date string) ([]string, string, error) {
	slots, note, err := s.validator.BookableSlots(date)
	if err != nil {
		return nil, "", s.asAppError(err, "slots")
	}
	return slots, note, nil
}

func sanitizeRequest(req *model.BookingRequest) {
	req.CustomerName = sanitizer.NormalizeName(req.CustomerName)
	req.CustomerEmail = sanitizer.NormalizeEmail(req.CustomerEmail)
	req.CustomerPhone = sanitizer.NormalizePhone(req.CustomerPhone)
	req.RestaurantName = sanitizer.TrimAndNormalize(req.RestaurantName)
	req.SpecialRequests = sanitizer.NormalizeRequests(req.SpecialRequests)
}

// acquireSlotLock takes the cross-instance advisory lock when a lock store is
// configured. The returned release func is always safe to call.
func (s *ReservationService) acquireSlotLock(ctx context.Context, date, restaurant, slot string) (func(), error) {
	if s.slotLocks == nil {
		return func() {}, nil
	}

	lockID := fmt.Sprintf("%s|%s|%s", date, restaurant, slot)
	if err := s.slotLocks.Acquire(ctx, lockID, s.slotLockTTL); err != nil {
		if errors.Is(err, reserrors.ErrLockHeld) {
			return nil, apperrors.Conflict("Another request is updating this slot; please retry")
		}
		return nil, s.asAppError(err, "lock")
	}

	return func() {
		if err := s.slotLocks.Release(context.WithoutCancel(ctx), lockID); err != nil {
			s.logger.Warn("Failed to release slot lock; it will expire via TTL",
				"lock_id", lockID,
				"error", err,
			)
		}
	}, nil
}

func (s *ReservationService) trackerReadError(err error, restaurant, slot string) error {
	switch {
	case errors.Is(err, reserrors.ErrUnknownSlot):
		return reserrors.UnknownSlot(slot)
	case errors.Is(err, reserrors.ErrUnknownRestaurant):
		return reserrors.RestaurantNotFound(restaurant)
	default:
		return reserrors.TrackerUpdateFailed(err)
	}
}

func (s *ReservationService) publish(ctx context.Context, event ReservationEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishReservationEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish reservation event",
			"type", event.Type,
			"booking_id", event.BookingID,
			"error", err,
		)
	}
}

// asAppError is the boundary conversion: tagged errors pass through, shape
// validation becomes a validation error, and anything else is wrapped as an
// internal failure so repository details never leak to callers.
func (s *ReservationService) asAppError(err error, op string) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]any, len(verrs))
		for _, ve := range verrs {
			fields[ve.Field] = ve.Message
		}
		return apperrors.Validation("Invalid request", fields)
	}

	s.logger.Error("Unexpected error",
		"operation", op,
		"error", err,
	)
	return apperrors.Internal("The reservation system hit an unexpected error; please try again", err)
}
