package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	reserrors "goodfoods/internal/reservations/errors"
	"goodfoods/internal/reservations/validator"
	"goodfoods/pkg/config"
	apperrors "goodfoods/pkg/errors"
	"goodfoods/pkg/logger"
	"goodfoods/pkg/model"
)

// --- Fakes ---

type fakeDirectory struct {
	restaurants []*model.Restaurant
}

func (f *fakeDirectory) All(_ context.Context) ([]*model.Restaurant, error) {
	return f.restaurants, nil
}

func (f *fakeDirectory) FindByName(_ context.Context, name string) (*model.Restaurant, error) {
	for _, r := range f.restaurants {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, reserrors.ErrUnknownRestaurant
}

// fakeTracker seeds lazily per date like the real stores and lets tests
// inject adjustment failures via adjustHook.
type fakeTracker struct {
	directory  *fakeDirectory
	base       int
	dates      map[string]model.AvailabilityMatrix
	adjustHook func(delta int) error
}

func newFakeTracker(d *fakeDirectory, base int) *fakeTracker {
	return &fakeTracker{
		directory: d,
		base:      base,
		dates:     make(map[string]model.AvailabilityMatrix),
	}
}

func (f *fakeTracker) matrixFor(date string) model.AvailabilityMatrix {
	if m, ok := f.dates[date]; ok {
		return m
	}
	m := make(model.AvailabilityMatrix, len(f.directory.restaurants))
	for _, r := range f.directory.restaurants {
		m[r.Name] = model.SeedRow(r, f.base)
	}
	f.dates[date] = m
	return m
}

func (f *fakeTracker) Matrix(_ context.Context, date string) (model.AvailabilityMatrix, error) {
	return f.matrixFor(date), nil
}

func (f *fakeTracker) TableCount(_ context.Context, date, restaurant, slot string) (int, error) {
	if !model.IsTimeSlot(slot) {
		return 0, reserrors.ErrUnknownSlot
	}
	row, ok := f.matrixFor(date)[restaurant]
	if !ok {
		return 0, reserrors.ErrUnknownRestaurant
	}
	return row.Slots[slot], nil
}

func (f *fakeTracker) Adjust(_ context.Context, date, restaurant, slot string, delta int) error {
	if f.adjustHook != nil {
		if err := f.adjustHook(delta); err != nil {
			return err
		}
	}
	if !model.IsTimeSlot(slot) {
		return reserrors.ErrUnknownSlot
	}
	row, ok := f.matrixFor(date)[restaurant]
	if !ok {
		return reserrors.ErrUnknownRestaurant
	}
	if row.Slots[slot]+delta < 0 {
		return reserrors.ErrWouldGoNegative
	}
	row.Slots[slot] += delta
	return nil
}

func (f *fakeTracker) count(t *testing.T, date, restaurant, slot string) int {
	t.Helper()
	n, err := f.TableCount(context.Background(), date, restaurant, slot)
	if err != nil {
		t.Fatalf("TableCount() error: %v", err)
	}
	return n
}

type fakeLedger struct {
	guestsPerTable int
	bookings       map[string][]*model.Booking
	insertErr      error
	updateErr      error
	seq            int
}

func newFakeLedger(guestsPerTable int) *fakeLedger {
	return &fakeLedger{
		guestsPerTable: guestsPerTable,
		bookings:       make(map[string][]*model.Booking),
	}
}

func (f *fakeLedger) Insert(_ context.Context, date string, booking *model.Booking) (*model.Booking, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.seq++
	now := time.Now().UTC()
	stored := *booking
	stored.BookingID = fmt.Sprintf("bk%06d", f.seq)
	stored.Date = date
	stored.TablesReserved = model.TablesNeeded(booking.PartySize, f.guestsPerTable)
	stored.Status = model.StatusConfirmed
	stored.CreatedAt = now
	stored.UpdatedAt = now
	f.bookings[date] = append(f.bookings[date], &stored)
	return &stored, nil
}

func (f *fakeLedger) FindByID(_ context.Context, date, bookingID string) (*model.Booking, error) {
	for _, b := range f.bookings[date] {
		if b.BookingID == bookingID {
			return b, nil
		}
	}
	return nil, reserrors.ErrNotFound
}

func (f *fakeLedger) FindByCustomer(_ context.Context, date string, id model.CustomerIdentity) ([]*model.Booking, error) {
	var matches []*model.Booking
	for _, b := range f.bookings[date] {
		if strings.EqualFold(b.CustomerName, id.Name) &&
			strings.EqualFold(b.CustomerEmail, id.Email) &&
			strings.EqualFold(b.CustomerPhone, id.Phone) {
			matches = append(matches, b)
		}
	}
	return matches, nil
}

func (f *fakeLedger) UpdateStatus(_ context.Context, date, bookingID, status string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for _, b := range f.bookings[date] {
		if b.BookingID == bookingID {
			b.Status = status
			b.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return reserrors.ErrNotFound
}

func (f *fakeLedger) All(_ context.Context, date string) ([]*model.Booking, error) {
	return f.bookings[date], nil
}

type fakeLocks struct {
	held     map[string]bool
	acquired int
	released int
}

func newFakeLocks() *fakeLocks {
	return &fakeLocks{held: make(map[string]bool)}
}

func (f *fakeLocks) Acquire(_ context.Context, lockID string, _ time.Duration) error {
	if f.held[lockID] {
		return reserrors.ErrLockHeld
	}
	f.held[lockID] = true
	f.acquired++
	return nil
}

func (f *fakeLocks) Release(_ context.Context, lockID string) error {
	delete(f.held, lockID)
	f.released++
	return nil
}

type fakePublisher struct {
	events []ReservationEvent
	err    error
}

func (f *fakePublisher) PublishReservationEvent(_ context.Context, event ReservationEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

// --- Fixtures ---

type testEnv struct {
	svc       *ReservationService
	tracker   *fakeTracker
	ledger    *fakeLedger
	locks     *fakeLocks
	publisher *fakePublisher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := logger.New(logger.Config{Output: io.Discard})
	directory := &fakeDirectory{restaurants: []*model.Restaurant{
		{Name: "Bistro A", Location: "Indiranagar", Address: "12 MG Road", Phone: "+919800000001", MaxPartySize: 12},
		{Name: "Curry Leaf", Location: "Koramangala", Address: "5 Hosur Road", Phone: "+919800000002", MaxPartySize: 8},
	}}
	tracker := newFakeTracker(directory, 10)
	ledger := newFakeLedger(4)
	locks := newFakeLocks()
	publisher := &fakePublisher{}

	cfg := &config.Config{GuestsPerTable: 4, SlotLockTTL: time.Second}
	v := validator.NewReservationValidator(log, 3, 30*time.Minute)

	svc := NewReservationService(directory, tracker, ledger, v, log, cfg).
		WithSlotLocks(locks).
		WithPublisher(publisher)

	return &testEnv{svc: svc, tracker: tracker, ledger: ledger, locks: locks, publisher: publisher}
}

// tomorrow is always inside the booking window and clears any lead time.
func tomorrow() string {
	return time.Now().AddDate(0, 0, 1).Format(model.DateLayout)
}

func bookingRequest(date string) *model.BookingRequest {
	return &model.BookingRequest{
		CustomerName:    "Asha Rao",
		CustomerEmail:   "asha@example.com",
		CustomerPhone:   "+919800000009",
		RestaurantName:  "Bistro A",
		PartySize:       9,
		Date:            date,
		TimeSlot:        "07:00 PM",
		SpecialRequests: "window seat",
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error code %s, got nil", code)
	}
	if !apperrors.HasCode(err, code) {
		t.Fatalf("expected error code %s, got %v", code, err)
	}
}

// --- Tests ---

func TestBookAndCancelLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	date := tomorrow()

	booking, err := env.svc.Book(ctx, bookingRequest(date))
	if err != nil {
		t.Fatalf("Book() error: %v", err)
	}
	if booking.TablesReserved != 3 {
		t.Errorf("party of 9 should reserve 3 tables, got %d", booking.TablesReserved)
	}
	if booking.Status != model.StatusConfirmed {
		t.Errorf("expected status %q, got %q", model.StatusConfirmed, booking.Status)
	}
	if booking.RestaurantAddress != "12 MG Road" {
		t.Errorf("address not resolved from directory: %q", booking.RestaurantAddress)
	}
	if got := env.tracker.count(t, date, "Bistro A", "07:00 PM"); got != 7 {
		t.Errorf("expected 7 tables after booking, got %d", got)
	}

	cancelled, err := env.svc.Cancel(ctx, date, booking.BookingID)
	if err != nil {
		t.Fatalf("Cancel() error: %v", err)
	}
	if cancelled.Status != model.StatusCancelled {
		t.Errorf("expected status %q, got %q", model.StatusCancelled, cancelled.Status)
	}
	if cancelled.TablesReserved != 3 {
		t.Errorf("expected 3 tables returned, got %d", cancelled.TablesReserved)
	}
	if got := env.tracker.count(t, date, "Bistro A", "07:00 PM"); got != 10 {
		t.Errorf("expected full capacity restored, got %d", got)
	}

	_, err = env.svc.Cancel(ctx, date, booking.BookingID)
	assertCode(t, err, reserrors.KindAlreadyCancelled)
	if got := env.tracker.count(t, date, "Bistro A", "07:00 PM"); got != 10 {
		t.Errorf("re-cancel must not return tables again, got %d", got)
	}

	if len(env.publisher.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(env.publisher.events))
	}
	if env.publisher.events[0].Type != EventReservationConfirmed || env.publisher.events[0].TablesDelta != -3 {
		t.Errorf("unexpected confirm event: %+v", env.publisher.events[0])
	}
	if env.publisher.events[1].Type != EventReservationCancelled || env.publisher.events[1].TablesDelta != 3 {
		t.Errorf("unexpected cancel event: %+v", env.publisher.events[1])
	}
	if env.locks.acquired != env.locks.released {
		t.Errorf("slot locks leaked: %d acquired, %d released", env.locks.acquired, env.locks.released)
	}
}

func TestBookSanitizesCustomerFields(t *testing.T) {
	env := newTestEnv(t)
	req := bookingRequest(tomorrow())
	req.CustomerName = "  Asha   Rao "
	req.CustomerEmail = " Asha@Example.COM "

	booking, err := env.svc.Book(context.Background(), req)
	if err != nil {
		t.Fatalf("Book() error: %v", err)
	}
	if booking.CustomerName != "Asha Rao" {
		t.Errorf("name not normalized: %q", booking.CustomerName)
	}
	if booking.CustomerEmail != "asha@example.com" {
		t.Errorf("email not normalized: %q", booking.CustomerEmail)
	}
}

func TestBookRejections(t *testing.T) {
	date := tomorrow()

	tests := []struct {
		name     string
		mutate   func(req *model.BookingRequest)
		wantCode string
	}{
		{"missing email", func(r *model.BookingRequest) { r.CustomerEmail = "" }, apperrors.CodeValidation},
		{"bad slot label", func(r *model.BookingRequest) { r.TimeSlot = "7 PM" }, apperrors.CodeValidation},
		{"bad date format", func(r *model.BookingRequest) { r.Date = "2026-03-15" }, reserrors.KindInvalidFormat},
		{"beyond window", func(r *model.BookingRequest) {
			r.Date = time.Now().AddDate(0, 0, 5).Format(model.DateLayout)
		}, reserrors.KindOutOfWindow},
		{"unknown restaurant", func(r *model.BookingRequest) { r.RestaurantName = "No Such Place" }, reserrors.KindRestaurantNotFound},
		{"party exceeds capacity", func(r *model.BookingRequest) { r.PartySize = 13 }, reserrors.KindPartySizeExceedsCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			req := bookingRequest(date)
			tt.mutate(req)

			_, err := env.svc.Book(context.Background(), req)
			assertCode(t, err, tt.wantCode)

			if got := env.tracker.count(t, date, "Bistro A", "07:00 PM"); got != 10 {
				t.Errorf("rejected booking must not consume tables, got %d", got)
			}
		})
	}
}

func TestBookValidationErrorCarriesFieldDetails(t *testing.T) {
	env := newTestEnv(t)
	req := bookingRequest(tomorrow())
	req.CustomerEmail = ""

	_, err := env.svc.Book(context.Background(), req)
	assertCode(t, err, apperrors.CodeValidation)

	appErr := apperrors.AsAppError(err)
	if appErr.HTTPStatus != 422 {
		t.Errorf("HTTP status = %d, want 422", appErr.HTTPStatus)
	}
	if _, ok := appErr.Details["CustomerEmail"]; !ok {
		t.Errorf("details missing CustomerEmail entry: %v", appErr.Details)
	}
}

func TestBookInsufficientTables(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	date := tomorrow()

	// Leave 2 tables; a party of 9 needs 3.
	if err := env.tracker.Adjust(ctx, date, "Bistro A", "07:00 PM", -8); err != nil {
		t.Fatalf("setup Adjust() error: %v", err)
	}

	_, err := env.svc.Book(ctx, bookingRequest(date))
	assertCode(t, err, reserrors.KindInsufficientTables)

	if got := env.tracker.count(t, date, "Bistro A", "07:00 PM"); got != 2 {
		t.Errorf("failed booking must leave the cell untouched, got %d", got)
	}
	if len(env.ledger.bookings[date]) != 0 {
		t.Errorf("no booking record should exist, got %d", len(env.ledger.bookings[date]))
	}
}

func TestBookRollbackOnInsertFailure(t *testing.T) {
	env := newTestEnv(t)
	env.ledger.insertErr = errors.New("disk full")
	date := tomorrow()

	_, err := env.svc.Book(context.Background(), bookingRequest(date))
	assertCode(t, err, reserrors.KindBookingPersistFailed)

	if got := env.tracker.count(t, date, "Bistro A", "07:00 PM"); got != 10 {
		t.Errorf("compensation must restore the cell, got %d", got)
	}
	if len(env.publisher.events) != 0 {
		t.Errorf("failed booking must not emit events, got %d", len(env.publisher.events))
	}
}

func TestBookCriticalInconsistency(t *testing.T) {
	env := newTestEnv(t)
	env.ledger.insertErr = errors.New("disk full")
	// The decrement succeeds, but the compensating increment fails.
	env.tracker.adjustHook = func(delta int) error {
		if delta > 0 {
			return errors.New("tracker unavailable")
		}
		return nil
	}
	date := tomorrow()

	_, err := env.svc.Book(context.Background(), bookingRequest(date))
	assertCode(t, err, reserrors.KindCriticalInconsistency)

	appErr := apperrors.AsAppError(err)
	if appErr.Details["delta_owed"] != 3 {
		t.Errorf("expected delta_owed 3, got %v", appErr.Details["delta_owed"])
	}
}

func TestCancelTrackerFailureLeavesBookingConfirmed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	date := tomorrow()

	booking, err := env.svc.Book(ctx, bookingRequest(date))
	if err != nil {
		t.Fatalf("Book() error: %v", err)
	}

	env.tracker.adjustHook = func(delta int) error {
		if delta > 0 {
			return errors.New("tracker unavailable")
		}
		return nil
	}

	_, err = env.svc.Cancel(ctx, date, booking.BookingID)
	assertCode(t, err, reserrors.KindTrackerUpdateFailed)

	stored, err := env.ledger.FindByID(ctx, date, booking.BookingID)
	if err != nil {
		t.Fatalf("FindByID() error: %v", err)
	}
	if stored.Status != model.StatusConfirmed {
		t.Errorf("booking must stay confirmed, got %q", stored.Status)
	}
	if got := env.tracker.count(t, date, "Bistro A", "07:00 PM"); got != 7 {
		t.Errorf("cell must be unchanged, got %d", got)
	}
}

func TestCancelRollbackOnStatusFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	date := tomorrow()

	booking, err := env.svc.Book(ctx, bookingRequest(date))
	if err != nil {
		t.Fatalf("Book() error: %v", err)
	}

	env.ledger.updateErr = errors.New("disk full")

	_, err = env.svc.Cancel(ctx, date, booking.BookingID)
	assertCode(t, err, reserrors.KindBookingPersistFailed)

	// Tables were returned and then re-reserved; the world is unchanged.
	if got := env.tracker.count(t, date, "Bistro A", "07:00 PM"); got != 7 {
		t.Errorf("compensation must re-reserve the tables, got %d", got)
	}
	stored, err := env.ledger.FindByID(ctx, date, booking.BookingID)
	if err != nil {
		t.Fatalf("FindByID() error: %v", err)
	}
	if stored.Status != model.StatusConfirmed {
		t.Errorf("booking must stay confirmed, got %q", stored.Status)
	}
}

func TestCancelNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Cancel(context.Background(), tomorrow(), "deadbeef")
	assertCode(t, err, reserrors.KindNotFound)
}

func TestSlotLockConflict(t *testing.T) {
	env := newTestEnv(t)
	date := tomorrow()
	lockID := fmt.Sprintf("%s|%s|%s", date, "Bistro A", "07:00 PM")
	env.locks.held[lockID] = true

	_, err := env.svc.Book(context.Background(), bookingRequest(date))
	assertCode(t, err, apperrors.CodeConflict)
}

func TestPublishFailureDoesNotFailBooking(t *testing.T) {
	env := newTestEnv(t)
	env.publisher.err = errors.New("broker down")

	if _, err := env.svc.Book(context.Background(), bookingRequest(tomorrow())); err != nil {
		t.Fatalf("Book() must succeed despite publish failure, got %v", err)
	}
}

func TestModify(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	date := tomorrow()

	original, err := env.svc.Book(ctx, bookingRequest(date))
	if err != nil {
		t.Fatalf("Book() error: %v", err)
	}

	req := bookingRequest(date)
	req.TimeSlot = "08:00 PM"
	moved, err := env.svc.Modify(ctx, date, original.BookingID, req)
	if err != nil {
		t.Fatalf("Modify() error: %v", err)
	}
	if moved.TimeSlot != "08:00 PM" {
		t.Errorf("expected new slot, got %q", moved.TimeSlot)
	}

	old, err := env.ledger.FindByID(ctx, date, original.BookingID)
	if err != nil {
		t.Fatalf("FindByID() error: %v", err)
	}
	if old.Status != model.StatusCancelled {
		t.Errorf("old booking must be cancelled, got %q", old.Status)
	}
	if got := env.tracker.count(t, date, "Bistro A", "07:00 PM"); got != 10 {
		t.Errorf("old slot must be fully restored, got %d", got)
	}
	if got := env.tracker.count(t, date, "Bistro A", "08:00 PM"); got != 7 {
		t.Errorf("new slot must hold the reservation, got %d", got)
	}
}

func TestModifyCreateFailureLeavesOldBooking(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	date := tomorrow()

	original, err := env.svc.Book(ctx, bookingRequest(date))
	if err != nil {
		t.Fatalf("Book() error: %v", err)
	}

	req := bookingRequest(date)
	req.RestaurantName = "No Such Place"
	_, err = env.svc.Modify(ctx, date, original.BookingID, req)
	assertCode(t, err, reserrors.KindRestaurantNotFound)

	old, err := env.ledger.FindByID(ctx, date, original.BookingID)
	if err != nil {
		t.Fatalf("FindByID() error: %v", err)
	}
	if old.Status != model.StatusConfirmed {
		t.Errorf("old booking must be untouched, got %q", old.Status)
	}
}

func TestModifyCancelFailureReportsNewBooking(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	date := tomorrow()

	original, err := env.svc.Book(ctx, bookingRequest(date))
	if err != nil {
		t.Fatalf("Book() error: %v", err)
	}

	env.ledger.updateErr = errors.New("disk full")

	req := bookingRequest(date)
	req.TimeSlot = "08:00 PM"
	_, err = env.svc.Modify(ctx, date, original.BookingID, req)
	assertCode(t, err, reserrors.KindBookingPersistFailed)

	appErr := apperrors.AsAppError(err)
	newID, ok := appErr.Details["new_booking_id"].(string)
	if !ok || newID == "" {
		t.Fatalf("error must carry the new booking id, got %v", appErr.Details)
	}
	if _, err := env.ledger.FindByID(ctx, date, newID); err != nil {
		t.Errorf("new booking must exist: %v", err)
	}
}

func TestAvailableRestaurants(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	date := tomorrow()

	// Leave Curry Leaf with 2 tables at the slot; a party of 9 needs 3.
	if err := env.tracker.Adjust(ctx, date, "Curry Leaf", "07:00 PM", -8); err != nil {
		t.Fatalf("setup Adjust() error: %v", err)
	}

	results, err := env.svc.AvailableRestaurants(ctx, date, "07:00 PM", 9)
	if err != nil {
		t.Fatalf("AvailableRestaurants() error: %v", err)
	}
	if len(results) != 1 || results[0].Name != "Bistro A" {
		t.Fatalf("expected only Bistro A, got %+v", results)
	}
	if results[0].TablesAvailable != 10 {
		t.Errorf("expected 10 tables available, got %d", results[0].TablesAvailable)
	}

	// A smaller party fits both; results come back sorted by name.
	results, err = env.svc.AvailableRestaurants(ctx, date, "07:00 PM", 4)
	if err != nil {
		t.Fatalf("AvailableRestaurants() error: %v", err)
	}
	if len(results) != 2 || results[0].Name != "Bistro A" || results[1].Name != "Curry Leaf" {
		t.Fatalf("expected both restaurants sorted, got %+v", results)
	}

	if _, err := env.svc.AvailableRestaurants(ctx, date, "10:30 AM", 4); !apperrors.HasCode(err, reserrors.KindUnknownSlot) {
		t.Errorf("expected UNKNOWN_SLOT, got %v", err)
	}
}

func TestFindBookings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	date := tomorrow()

	if _, err := env.svc.Book(ctx, bookingRequest(date)); err != nil {
		t.Fatalf("Book() error: %v", err)
	}

	bookings, err := env.svc.FindBookings(ctx, date, model.CustomerIdentity{
		Name:  "ASHA RAO",
		Email: "Asha@Example.com",
		Phone: "+919800000009",
	})
	if err != nil {
		t.Fatalf("FindBookings() error: %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("expected 1 booking, got %d", len(bookings))
	}

	none, err := env.svc.FindBookings(ctx, date, model.CustomerIdentity{
		Name:  "Someone Else",
		Email: "other@example.com",
		Phone: "+919800000000",
	})
	if err != nil {
		t.Fatalf("FindBookings() error: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no bookings, got %d", len(none))
	}
}

func TestBookingDetailsIgnoresWindow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// A date far outside the booking window is still a valid lookup key.
	_, err := env.svc.BookingDetails(ctx, "01.01.2020", "deadbeef")
	assertCode(t, err, reserrors.KindNotFound)

	_, err = env.svc.BookingDetails(ctx, "2020-01-01", "deadbeef")
	assertCode(t, err, reserrors.KindInvalidFormat)
}

func TestConservationAcrossMixedOperations(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	date := tomorrow()

	var ids []string
	sizes := []int{9, 4, 1, 8}
	for _, size := range sizes {
		req := bookingRequest(date)
		req.PartySize = size
		b, err := env.svc.Book(ctx, req)
		if err != nil {
			t.Fatalf("Book(party=%d) error: %v", size, err)
		}
		ids = append(ids, b.BookingID)
	}

	// Cancel two of the four, then check the cell equals base minus the
	// tables of the still-confirmed bookings: 10 - (3 + 1) = 6.
	for _, id := range []string{ids[1], ids[3]} {
		if _, err := env.svc.Cancel(ctx, date, id); err != nil {
			t.Fatalf("Cancel(%s) error: %v", id, err)
		}
	}

	if got := env.tracker.count(t, date, "Bistro A", "07:00 PM"); got != 6 {
		t.Errorf("conservation violated: expected 6 tables, got %d", got)
	}
}
