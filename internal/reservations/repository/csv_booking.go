package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	reserrors "goodfoods/internal/reservations/errors"
	"goodfoods/pkg/model"
)

var bookingCSVHeader = []string{
	"booking_id",
	"customer_name",
	"customer_email",
	"customer_phone",
	"restaurant_name",
	"restaurant_address",
	"party_size",
	"time_slot",
	"tables_reserved",
	"status",
	"special_requests",
	"created_at",
	"updated_at",
}

// csvBookingLedger stores one bookings file per date. Records are append-only
// in spirit: cancellation rewrites the row with a new status, nothing is ever
// removed. Callers serialize access per date.
type csvBookingLedger struct {
	dataDir        string
	guestsPerTable int
}

func NewCSVBookingLedger(dataDir string, guestsPerTable int) BookingLedger {
	return &csvBookingLedger{dataDir: dataDir, guestsPerTable: guestsPerTable}
}

func (l *csvBookingLedger) Insert(ctx context.Context, date string, booking *model.Booking) (*model.Booking, error) {
	bookings, err := l.loadAll(ctx, date)
	if err != nil {
		return nil, err
	}

	id := model.NewBookingID()
	if bookingIDTaken(bookings, id) {
		// A second draw after an 8-char collision; ids are checked against
		// the whole file so a repeat here is effectively impossible.
		id = model.NewBookingID()
		if bookingIDTaken(bookings, id) {
			return nil, fmt.Errorf("failed to generate unique booking id for %s", date)
		}
	}

	// Second precision only: RFC3339 is what the file carries, so anything
	// finer would not survive a reload.
	now := time.Now().UTC().Truncate(time.Second)
	stored := *booking
	stored.BookingID = id
	stored.Date = date
	stored.TablesReserved = model.TablesNeeded(booking.PartySize, l.guestsPerTable)
	stored.Status = model.StatusConfirmed
	stored.CreatedAt = now
	stored.UpdatedAt = now

	bookings = append(bookings, &stored)
	if err := l.writeAll(date, bookings); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (l *csvBookingLedger) FindByID(ctx context.Context, date, bookingID string) (*model.Booking, error) {
	bookings, err := l.loadAll(ctx, date)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		if b.BookingID == bookingID {
			return b, nil
		}
	}
	return nil, reserrors.ErrNotFound
}

func (l *csvBookingLedger) FindByCustomer(ctx context.Context, date string, identity model.CustomerIdentity) ([]*model.Booking, error) {
	bookings, err := l.loadAll(ctx, date)
	if err != nil {
		return nil, err
	}
	var matches []*model.Booking
	for _, b := range bookings {
		if strings.EqualFold(b.CustomerName, identity.Name) &&
			strings.EqualFold(b.CustomerEmail, identity.Email) &&
			strings.EqualFold(b.CustomerPhone, identity.Phone) {
			matches = append(matches, b)
		}
	}
	return matches, nil
}

func (l *csvBookingLedger) UpdateStatus(ctx context.Context, date, bookingID, status string) error {
	bookings, err := l.loadAll(ctx, date)
	if err != nil {
		return err
	}
	for _, b := range bookings {
		if b.BookingID == bookingID {
			b.Status = status
			b.UpdatedAt = time.Now().UTC().Truncate(time.Second)
			return l.writeAll(date, bookings)
		}
	}
	return reserrors.ErrNotFound
}

func (l *csvBookingLedger) All(ctx context.Context, date string) ([]*model.Booking, error) {
	return l.loadAll(ctx, date)
}

// loadAll reads a date's bookings file. A missing file means no bookings yet,
// not an error; the file is only created on first insert.
func (l *csvBookingLedger) loadAll(ctx context.Context, date string) ([]*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := bookingsPath(l.dataDir, date)
	if !fileExists(path) {
		return nil, nil
	}

	records, err := readCSVFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for %s: %w", date, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	bookings := make([]*model.Booking, 0, len(records)-1)
	for i, record := range records[1:] {
		b, err := parseBookingRecord(date, record)
		if err != nil {
			return nil, fmt.Errorf("bookings row %d for %s: %w", i+2, date, err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

func (l *csvBookingLedger) writeAll(date string, bookings []*model.Booking) error {
	records := make([][]string, 0, len(bookings)+1)
	records = append(records, bookingCSVHeader)
	for _, b := range bookings {
		records = append(records, []string{
			b.BookingID,
			b.CustomerName,
			b.CustomerEmail,
			b.CustomerPhone,
			b.RestaurantName,
			b.RestaurantAddress,
			strconv.Itoa(b.PartySize),
			b.TimeSlot,
			strconv.Itoa(b.TablesReserved),
			b.Status,
			b.SpecialRequests,
			b.CreatedAt.Format(time.RFC3339),
			b.UpdatedAt.Format(time.RFC3339),
		})
	}
	return writeCSVFile(bookingsPath(l.dataDir, date), records)
}

func parseBookingRecord(date string, record []string) (*model.Booking, error) {
	if len(record) != len(bookingCSVHeader) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(bookingCSVHeader), len(record))
	}

	partySize, err := strconv.Atoi(strings.TrimSpace(record[6]))
	if err != nil {
		return nil, fmt.Errorf("invalid party_size %q: %w", record[6], err)
	}
	tables, err := strconv.Atoi(strings.TrimSpace(record[8]))
	if err != nil {
		return nil, fmt.Errorf("invalid tables_reserved %q: %w", record[8], err)
	}
	createdAt, err := time.Parse(time.RFC3339, strings.TrimSpace(record[11]))
	if err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", record[11], err)
	}
	updatedAt, err := time.Parse(time.RFC3339, strings.TrimSpace(record[12]))
	if err != nil {
		return nil, fmt.Errorf("invalid updated_at %q: %w", record[12], err)
	}

	return &model.Booking{
		BookingID:         record[0],
		Date:              date,
		CustomerName:      record[1],
		CustomerEmail:     record[2],
		CustomerPhone:     record[3],
		RestaurantName:    record[4],
		RestaurantAddress: record[5],
		PartySize:         partySize,
		TimeSlot:          record[7],
		TablesReserved:    tables,
		Status:            record[9],
		SpecialRequests:   record[10],
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}, nil
}

func bookingIDTaken(bookings []*model.Booking, id string) bool {
	for _, b := range bookings {
		if b.BookingID == id {
			return true
		}
	}
	return false
}
