package repository

import (
	"context"
	"time"

	"goodfoods/pkg/model"
)

// RestaurantDirectory serves the read-only restaurant reference feed. Rows
// are loaded fresh per operation; no caching contract is assumed.
type RestaurantDirectory interface {
	All(ctx context.Context) ([]*model.Restaurant, error)
	// FindByName returns reserrors.ErrUnknownRestaurant when no row matches.
	FindByName(ctx context.Context, name string) (*model.Restaurant, error)
}

// AvailabilityStore is the per-date table-count matrix. Matrix lazily seeds
// never-seen dates from the restaurant directory and must not re-seed
// destructively when data already exists.
type AvailabilityStore interface {
	Matrix(ctx context.Context, date string) (model.AvailabilityMatrix, error)
	TableCount(ctx context.Context, date, restaurant, slot string) (int, error)
	// Adjust applies cell += delta and persists. The sign convention is
	// caller-determined: negative consumes tables, positive releases them.
	// Fails with ErrUnknownRestaurant, ErrUnknownSlot, or ErrWouldGoNegative
	// (cell left unmodified) without applying anything.
	Adjust(ctx context.Context, date, restaurant, slot string, delta int) error
}

// BookingLedger is the per-date booking record store. Records are never
// physically deleted; cancellation is a status change.
type BookingLedger interface {
	// Insert assigns a fresh unique id, computes tables reserved, stamps both
	// timestamps, sets status confirmed, and persists. The id is generated
	// here, not by the caller, so uniqueness is the ledger's guarantee.
	Insert(ctx context.Context, date string, booking *model.Booking) (*model.Booking, error)
	FindByID(ctx context.Context, date, bookingID string) (*model.Booking, error)
	// FindByCustomer matches the (name, email, phone) triple
	// case-insensitively on text fields.
	FindByCustomer(ctx context.Context, date string, identity model.CustomerIdentity) ([]*model.Booking, error)
	UpdateStatus(ctx context.Context, date, bookingID, status string) error
	All(ctx context.Context, date string) ([]*model.Booking, error)
}

// DateLockRepository provides cross-instance advisory locks over a booking
// slot. Acquire returns ErrLockHeld when another holder owns the lock.
type DateLockRepository interface {
	Acquire(ctx context.Context, lockID string, ttl time.Duration) error
	Release(ctx context.Context, lockID string) error
}
