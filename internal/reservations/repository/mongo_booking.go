package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	reserrors "goodfoods/internal/reservations/errors"
	"goodfoods/pkg/config"
	"goodfoods/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const BookingCollection = "Bookings"

type mongoBookingLedger struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingLedger(cfg *config.Config) BookingLedger {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingLedger{
		cfg:        cfg,
		collection: db.Collection(BookingCollection),
	}
}

// caseInsensitive matches text fields regardless of letter case.
var caseInsensitive = &options.Collation{Locale: "en", Strength: 2}

func (l *mongoBookingLedger) Insert(ctx context.Context, date string, booking *model.Booking) (*model.Booking, error) {
	ctx, cancel := withTimeout(ctx, l.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	booking.BookingID = model.NewBookingID()
	booking.Date = date
	booking.TablesReserved = model.TablesNeeded(booking.PartySize, l.cfg.GuestsPerTable)
	booking.Status = model.StatusConfirmed
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := l.collection.InsertOne(ctx, booking); err != nil {
		// An 8-character id can collide; retry once with a fresh id before
		// giving up.
		if mongo.IsDuplicateKeyError(err) {
			booking.BookingID = model.NewBookingID()
			if _, retryErr := l.collection.InsertOne(ctx, booking); retryErr == nil {
				return booking, nil
			}
		}
		return nil, fmt.Errorf("failed to insert booking: %w", err)
	}
	return booking, nil
}

func (l *mongoBookingLedger) FindByID(ctx context.Context, date, bookingID string) (*model.Booking, error) {
	ctx, cancel := withTimeout(ctx, l.cfg.ReadTimeout)
	defer cancel()

	var booking model.Booking
	err := l.collection.FindOne(ctx, bson.M{"_id": bookingID, "date": date}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &booking, nil
}

func (l *mongoBookingLedger) FindByCustomer(ctx context.Context, date string, identity model.CustomerIdentity) ([]*model.Booking, error) {
	ctx, cancel := withTimeout(ctx, l.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"date":           date,
		"customer_name":  identity.Name,
		"customer_email": identity.Email,
		"customer_phone": identity.Phone,
	}
	opts := options.Find().
		SetCollation(caseInsensitive).
		SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := l.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (l *mongoBookingLedger) UpdateStatus(ctx context.Context, date, bookingID, status string) error {
	ctx, cancel := withTimeout(ctx, l.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC().Truncate(time.Millisecond),
	}}
	result, err := l.collection.UpdateOne(ctx, bson.M{"_id": bookingID, "date": date}, update)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	if result.MatchedCount == 0 {
		return reserrors.ErrNotFound
	}
	return nil
}

func (l *mongoBookingLedger) All(ctx context.Context, date string) ([]*model.Booking, error) {
	ctx, cancel := withTimeout(ctx, l.cfg.ReadTimeout)
	defer cancel()

	cursor, err := l.collection.Find(ctx, bson.M{"date": date},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
