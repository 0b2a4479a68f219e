package repository

import (
	"context"
	"fmt"
	"time"

	reserrors "goodfoods/internal/reservations/errors"
	"goodfoods/pkg/config"
	"goodfoods/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const DateLockCollection = "Slot_locks"

type mongoDateLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoDateLockRepository(cfg *config.Config) DateLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoDateLockRepository{
		cfg:        cfg,
		collection: db.Collection(DateLockCollection),
	}
}

// Acquire inserts the lock document; the unique _id turns a concurrent
// acquire into a duplicate-key error. Expiry is cleaned up by the TTL index
// so a crashed holder releases automatically.
func (r *mongoDateLockRepository) Acquire(ctx context.Context, lockID string, ttl time.Duration) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	lock := &model.DateLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(ttl),
		CreatedAt: time.Now(),
	}

	if _, err := r.collection.InsertOne(ctx, lock); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return reserrors.ErrLockHeld
		}
		return fmt.Errorf("failed to acquire slot lock: %w", err)
	}
	return nil
}

func (r *mongoDateLockRepository) Release(ctx context.Context, lockID string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID}); err != nil {
		return fmt.Errorf("failed to release slot lock: %w", err)
	}
	return nil
}
