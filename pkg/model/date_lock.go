package model

import "time"

// DateLock is an advisory lock keyed by (date, restaurant, slot) that keeps
// two instances from racing through the same load-then-store window. Expiry
// is enforced by a TTL index so a crashed holder cannot wedge the slot.
type DateLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
