package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "goodfoods"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	// StorageCSV keeps reservation state in per-date flat files, matching the
	// original tracker/bookings wire format. StorageMongo is the migrated
	// deployment.
	StorageCSV   = "csv"
	StorageMongo = "mongo"

	DefaultStorageBackend     = StorageCSV
	DefaultDataDir            = "data"
	DefaultRestaurantDataFile = "restaurantData.csv"

	DefaultBookingWindowDays = 3
	DefaultMinLeadTime       = 30 * time.Minute
	DefaultGuestsPerTable    = 4
	DefaultBaseTableCapacity = 10
	DefaultSlotLockTTL       = 10 * time.Second

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
