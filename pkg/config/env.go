package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvStorageBackend     = "STORAGE_BACKEND"
	EnvDataDir            = "DATA_DIR"
	EnvRestaurantDataFile = "RESTAURANT_DATA_FILE"

	EnvBookingWindowDays = "BOOKING_WINDOW_DAYS"
	EnvMinLeadTime       = "MIN_LEAD_TIME"
	EnvGuestsPerTable    = "GUESTS_PER_TABLE"
	EnvBaseTableCapacity = "BASE_TABLE_CAPACITY"
	EnvSlotLockTTL       = "SLOT_LOCK_TTL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
