package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "groundbook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Seeded operating hours for newly created grounds: open every day
	// 06:00-23:00 with hourly slots.
	DefaultOpenTime        = "06:00"
	DefaultCloseTime       = "23:00"
	DefaultSlotDurationMin = 60

	DefaultKafkaBrokers       = "localhost:9092"
	DefaultBookingEventsTopic = "booking.events"

	DefaultCORSOrigins = "http://localhost:5173"

	DefaultPaginationLimit = 100
)
