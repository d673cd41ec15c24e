package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "pitstop"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultLogLevel = "info"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)

// Shop-floor scheduling defaults. All of these are explicit configuration,
// never ambient state: every engine operation receives them through Rules.
const (
	DefaultMaxBays   = 3
	DefaultOpenHour  = 7
	DefaultCloseHour = 19

	DefaultMinAppointmentMinutes = 15
	DefaultMaxAppointmentMinutes = 480
)

const DefaultPaginationLimit = 50
