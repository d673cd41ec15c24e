package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvMaxBays   = "MAX_BAYS"
	EnvOpenHour  = "OPEN_HOUR"
	EnvCloseHour = "CLOSE_HOUR"

	EnvMinAppointmentMinutes = "MIN_APPOINTMENT_MINUTES"
	EnvMaxAppointmentMinutes = "MAX_APPOINTMENT_MINUTES"
)
