package domain

// Identifier generation defaults
const (
	DefaultIDLength      = 12
	DefaultIDMaxAttempts = 5
)

// TimestampFormat booking start/end wire format (ISO-8601)
const TimestampFormat = "2006-01-02T15:04:05Z07:00"
