package outbound

// Logger defines the interface for structured logging operations.
// Methods are asynchronous so the watch loop never blocks on output.
type Logger interface {
	// logs messages with optional structured key/value arguments
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
}
