package model

// Logger defines the interface for structured logging operations, plus the
// lifecycle hooks owned by the process entry point.
type Logger interface {
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Info(msg string, args ...any)
	Debug(msg string, args ...any)
	UpdateLevel(logLvl string)
	Shutdown()
}
