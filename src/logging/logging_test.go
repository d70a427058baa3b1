package logging

// Every wrapper accepts slog key/value pairs, FatalLog included. Callers
// rely on that shape, so pin it at compile time (FatalLog itself cannot be
// invoked from a test, it exits the process).
var (
	_ func(string, ...any) = FatalLog
	_ func(string, ...any) = Info
	_ func(string, ...any) = Warn
	_ func(string, ...any) = Error
)
