package schemaful

// Logger receives debug traces from parsing and projection.
type Logger interface {
	Debugf(format string, args ...any)
}

// LoggerFunc adapts a printf-style function to Logger.
type LoggerFunc func(format string, args ...any)

func (f LoggerFunc) Debugf(format string, args ...any) { f(format, args...) }
