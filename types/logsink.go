package types

type LogLevel string

const (
	LogLevelInfo    LogLevel = "info"
	LogLevelSuccess LogLevel = "success"
	LogLevelWarning LogLevel = "warning"
	LogLevelError   LogLevel = "error"
)

// LogSink receives progress narration. Implementations must not block.
type LogSink interface {
	Log(message string, level LogLevel)
}

type NoopLogSink struct{}

func (NoopLogSink) Log(message string, level LogLevel) {}
