package logging

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dnum-mi/grist-sync-plugin/types"
)

// NewLogger builds the process logger. structured switches the output to JSON.
func NewLogger(verbosity string, structured bool) (*logrus.Logger, error) {
	logLevel, err := logrus.ParseLevel(verbosity)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %s", verbosity)
	}

	logger := logrus.New()
	logger.SetLevel(logLevel)
	logger.SetFormatter(&logrus.TextFormatter{})
	if structured {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger, nil
}

// LogrusSink forwards progress messages to a logrus logger. Success messages
// are logged at info level with a status field.
type LogrusSink struct {
	Logger *logrus.Logger
}

func NewLogrusSink(logger *logrus.Logger) *LogrusSink {
	return &LogrusSink{Logger: logger}
}

func (sink *LogrusSink) Log(message string, level types.LogLevel) {
	entry := sink.Logger.WithField("status", string(level))

	switch level {
	case types.LogLevelError:
		entry.Error(message)
	case types.LogLevelWarning:
		entry.Warn(message)
	default:
		entry.Info(message)
	}
}
