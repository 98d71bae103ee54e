// Package logging configures the client's file logger. The terminal belongs to
// the UI, so log output always goes to a rotating file.
package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupParams controls where and how verbosely the client logs.
type SetupParams struct {
	LogFileName string
	LogLevel    string
	// Writer replaces the rotating file when set (tests).
	Writer io.Writer
}

// Setup builds a logger and returns it with the closer for its output.
func Setup(params SetupParams) (*logrus.Logger, io.Closer) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
	logger.SetLevel(GetLevel(params.LogLevel))

	if params.Writer != nil {
		logger.SetOutput(params.Writer)
		return logger, nopCloser{}
	}

	if strings.TrimSpace(params.LogFileName) == "" {
		logger.SetOutput(io.Discard)
		return logger, nopCloser{}
	}

	fileName := params.LogFileName
	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		LocalTime:  true,
		Compress:   true,
	}
	logger.SetOutput(lumberJackLogger)
	return logger, lumberJackLogger
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// GetLevel maps a config string to a logrus level. Unknown values mean info.
func GetLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
