package logger

import (
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Logger defines the interface for logging messages.
type Logger interface {
	Error(msg string, err error)
	Warn(msg string)
	Info(msg string)
	Debug(msg string)
}

type logrusLogger struct {
	log *logrus.Logger
}

var (
	loggerInstance *logrusLogger
	once           sync.Once
)

// New creates a new singleton logger backed by logrus.
// The level is taken from the LOG_LEVEL environment variable (default: info).
func New() Logger {
	once.Do(func() {
		l := logrus.New()
		l.SetOutput(os.Stdout)
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})

		level, err := logrus.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))
		if err != nil {
			level = logrus.InfoLevel
		}
		l.SetLevel(level)

		loggerInstance = &logrusLogger{log: l}
	})
	return loggerInstance
}

// Error logs an error message together with the causing error, if any.
func (l *logrusLogger) Error(msg string, err error) {
	if err != nil {
		l.log.WithError(err).Error(msg)
		return
	}
	l.log.Error(msg)
}

func (l *logrusLogger) Warn(msg string) {
	l.log.Warn(msg)
}

func (l *logrusLogger) Info(msg string) {
	l.log.Info(msg)
}

func (l *logrusLogger) Debug(msg string) {
	l.log.Debug(msg)
}
