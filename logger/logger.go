package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide logger. It is usable before Init is called so
// packages and tests can log without setup.
var Log = newDefault()

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	l.SetOutput(os.Stderr)
	return l
}

// Init configures Log once at startup. LOG_LEVEL overrides the default level
// ("info", or "debug" when debug is set) and LOG_FORMAT=json switches to the
// JSON formatter.
func Init(debug bool) {
	Log = logrus.New()

	fallback := logrus.InfoLevel
	if debug {
		fallback = logrus.DebugLevel
	}
	level := fallback
	if raw, ok := os.LookupEnv("LOG_LEVEL"); ok {
		if parsed, err := logrus.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)
}
