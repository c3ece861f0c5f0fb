package helpers

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger: text output in development, JSON
// elsewhere. level overrides the env default when it parses ("debug", "warn", ...).
func NewLogger(appName, env, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if env == "development" {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if level != "" {
		if lvl, err := logrus.ParseLevel(level); err == nil {
			logger.SetLevel(lvl)
		} else {
			logger.WithError(err).Warn("ignoring LOG_LEVEL")
		}
	}
	logger.WithFields(logrus.Fields{"app": appName, "env": env, "level": logger.GetLevel().String()}).Info("logger initialized")
	return logger
}

// LogError logs msg at error level with err and optional fields.
func LogError(logger logrus.FieldLogger, msg string, err error, fields logrus.Fields) {
	entry := logger.WithFields(fields)
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Error(msg)
}

// LogInfo logs msg at info level with optional fields.
func LogInfo(logger logrus.FieldLogger, msg string, fields logrus.Fields) {
	logger.WithFields(fields).Info(msg)
}
