package utils

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// init configures the shared logger when the package is imported.
func init() {
	log.SetFormatter(&log.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
	})
	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)
}

// SetLevel parses a level name ("debug", "warn", ...) and applies it.
// Unknown names leave the current level untouched.
func SetLevel(name string) {
	if name == "" {
		return
	}
	lvl, err := log.ParseLevel(name)
	if err != nil {
		Warn("unknown log level, keeping current", map[string]any{"level": name})
		return
	}
	log.SetLevel(lvl)
}

// SetOutput redirects log output. The CLI keeps stdout for rendered views.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// Debug logs a message at debug level with optional fields
func Debug(message string, fields map[string]any) {
	log.WithFields(fields).Debug(message)
}

// Info logs a message at info level with optional fields
func Info(message string, fields map[string]any) {
	log.WithFields(fields).Info(message)
}

// Warn logs a message at warning level with optional fields
func Warn(message string, fields map[string]any) {
	log.WithFields(fields).Warn(message)
}

// Error logs a message at error level with optional fields
func Error(message string, fields map[string]any) {
	log.WithFields(fields).Error(message)
}

// Fatal logs a message at fatal level and exits the application
func Fatal(message string, fields map[string]any) {
	log.WithFields(fields).Fatal(message)
}
