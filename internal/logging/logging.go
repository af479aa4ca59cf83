// Package logging configures the process logger.
package logging

import (
	"io"
	"time"

	log "github.com/sirupsen/logrus"
)

// New returns a logger writing text lines to w.
// Only warnings and above are emitted unless debug is set.
func New(w io.Writer, debug bool) *log.Logger {
	logger := log.New()
	logger.SetOutput(w)
	logger.SetFormatter(&log.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})
	logger.SetLevel(log.WarnLevel)
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	logger := log.New()
	logger.SetOutput(io.Discard)
	return logger
}

// LogRequest records one API round trip.
func LogRequest(logger *log.Logger, method, path string, status int, err error, latency time.Duration) {
	logger.WithFields(log.Fields{
		"method":          method,
		"path":            path,
		"status":          status,
		"err":             err,
		"latency_seconds": latency.Seconds(),
	}).Debug("API request executed")
}
