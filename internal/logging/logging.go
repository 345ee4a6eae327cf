// Package logging configures the process-wide logrus logger.
package logging

import (
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

// Setup applies the level and output format to the standard logrus logger.
// format is either "text" or "json".
func Setup(level, format string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	switch format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{TimestampFormat: time.RFC3339})
	case "text", "":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	default:
		return fmt.Errorf("logging: unknown format %q", format)
	}

	log.SetOutput(os.Stdout)
	log.SetLevel(lvl)
	return nil
}

// WithComponent returns a log entry tagged with the component name.
func WithComponent(component string) *log.Entry {
	return log.WithField("component", component)
}

// WithComponentAndFields returns a log entry tagged with the component name and
// the given fields.
func WithComponentAndFields(component string, fields log.Fields) *log.Entry {
	return WithComponent(component).WithFields(fields)
}
