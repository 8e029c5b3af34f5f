package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates the process-wide logger with human-readable console output.
func New() zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(output).With().Timestamp().Logger()
}
