package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New initializes the base zerolog.Logger that every component derives its
// own scoped logger from. 'devMode' enables human-readable console logging.
func New(devMode bool) zerolog.Logger {
	if devMode {
		// Colorful, human-readable output for local development
		consoleWriter := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}
		return zerolog.New(consoleWriter).With().Timestamp().Logger()
	}

	// Efficient JSON output for production
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
