package cli

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// setupLogger configures and returns a zerolog logger
func setupLogger(level, environment string, out io.Writer) zerolog.Logger {
	// Parse log level
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	// Configure output format
	var logger zerolog.Logger
	if environment == "development" {
		// Pretty console output for development
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Caller().Logger()
	} else {
		// JSON output for production
		logger = zerolog.New(out).With().Timestamp().Logger()
	}

	return logger.Level(logLevel)
}
