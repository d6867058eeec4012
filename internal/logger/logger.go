package logger

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

const timeFormat = "2006-01-02T15:04:05.000Z07:00"

var once sync.Once
var log zerolog.Logger

// The engineering log goes to stderr; stdout is reserved for the
// operator-facing messages the button tools and safety monitor print.
func configure() {
	zerolog.TimeFieldFormat = timeFormat

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: timeFormat,
	}

	log = zerolog.New(output).With().Timestamp().Logger()
}

func GetLoggerConfigured(level zerolog.Level) *zerolog.Logger {
	once.Do(configure)
	zerolog.SetGlobalLevel(level)
	return &log
}

func GetLogger() *zerolog.Logger {
	once.Do(configure)
	return &log
}
