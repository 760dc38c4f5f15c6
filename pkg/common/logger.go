package common

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures the global zerolog logger. Console output is meant
// for people, json output for log collectors.
func InitLogger(out io.Writer, console, verbose bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if console {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}).With().
			Str("service", "storefront").
			Logger()
		return
	}
	log.Logger = zerolog.New(out).
		With().
		Timestamp().
		Str("service", "storefront").
		Logger()
}
