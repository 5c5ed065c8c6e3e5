// Package logger builds the application's structured loggers.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a component-tagged structured logger writing JSON to
// stdout. In the dev environment output switches to the human-readable
// console format and the level drops to debug.
func New(env, component string) zerolog.Logger {
	level := zerolog.InfoLevel
	var out = zerolog.New(os.Stdout)
	if env == "dev" {
		level = zerolog.DebugLevel
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	return out.Level(level).With().
		Timestamp().
		Str("component", component).
		Logger()
}
