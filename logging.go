package vkdebug

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// LogLevelEnv selects the minimum level NewLoggerFromEnv emits
const LogLevelEnv = "VKDEBUG_LOG"

// ParseLogLevel accepts error, warn, info, debug and trace. An empty string
// means info.
func ParseLogLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return zerolog.InfoLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "info":
		return zerolog.InfoLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "trace":
		return zerolog.TraceLevel, nil
	}
	return zerolog.NoLevel, fmt.Errorf("unknown log level %q", s)
}

// LevelFromEnv reads the level from LogLevelEnv
func LevelFromEnv() (zerolog.Level, error) {
	return ParseLogLevel(os.Getenv(LogLevelEnv))
}

// NewLogger creates the logger messages are written to. Every record goes out
// in a single locked write so concurrent callers never interleave.
func NewLogger(w io.Writer, level zerolog.Level, console bool) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	// the global level is debug by default and would swallow trace records
	if level < zerolog.GlobalLevel() {
		zerolog.SetGlobalLevel(level)
	}
	if console {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: "15:04:05",
		}
	}
	return zerolog.New(zerolog.SyncWriter(w)).
		Level(level).
		With().
		Timestamp().
		Str("app", "vkdebug").
		Logger()
}

// NewLoggerFromEnv creates a console logger on stderr at the level from
// LogLevelEnv, an invalid value falls back to info and is reported.
func NewLoggerFromEnv() zerolog.Logger {
	level, err := LevelFromEnv()
	if err != nil {
		log := NewLogger(os.Stderr, zerolog.InfoLevel, true)
		log.Warn().Err(err).Str("env", LogLevelEnv).Msg("falling back to info")
		return log
	}
	return NewLogger(os.Stderr, level, true)
}
