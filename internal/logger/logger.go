package logger

import (
    "os"
    "time"

    "github.com/rs/zerolog"
    "github.com/rs/zerolog/log"
)

// New builds the process logger. Diagnostics go to stderr so report paths
// printed on stdout stay machine-readable; verbose lowers the level to debug.
func New(verbose bool) zerolog.Logger {
    output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
    level := zerolog.InfoLevel
    if verbose {
        level = zerolog.DebugLevel
    }
    logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
    log.Logger = logger
    return logger
}
