package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the global logger
type Options struct {
	Level      string
	File       string // empty disables the rotating file
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Console    io.Writer // defaults to stderr
}

// Setup configures the global zerolog logger and returns a function that closes the log file
func Setup(opts Options) func() error {
	if opts.Console == nil {
		opts.Console = os.Stderr
	}
	console := zerolog.ConsoleWriter{Out: opts.Console, TimeFormat: time.RFC3339}

	closer := func() error { return nil }
	var output io.Writer = console
	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 50),
			MaxBackups: orDefault(opts.MaxBackups, 5),
			MaxAge:     orDefault(opts.MaxAgeDays, 28),
			Compress:   true,
		}
		output = zerolog.MultiLevelWriter(console, rotator)
		closer = rotator.Close
	}

	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if err != nil {
		log.Warn().Str("level", opts.Level).Msg("Invalid log level, using info")
	}

	return closer
}

// Component returns a child of the global logger tagged with the component name
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
