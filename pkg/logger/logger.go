package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, text
	Output io.Writer

	// ErrorLogFile, when set, also receives every error-level entry with
	// its caller. Left empty in debug mode.
	ErrorLogFile string
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds the logger. The returned closer releases the error log file.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var primary io.Writer = output
	if cfg.Format == "text" {
		primary = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	if cfg.ErrorLogFile == "" {
		l := zerolog.New(primary).Level(level).With().Timestamp().Logger()
		return l, nopCloser{}, nil
	}

	f, err := os.OpenFile(cfg.ErrorLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open error log: %w", err)
	}

	w := zerolog.MultiLevelWriter(
		primary,
		&zerolog.FilteredLevelWriter{
			Writer: zerolog.LevelWriterAdapter{Writer: f},
			Level:  zerolog.ErrorLevel,
		},
	)
	l := zerolog.New(w).Level(level).With().Timestamp().Caller().Logger()
	return l, f, nil
}

// SetGlobal installs l as the package-level zerolog logger.
func SetGlobal(l zerolog.Logger) {
	log.Logger = l
}
