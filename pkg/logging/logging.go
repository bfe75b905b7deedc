package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/rs/zerolog"

	"github.com/df07/go-whitted-raytracer/pkg/config"
)

// New builds a zerolog logger writing to out in the configured level and format
func New(cfg config.LogConfig, out io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return zerolog.Nop(), errorsmod.Wrapf(config.ErrInvalidConfig, "log level %q: %v", cfg.Level, err)
	}
	if cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	switch cfg.Format {
	case "json":
	case "console", "":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	default:
		return zerolog.Nop(), errorsmod.Wrapf(config.ErrInvalidConfig, "log format %q", cfg.Format)
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

// Adapter exposes a zerolog logger through the Printf-style core.Logger interface
type Adapter struct {
	logger zerolog.Logger
	level  zerolog.Level
}

// NewAdapter logs every Printf call at the given level
func NewAdapter(logger zerolog.Logger, level zerolog.Level) *Adapter {
	return &Adapter{logger: logger, level: level}
}

// Printf formats and logs a message, dropping the trailing newline
func (a *Adapter) Printf(format string, args ...interface{}) {
	a.logger.WithLevel(a.level).Msg(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

// Nop returns an adapter that discards everything
func Nop() *Adapter {
	return NewAdapter(zerolog.Nop(), zerolog.InfoLevel)
}
