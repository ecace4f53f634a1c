// Package logger builds the zerolog logger used by the service and adapts
// it to the message-oriented logging contract of the HTTP handlers.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Options struct {
	Level  string
	Format string
	Out    io.Writer
}

// New returns a logger writing to opts.Out (stderr when nil). Format
// "console" selects the human-readable writer; anything else emits JSON.
func New(opts Options) zerolog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	if strings.EqualFold(opts.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		Level(ParseLevel(opts.Level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel falls back to info for empty or unknown values.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// Logger is the message-oriented contract Service fulfils.
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

// Service logs plain messages at a fixed severity.
type Service struct {
	log zerolog.Logger
}

func NewService(log zerolog.Logger) *Service {
	return &Service{log: log}
}

// With returns a copy that tags every message with key=value.
func (s *Service) With(key, value string) Logger {
	return &Service{log: s.log.With().Str(key, value).Logger()}
}

func (s *Service) Info(msg string) {
	s.log.Info().Msg(msg)
}

func (s *Service) Warn(msg string) {
	s.log.Warn().Msg(msg)
}

func (s *Service) Error(msg string) {
	s.log.Error().Msg(msg)
}
