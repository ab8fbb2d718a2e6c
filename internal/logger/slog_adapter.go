package logger

import (
	"log/slog"
)

// slogAdapter implements AppLogger on top of *slog.Logger.
type slogAdapter struct {
	adaptee *slog.Logger
}

// NewSlogAdapter wraps l, falling back to slog.Default() when l is nil.
func NewSlogAdapter(l *slog.Logger) AppLogger {
	if l == nil {
		l = slog.Default()
	}
	return &slogAdapter{adaptee: l}
}

func (s *slogAdapter) Debug(msg string, args ...any) { s.adaptee.Debug(msg, args...) }

func (s *slogAdapter) Info(msg string, args ...any) { s.adaptee.Info(msg, args...) }

func (s *slogAdapter) Warn(msg string, args ...any) { s.adaptee.Warn(msg, args...) }

func (s *slogAdapter) Error(msg string, args ...any) { s.adaptee.Error(msg, args...) }

func (s *slogAdapter) With(args ...any) AppLogger {
	return &slogAdapter{adaptee: s.adaptee.With(args...)}
}
