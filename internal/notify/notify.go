// Package notify delivers human-readable descriptions of ledger events to an
// external sink. The ledger only hands over text; the sink decides how it is
// surfaced.
package notify

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Sink receives one event per ledger mutation.
type Sink interface {
	Event(action string, details string)
}

type zapSink struct {
	log *zap.Logger
}

// NewZapSink returns a Sink that logs events through the given zap logger.
func NewZapSink(log *zap.Logger) Sink {
	return &zapSink{log: log}
}

func (s *zapSink) Event(action, details string) {
	s.log.Info(details, zap.String("action", action))
}

type discardSink struct{}

// Discard returns a Sink that drops every event.
func Discard() Sink {
	return discardSink{}
}

func (discardSink) Event(string, string) {}

// NewLogger builds a production zap logger at the given level. An empty or
// unknown level falls back to info.
func NewLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
