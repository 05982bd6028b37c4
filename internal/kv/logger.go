package kv

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/cockroachdb/pebble"
)

// NewPebbleLogger returns a pebble.Logger writing to l.
func NewPebbleLogger(l *slog.Logger) pebble.Logger {
	return &pebbleLogger{l: l.With("component", "pebble")}
}

type pebbleLogger struct {
	l *slog.Logger
}

func (p *pebbleLogger) Infof(format string, args ...interface{}) {
	p.l.Info(message(format, args))
}

func (p *pebbleLogger) Errorf(format string, args ...interface{}) {
	p.l.Error(message(format, args))
}

func (p *pebbleLogger) Fatalf(format string, args ...interface{}) {
	p.l.Error(message(format, args))
	os.Exit(1)
}

func message(format string, args []interface{}) string {
	return strings.TrimSuffix(fmt.Sprintf(format, args...), "\n")
}
