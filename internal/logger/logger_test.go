package logger

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	if New(false) == nil || New(true) == nil {
		t.Fatal("nil logger")
	}
	if New(false).Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("production logger must not log debug")
	}
	if !New(true).Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("debug logger must log debug")
	}
}

func TestErrorFieldIsStructured(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core).Sugar()

	log.Errorw("Failed to initialise Redis", "addr", "localhost:6379", zap.Error(errors.New("refused")))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries", len(entries))
	}
	fields := entries[0].ContextMap()
	if entries[0].Message != "Failed to initialise Redis" || fields["error"] != "refused" || fields["addr"] != "localhost:6379" {
		t.Fatalf("unexpected entry %q %v", entries[0].Message, fields)
	}
}
