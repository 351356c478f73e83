package zap

import (
	"testing"

	"github.com/unkn0wn-root/statefile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerForwardsLevelsAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	var l statefile.Logger = ZapLogger{L: zap.New(core)}

	l.Debug("snapshot discarded", statefile.Fields{"reason": "gen_mismatch"})
	l.Info("hello", nil)
	l.Warn("reclaimed stale lock", statefile.Fields{"lock": "/tmp/state.json.lock"})
	l.Error("gave up acquiring lock", nil)

	entries := logs.All()
	if len(entries) != 4 {
		t.Fatalf("entries = %d, want 4", len(entries))
	}

	wantLevels := []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	for i, want := range wantLevels {
		if entries[i].Level != want {
			t.Errorf("entry %d level = %v, want %v", i, entries[i].Level, want)
		}
	}
	if got := entries[2].ContextMap()["lock"]; got != "/tmp/state.json.lock" {
		t.Errorf("lock field = %v", got)
	}
	if len(entries[1].Context) != 0 {
		t.Errorf("nil fields produced context %v", entries[1].Context)
	}
}
