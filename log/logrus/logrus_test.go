package logrus

import (
	"testing"

	"github.com/sirupsen/logrus"
	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/unkn0wn-root/statefile"
)

func TestLogrusLoggerForwardsLevelsAndFields(t *testing.T) {
	base, hook := logrustest.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)
	var l statefile.Logger = LogrusLogger{E: logrus.NewEntry(base)}

	l.Warn("reclaimed stale lock", statefile.Fields{"age": "6s"})
	l.Debug("snapshot discarded", nil)

	entries := hook.AllEntries()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Level != logrus.WarnLevel || entries[0].Message != "reclaimed stale lock" {
		t.Errorf("entry 0 = %v %q", entries[0].Level, entries[0].Message)
	}
	if entries[0].Data["age"] != "6s" {
		t.Errorf("age field = %v", entries[0].Data["age"])
	}
	if entries[1].Level != logrus.DebugLevel {
		t.Errorf("entry 1 level = %v, want debug", entries[1].Level)
	}
}
