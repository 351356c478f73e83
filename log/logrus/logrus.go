// Package logrus adapts a *logrus.Entry to the statefile.Logger seam.
// Passing an Entry (not the bare logger) lets callers pre-bind fields such
// as the tool name or profile.
package logrus

import (
	"github.com/sirupsen/logrus"
	"github.com/unkn0wn-root/statefile"
)

type LogrusLogger struct{ E *logrus.Entry }

var _ statefile.Logger = LogrusLogger{}

func (l LogrusLogger) Debug(msg string, f statefile.Fields) {
	l.E.WithFields(logrus.Fields(f)).Debug(msg)
}
func (l LogrusLogger) Info(msg string, f statefile.Fields) {
	l.E.WithFields(logrus.Fields(f)).Info(msg)
}
func (l LogrusLogger) Warn(msg string, f statefile.Fields) {
	l.E.WithFields(logrus.Fields(f)).Warn(msg)
}
func (l LogrusLogger) Error(msg string, f statefile.Fields) {
	l.E.WithFields(logrus.Fields(f)).Error(msg)
}
