// Package ptlog gives every store the same logrus logger, configured with
// full timestamps for pointer-analysis runs.
package ptlog

import (
	"os"

	"github.com/sirupsen/logrus"
)

var L = newLogger()

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetOutput(os.Stderr)
	return log
}

// Precondition logs a precondition violation and panics. Stores call this
// instead of os.Exit-ing: this is a library, and the solver embedding it may
// wish to recover.
func Precondition(kind, op string, fields logrus.Fields) {
	if fields == nil {
		fields = logrus.Fields{}
	}
	fields["store"] = kind
	fields["op"] = op
	L.WithFields(fields).Panic("precondition violation: " + kind + "." + op)
}
