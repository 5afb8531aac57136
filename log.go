package asppack

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger returns the diagnostics logger. Only warnings are shown unless
// verbose or debug output was requested.
func NewLogger(out io.Writer, verbose, debug bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	switch {
	case debug:
		log.SetLevel(logrus.DebugLevel)
	case verbose:
		log.SetLevel(logrus.InfoLevel)
	default:
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}
