package cli

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// newLogger creates the process logger. A terminal gets human-readable text,
// anything else (pipes, CI, tests) gets one JSON object per line.
// An unparsable level falls back to warn; config validation rejects those
// before we get here.
func newLogger(errOut io.Writer, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(errOut)

	if f, ok := errOut.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.WarnLevel
	}

	logger.SetLevel(lvl)

	return logger
}
