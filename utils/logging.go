package common

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// SetupLogger installs the process-wide logger used by every tool.
// verbose enables debug output, quiet limits output to warnings and errors.
func SetupLogger(w io.Writer, verbose, quiet bool) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "metapep",
	})
	switch {
	case verbose:
		logger.SetLevel(log.DebugLevel)
	case quiet:
		logger.SetLevel(log.WarnLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	log.SetDefault(logger)
	return logger
}

// Logger returns the process-wide logger.
func Logger() *log.Logger {
	return log.Default()
}
