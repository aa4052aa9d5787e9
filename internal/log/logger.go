// Package log provides the process logger and the LLM event collector.
package log

import (
	"io"
	"os"
	"strings"

	clog "github.com/charmbracelet/log"
)

var logger = clog.NewWithOptions(os.Stderr, clog.Options{
	Prefix:          "simupersona",
	ReportTimestamp: true,
	Level:           clog.InfoLevel,
})

// Logger returns the shared logger.
func Logger() *clog.Logger { return logger }

// SetLevel sets the minimum level (debug, info, warn, error). Unknown names
// keep the current level and return an error.
func SetLevel(level string) error {
	if strings.TrimSpace(level) == "" {
		return nil
	}
	parsed, err := clog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return err
	}
	logger.SetLevel(parsed)
	return nil
}

// SetOutput redirects log output.
func SetOutput(w io.Writer) { logger.SetOutput(w) }

func Debugf(format string, args ...interface{}) { logger.Debugf(format, args...) }

func Infof(format string, args ...interface{}) { logger.Infof(format, args...) }

func Warnf(format string, args ...interface{}) { logger.Warnf(format, args...) }

func Errorf(format string, args ...interface{}) { logger.Errorf(format, args...) }
