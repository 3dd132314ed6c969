package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// runIDHook stamps every log entry with the run identifier.
type runIDHook struct {
	runID string
}

func (h runIDHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h runIDHook) Fire(entry *logrus.Entry) error {
	entry.Data["run"] = h.runID
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// setupLogging configures the standard logrus logger: level, destination
// and a hook adding the run field. A log file is truncated on open. The
// returned closer releases it on normal return; a fatal exit closes it
// through a logrus exit handler.
func setupLogging(level, file, runID string) (io.Closer, error) {
	return configureLogger(logrus.StandardLogger(), level, file, runID)
}

func configureLogger(logger *logrus.Logger, level, file, runID string) (io.Closer, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if runID != "" {
		logger.AddHook(runIDHook{runID: runID})
	}

	if file == "" {
		logger.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	logger.SetOutput(f)
	// Fatalf exits without running deferred calls.
	logrus.RegisterExitHandler(func() { f.Close() })
	return f, nil
}
