package main

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// The terminal front end owns stdout, so logging is silent unless a log
// file is configured.
var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	return l
}

// setupLogging points the logger at path. The returned closer is never nil.
func setupLogging(path string, verbose bool) (io.Closer, error) {
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if path == "" {
		return io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return io.NopCloser(nil), err
	}
	log.SetOutput(f)
	return f, nil
}
