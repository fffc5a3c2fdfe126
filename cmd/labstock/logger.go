package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// levelRouter is a zerolog.LevelWriter that routes info and warn to stdout
// and error and above to stderr. A file, when set, receives every level.
type levelRouter struct {
	stdout io.Writer
	stderr io.Writer
	file   io.Writer
}

func (lr *levelRouter) Write(p []byte) (int, error) {
	return lr.WriteLevel(zerolog.InfoLevel, p)
}

func (lr *levelRouter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	w := lr.stdout
	if level >= zerolog.ErrorLevel {
		w = lr.stderr
	}
	if lr.file != nil {
		lr.file.Write(p)
	}
	return w.Write(p)
}

// setupLogger builds the process logger and installs it as the global one.
// The returned cleanup closes the log file, if one was opened.
func setupLogger(level, logPath string) (zerolog.Logger, func(), error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	router := &levelRouter{
		stdout: zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339, NoColor: true},
		stderr: zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339, NoColor: true},
	}

	cleanup := func() {}
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Logger{}, nil, fmt.Errorf("opening log file: %w", err)
		}
		router.file = f
		cleanup = func() { f.Close() }
	}

	logger := zerolog.New(router).Level(lvl).With().Timestamp().Logger()
	log.Logger = logger
	return logger, cleanup, nil
}
