package main

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	logDir      = "logs"
	logFileName = "tiltpick.log"
)

// setupLogging routes slog and log to logs/tiltpick.log when debug is set
// Output is discarded otherwise since the terminal is owned by the screen
func setupLogging(debug bool) *os.File {
	if !debug {
		discardLogs()
		return nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		discardLogs()
		return nil
	}

	f, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		discardLogs()
		return nil
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	log.SetOutput(f)
	return f
}

func discardLogs() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	log.SetOutput(io.Discard)
}
