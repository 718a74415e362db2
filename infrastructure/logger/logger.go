package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"
)

var logger = log.New()

func init() {
	env := os.Getenv("ENV")
	logger.Out = resolveOutput(env, os.Getenv("LOG_TO_FILE") == "true")
	logger.Formatter = &log.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
	}

	level := log.DebugLevel
	if env == "production" || env == "prod" {
		level = log.InfoLevel
	}
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if parsed, err := log.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	logger.SetLevel(level)
}

// resolveOutput picks stderr unless file logging is requested, in which case
// logs go to ./logs/<date><env>.log. Any failure falls back to stderr.
// Stdout stays free for command output such as streamed exports.
func resolveOutput(env string, toFile bool) io.Writer {
	if !toFile {
		return os.Stderr
	}
	cwd, err := os.Getwd()
	if err != nil {
		return os.Stderr
	}
	logsDir := filepath.Join(cwd, "logs")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		log.Warnf("Failed to create logs directory %s: %v, falling back to stderr", logsDir, err)
		return os.Stderr
	}
	filePath := filepath.Join(logsDir, fmt.Sprintf("%s%s.log", time.Now().Format("2006-01-02"), env))
	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Warnf("Failed to open log file %s: %v, falling back to stderr", filePath, err)
		return os.Stderr
	}
	return f
}

// SetOutput redirects the shared logger, e.g. to io.Discard in tests or stderr in the CLI.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// GetLogger returns an entry annotated with the calling function and source location.
func GetLogger() *log.Entry {
	pc, file, line, _ := runtime.Caller(1)

	entry := logger.WithFields(log.Fields{
		"function": runtime.FuncForPC(pc).Name(),
		"file":     filepath.Base(file),
		"line":     line,
	})

	return entry
}

// SetLevel changes the minimum level, e.g. "warn" for the terminal client.
func SetLevel(raw string) error {
	level, err := log.ParseLevel(raw)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	return nil
}
