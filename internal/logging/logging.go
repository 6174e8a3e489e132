package logging

import (
	"io"
	"log/slog"
	"os"
)

var (
	// Logger is the global structured logger
	Logger *slog.Logger

	// Verbose enables debug logging
	Verbose bool

	jsonOutput bool
	output     io.Writer = os.Stderr
)

func init() {
	Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// Setup configures the logger based on verbosity and output preferences
func Setup(verbose bool, json bool, w io.Writer) {
	Verbose = verbose
	jsonOutput = json

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if w == nil {
		w = os.Stderr
	}
	output = w

	if json {
		Logger = slog.New(slog.NewJSONHandler(w, opts))
	} else {
		Logger = slog.New(slog.NewTextHandler(w, opts))
	}
}

// Redirect keeps the current verbosity and format but writes to w until
// the returned function is called.
func Redirect(w io.Writer) (restore func()) {
	prev, prevOutput := Logger, output
	Setup(Verbose, jsonOutput, w)
	return func() {
		Logger, output = prev, prevOutput
	}
}

// ToStderr reports whether log lines go to the terminal.
func ToStderr() bool {
	return output == os.Stderr
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// With returns a logger with additional attributes
func With(args ...any) *slog.Logger {
	return Logger.With(args...)
}
