// Package logging provides logging utilities for create-new.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("completion", "request", request, "results", len(results))
//	logging.Warn("skipping workspace root", "path", root)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Opening %d files in %s", len(files), editor)
//	logging.UserSuccess("Created %s", path)
//	logging.UserWarning("Workspace root %s does not exist", root)
//	logging.UserError("Unable to create and open new file.")
//
// Output destinations (overridable through Stdout and Stderr):
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
//
// While the picker owns the terminal, Redirect sends structured logs to a
// log file (or io.Discard) without changing verbosity or format.
//
// # Status Indicators
//
// User functions prepend colored status indicators (plain on non-tty output):
//   - ℹ (info)
//   - ✓ (success)
//   - ⚠ (warning)
//   - ✗ (error)
package logging
