// Package errors provides typed errors with exit codes for create-new.
//
// # Error Types
//
// CreateError is the base error type that wraps an error with an exit code:
//
//	type CreateError struct {
//	    Code    int    // Exit code
//	    Message string // User-facing message
//	    Cause   error  // Wrapped error
//	}
//
// # Exit Codes
//
//	ExitSuccess        = 0  // Success
//	ExitGeneralError   = 1  // General/unknown errors
//	ExitNoWorkspace    = 2  // No workspace root to pick from
//	ExitNoActiveFile   = 3  // from-current without an existing file
//	ExitCreationFailed = 4  // At least one path could not be created
//	ExitConfigError    = 5  // Configuration error
//	ExitNotTerminal    = 6  // stdin/stdout is not a terminal
//
// # Error Constructors
//
//	errors.NoWorkspace()
//	errors.NoActiveFile()
//	errors.NoMatchingRoot("/folder-3/new-file")
//	errors.CreationFailed(2, err)
//
// UserMessage returns the notification text for an error; the wrapped cause
// is only logged.
package errors
