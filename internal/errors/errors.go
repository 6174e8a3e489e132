package errors

import (
	"errors"
	"fmt"
)

// Exit codes for create-new
const (
	ExitSuccess        = 0
	ExitGeneralError   = 1
	ExitNoWorkspace    = 2
	ExitNoActiveFile   = 3
	ExitCreationFailed = 4
	ExitConfigError    = 5
	ExitNotTerminal    = 6
)

// CreateError is the base error type for create-new
type CreateError struct {
	Code    int
	Message string
	Cause   error
}

func (e *CreateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CreateError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *CreateError) ExitCode() int {
	return e.Code
}

// New creates a new CreateError
func New(code int, message string) *CreateError {
	return &CreateError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a CreateError
func Wrap(code int, message string, cause error) *CreateError {
	return &CreateError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors. Their messages are shown to the user as is.

// NoWorkspace returns an error for an invocation without any workspace root
func NoWorkspace() *CreateError {
	return New(ExitNoWorkspace, "No workspace folder found, please open a folder first.")
}

// NoActiveFile returns an error for a from-current invocation without a usable file
func NoActiveFile() *CreateError {
	return New(ExitNoActiveFile, "No opened file found, please open a file first.")
}

// NoMatchingRoot returns an error when a rooted request names no known workspace root
func NoMatchingRoot(request string) *CreateError {
	return New(ExitGeneralError, fmt.Sprintf("No workspace folder found to create '%s'.", request))
}

// CreationFailed returns an error for a batch in which at least one path
// could not be created or opened
func CreationFailed(failed int, cause error) *CreateError {
	msg := "Unable to create and open new file."
	if failed > 1 {
		msg = fmt.Sprintf("Unable to create and open %d new files.", failed)
	}
	return Wrap(ExitCreationFailed, msg, cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *CreateError {
	return Wrap(ExitConfigError, message, cause)
}

// NotTerminal returns an error when the picker cannot take over the terminal
func NotTerminal() *CreateError {
	return New(ExitNotTerminal, "create-new needs an interactive terminal")
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *CreateError {
	return New(ExitGeneralError, message)
}

// UserMessage returns the message to show in a host notification.
// The cause is left out, it only goes to the debug log.
func UserMessage(err error) string {
	var createErr *CreateError
	if errors.As(err, &createErr) {
		return createErr.Message
	}
	return err.Error()
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var createErr *CreateError
	if errors.As(err, &createErr) {
		return createErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors, nil if all are nil
func Join(errs ...error) error {
	return errors.Join(errs...)
}
