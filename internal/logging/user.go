package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// User-facing output functions with status glyphs.
// These write to stdout/stderr directly for CLI output,
// separate from the structured debug logging.

var (
	// Stdout receives UserInfo and UserSuccess output.
	Stdout io.Writer = os.Stdout

	// Stderr receives UserWarning and UserError output.
	Stderr io.Writer = os.Stderr

	infoGlyph    = color.New(color.FgCyan).Sprint("ℹ")
	successGlyph = color.New(color.FgGreen).Sprint("✓")
	warningGlyph = color.New(color.FgYellow).Sprint("⚠")
	errorGlyph   = color.New(color.FgRed, color.Bold).Sprint("✗")
)

// UserInfo prints an info message to stdout.
func UserInfo(format string, args ...interface{}) {
	fmt.Fprintf(Stdout, infoGlyph+" "+format+"\n", args...)
}

// UserSuccess prints a success message to stdout.
func UserSuccess(format string, args ...interface{}) {
	fmt.Fprintf(Stdout, successGlyph+" "+format+"\n", args...)
}

// UserWarning prints a warning message to stderr.
func UserWarning(format string, args ...interface{}) {
	fmt.Fprintf(Stderr, warningGlyph+" "+format+"\n", args...)
}

// UserError prints an error message to stderr.
func UserError(format string, args ...interface{}) {
	fmt.Fprintf(Stderr, errorGlyph+" "+format+"\n", args...)
}
