package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestSetup_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	Info("test message", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected 'test message' in output, got: %s", output)
	}
}

func TestSetup_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, true, &buf)

	Info("test message", "key", "value")

	output := buf.String()
	// JSON output should contain braces
	if !strings.Contains(output, "{") {
		t.Errorf("Expected JSON output, got: %s", output)
	}
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected 'test message' in output, got: %s", output)
	}
}

func TestSetup_VerboseMode(t *testing.T) {
	var buf bytes.Buffer
	Setup(true, false, &buf)

	if !Verbose {
		t.Error("Verbose flag should be true after Setup(true, ...)")
	}

	Debug("debug message")

	output := buf.String()
	if !strings.Contains(output, "debug message") {
		t.Errorf("Debug message should appear in verbose mode, got: %s", output)
	}
}

func TestSetup_NonVerboseMode(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	if Verbose {
		t.Error("Verbose flag should be false after Setup(false, ...)")
	}

	Debug("debug message")

	output := buf.String()
	if strings.Contains(output, "debug message") {
		t.Errorf("Debug message should NOT appear in non-verbose mode, got: %s", output)
	}
}

func TestDebug(t *testing.T) {
	var buf bytes.Buffer
	Setup(true, false, &buf)

	Debug("debug test", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "debug test") {
		t.Errorf("Expected 'debug test' in output, got: %s", output)
	}
}

func TestInfo(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	Info("info test", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "info test") {
		t.Errorf("Expected 'info test' in output, got: %s", output)
	}
}

func TestWarn(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	Warn("warn test", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "warn test") {
		t.Errorf("Expected 'warn test' in output, got: %s", output)
	}
}

func TestError(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	Error("error test", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "error test") {
		t.Errorf("Expected 'error test' in output, got: %s", output)
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	logger := With("component", "test")
	if logger == nil {
		t.Error("With() returned nil")
	}

	logger.Info("with test")

	output := buf.String()
	if !strings.Contains(output, "with test") {
		t.Errorf("Expected 'with test' in output, got: %s", output)
	}
	if !strings.Contains(output, "component") {
		t.Errorf("Expected 'component' in output, got: %s", output)
	}
}

func TestSetup_NilWriter(t *testing.T) {
	// Should not panic with nil writer
	Setup(false, false, nil)

	// Logger should still work (writes to stderr)
	if Logger == nil {
		t.Error("Logger should not be nil after Setup with nil writer")
	}
}

func TestRedirect_KeepsFormat(t *testing.T) {
	var first, second bytes.Buffer
	Setup(true, true, &first)

	restore := Redirect(&second)
	Debug("redirected", "key", "value")

	if first.Len() != 0 {
		t.Errorf("Original writer should be untouched, got: %s", first.String())
	}
	output := second.String()
	if !strings.Contains(output, "{") || !strings.Contains(output, "redirected") {
		t.Errorf("Expected JSON debug output after Redirect, got: %s", output)
	}

	restore()
	Debug("restored")
	if !strings.Contains(first.String(), "restored") {
		t.Errorf("Expected output on the original writer after restore, got: %s", first.String())
	}
	if ToStderr() {
		t.Error("ToStderr() = true with a buffer writer")
	}
}

func TestUserOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	Stdout, Stderr = &out, &errOut
	defer func() {
		Stdout, Stderr = os.Stdout, os.Stderr
	}()

	UserSuccess("Created %s", "/tmp/new-file")
	UserInfo("Opening %d files", 2)
	UserWarning("Workspace root %s does not exist", "/missing")
	UserError("Unable to create and open new file.")

	if !strings.Contains(out.String(), "Created /tmp/new-file") {
		t.Errorf("stdout missing success message: %q", out.String())
	}
	if !strings.Contains(out.String(), "Opening 2 files") {
		t.Errorf("stdout missing info message: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "Workspace root /missing does not exist") {
		t.Errorf("stderr missing warning: %q", errOut.String())
	}
	if !strings.Contains(errOut.String(), "Unable to create and open new file.") {
		t.Errorf("stderr missing error: %q", errOut.String())
	}
}
