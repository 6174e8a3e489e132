package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"

	"github.com/firefly-engineering/create-new/internal/app"
	"github.com/firefly-engineering/create-new/internal/audit"
	"github.com/firefly-engineering/create-new/internal/errors"
	"github.com/firefly-engineering/create-new/internal/extension"
	"github.com/firefly-engineering/create-new/internal/logging"
	"github.com/firefly-engineering/create-new/internal/tui"
	"github.com/firefly-engineering/create-new/internal/workspace"
)

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	logError   = logging.UserError
)

// isTerminal reports whether the picker can take over the terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// reportedError marks an error already shown to the user.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error { return e.error }

// workspaceRoots returns the --root folders as absolute paths, or the
// current directory.
func workspaceRoots() []string {
	if len(roots) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			logWarning("Cannot determine the current directory: %v", err)
			return nil
		}
		return []string{wd}
	}

	abs := make([]string, 0, len(roots))
	for _, r := range roots {
		p, err := filepath.Abs(r)
		if err != nil {
			logWarning("Ignoring workspace root %s: %v", r, err)
			continue
		}
		abs = append(abs, p)
	}
	return abs
}

// runSession runs one extension command in the terminal, then reports the
// outcome and opens the created files.
func runSession(ctx context.Context, command, active string) error {
	logging.Debug("running command", "command", command, "config", configPath)

	a := app.Default
	if err := a.LoadConfig(configPath); err != nil {
		return err
	}

	ws := a.Workspace(workspaceRoots())
	logging.Debug("starting session", "command", command, "roots", len(ws.Roots), "active", active)

	host := tui.NewHost(active)
	editor := a.Editor()
	ext := extension.New(host, ws, a.Creator(), editor)

	runErr := tui.Run(ctx, host, ext, command, tui.Options{
		Keys:       a.Config.Keys,
		IsTerminal: isTerminal,
	})

	for _, msg := range host.Errors() {
		logError("%s", msg)
	}
	reportCreated(ws, ext.Created())

	if files := editor.Files(); len(files) > 0 && a.Config.OpenFiles && !noOpen {
		logInfo("Opening %d file(s) with %s", len(files), a.Config.EditorCommand())
		if err := editor.Launch(ctx); err != nil {
			return errors.Wrap(errors.ExitGeneralError, "Unable to open the editor.", err)
		}
	}

	recordHistory(a.History, ext.Created(), host.Errors())

	if err := ext.Err(); err != nil {
		return reportedError{err}
	}
	return runErr
}

// recordHistory appends the outcome of a session to the history. Failing
// to write it only warrants a debug line.
func recordHistory(history *audit.Logger, created, failures []string) {
	var events []audit.Event
	for _, path := range created {
		events = append(events, audit.Event{Type: audit.EventCreate, Path: path})
	}
	for _, msg := range failures {
		events = append(events, audit.Event{Type: audit.EventError, Details: msg})
	}

	if err := history.Log(events...); err != nil {
		logging.Debug("failed to record history", "error", err)
	}
}

func reportCreated(ws *workspace.Workspace, created []string) {
	for _, path := range created {
		label := path
		for _, r := range ws.Roots {
			if rel, err := filepath.Rel(r.Path, path); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
				label = ws.Label(r, filepath.ToSlash(rel))
				break
			}
		}
		logSuccess("Created %s", label)
	}
}
