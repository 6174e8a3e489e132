package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/firefly-engineering/create-new/internal/config"
	"github.com/firefly-engineering/create-new/internal/errors"
	"github.com/firefly-engineering/create-new/internal/extension"
	"github.com/firefly-engineering/create-new/internal/logging"
)

// Options configures Run.
type Options struct {
	// Keys binds the autocompletion commands.
	Keys config.Keys
	// IsTerminal reports whether the interface can be shown. Nil means it can.
	IsTerminal func() bool
}

// Run executes command and, when it opens a session, runs the terminal
// interface until the session ends. The command's own checks run before
// the terminal is required.
func Run(ctx context.Context, host *Host, ext *extension.Extension, command string, opts Options) error {
	if err := ext.Execute(ctx, command); err != nil {
		return err
	}
	session := ext.Session()
	if session == nil {
		return nil
	}
	if opts.IsTerminal != nil && !opts.IsTerminal() {
		session.Dismiss()
		return errors.NotTerminal()
	}

	// Log lines would tear the alternate screen.
	if logging.ToStderr() {
		defer logging.Redirect(io.Discard)()
	}

	m := NewModel(ctx, host, ext, opts.Keys)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run picker: %w", err)
	}

	// The program may stop on its context before the session is over.
	if s := ext.Session(); s != nil {
		s.Dismiss()
	}
	return nil
}
