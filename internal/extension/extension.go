// Package extension wires picker sessions to a host: it registers the
// create-new commands, owns the live session and creates what gets picked.
package extension

import (
	"context"
	"fmt"
	"sort"

	"github.com/firefly-engineering/create-new/internal/completion"
	"github.com/firefly-engineering/create-new/internal/errors"
	"github.com/firefly-engineering/create-new/internal/expand"
	"github.com/firefly-engineering/create-new/internal/logging"
	"github.com/firefly-engineering/create-new/internal/menu"
	"github.com/firefly-engineering/create-new/internal/picker"
	"github.com/firefly-engineering/create-new/internal/workspace"
)

// Command identifiers.
const (
	CommandCreateNew             = "create-new"
	CommandCreateNewFromCurrent  = "create-new-from-current"
	CommandAutoCompleteNext      = "auto-complete-next"
	CommandAutoCompletePrevious  = "auto-complete-previous"
	ContextAutoCompletionEnabled = "create-new.autoCompletionAvailable"
)

// Host provides the widgets and notifications of the user interface.
type Host interface {
	NewSelector() picker.Selector
	NewTextField() picker.TextField
	Async(work func() ([]menu.Item, error), resolve func([]menu.Item, error))
	ShowError(message string)
	SetContext(key string, value bool)
	// ActiveFile is the file being edited, or "".
	ActiveFile() string
}

// Creator creates a file, or a folder for paths ending with a separator.
type Creator interface {
	CreatePath(path string) error
}

// Opener opens a created file. Folders are ignored.
type Opener interface {
	Open(path string) error
}

// Command is a registered command handler.
type Command func(ctx context.Context) error

// Extension holds the registered commands and at most one live session.
type Extension struct {
	host    Host
	ws      *workspace.Workspace
	creator Creator
	opener  Opener

	commands map[string]Command
	session  *picker.Picker
	created  []string
	errs     []error
}

// New creates an Extension for ws and registers its commands.
func New(host Host, ws *workspace.Workspace, creator Creator, opener Opener) *Extension {
	e := &Extension{
		host:     host,
		ws:       ws,
		creator:  creator,
		opener:   opener,
		commands: make(map[string]Command),
	}

	e.Register(CommandCreateNew, e.createNew)
	e.Register(CommandCreateNewFromCurrent, e.createNewFromCurrent)
	e.Register(CommandAutoCompleteNext, func(ctx context.Context) error {
		return e.autoComplete(ctx, completion.Next)
	})
	e.Register(CommandAutoCompletePrevious, func(ctx context.Context) error {
		return e.autoComplete(ctx, completion.Previous)
	})
	return e
}

// Register adds or replaces a command.
func (e *Extension) Register(id string, cmd Command) {
	e.commands[id] = cmd
}

// Commands returns the registered command identifiers, sorted.
func (e *Extension) Commands() []string {
	ids := make([]string, 0, len(e.commands))
	for id := range e.commands {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Execute runs the command registered as id.
func (e *Extension) Execute(ctx context.Context, id string) error {
	cmd, ok := e.commands[id]
	if !ok {
		return fmt.Errorf("unknown command %q", id)
	}
	logging.Debug("executing command", "command", id)
	return cmd(ctx)
}

// Session returns the live session, or nil.
func (e *Extension) Session() *picker.Picker {
	return e.session
}

// Created returns the paths created so far.
func (e *Extension) Created() []string {
	return append([]string(nil), e.created...)
}

// Err returns the errors reported to the user so far, joined.
func (e *Extension) Err() error {
	return errors.Join(e.errs...)
}

func (e *Extension) createNew(ctx context.Context) error {
	if len(e.ws.Roots) == 0 {
		return e.fail(errors.NoWorkspace())
	}

	active := e.host.ActiveFile()
	e.start(func(cfg picker.Config) *picker.Picker {
		return picker.New(ctx, cfg, func(ctx context.Context) ([]menu.Item, error) {
			return menu.Build(ctx, e.ws, active)
		})
	})
	return nil
}

func (e *Extension) createNewFromCurrent(ctx context.Context) error {
	if len(e.ws.Roots) == 0 {
		return e.fail(errors.NoWorkspace())
	}

	active := e.host.ActiveFile()
	if active == "" {
		return e.fail(errors.NoActiveFile())
	}

	folder := e.ws.CurrentFolder(active)
	e.start(func(cfg picker.Config) *picker.Picker {
		return picker.NewWithSelectedFolder(ctx, cfg, menu.Folder(folder.Label, folder.Path, ""))
	})
	return nil
}

func (e *Extension) autoComplete(ctx context.Context, d completion.Direction) error {
	if e.session == nil {
		return nil
	}
	e.session.AutoComplete(ctx, d)
	return nil
}

// start replaces the live session with a new one.
func (e *Extension) start(open func(picker.Config) *picker.Picker) {
	if e.session != nil {
		e.session.Dismiss()
	}

	var p *picker.Picker
	cfg := picker.Config{
		Selector:  e.host.NewSelector(),
		TextField: e.host.NewTextField(),
		Engine:    completion.New(completion.SourceFunc(e.ws.Complete)),
		Hooks: picker.Hooks{
			OnPick: e.onPick,
			OnDispose: func() {
				if e.session == p {
					e.session = nil
				}
			},
			OnError: func(err error) {
				e.fail(err)
			},
			SetAutoCompletionAvailable: func(available bool) {
				e.host.SetContext(ContextAutoCompletionEnabled, available)
			},
			Async: e.host.Async,
		},
	}

	p = open(cfg)
	if !p.Disposed() {
		e.session = p
	}
}

// onPick creates every expansion of the picked value. Each path is
// attempted; the first unresolvable request and the creation failures are
// each reported once for the whole batch.
func (e *Extension) onPick(pick picker.Pick) {
	var unresolved error
	var failures []error
	for _, value := range expand.Expand(pick.Value) {
		target, err := e.target(pick.Base, value)
		if err != nil {
			logging.Debug("skipping unresolved request", "request", value, "error", err)
			if unresolved == nil {
				unresolved = err
			}
			continue
		}

		if err := e.creator.CreatePath(target); err != nil {
			logging.Error("failed to create path", "path", target, "error", err)
			failures = append(failures, err)
			continue
		}
		if err := e.opener.Open(target); err != nil {
			logging.Error("failed to open path", "path", target, "error", err)
			failures = append(failures, err)
			continue
		}
		e.created = append(e.created, target)
	}

	if unresolved != nil {
		e.fail(unresolved)
	}
	if len(failures) > 0 {
		e.fail(errors.CreationFailed(len(failures), errors.Join(failures...)))
	}
}

func (e *Extension) target(base, value string) (string, error) {
	if base != "" {
		return workspace.Join(base, value), nil
	}
	return e.ws.Resolve(completion.Normalize(value))
}

// fail shows err to the user and records it.
func (e *Extension) fail(err error) error {
	logging.Debug("reporting error", "error", err)
	e.errs = append(e.errs, err)
	e.host.ShowError(errors.UserMessage(err))
	return err
}
