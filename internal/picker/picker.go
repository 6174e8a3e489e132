package picker

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/firefly-engineering/create-new/internal/completion"
	"github.com/firefly-engineering/create-new/internal/logging"
	"github.com/firefly-engineering/create-new/internal/menu"
)

// Mode is the state of a session.
type Mode int

const (
	MenuSelecting Mode = iota
	FreeText
	Accepted
	Dismissed
)

func (m Mode) String() string {
	switch m {
	case MenuSelecting:
		return "menu-selecting"
	case FreeText:
		return "free-text"
	case Accepted:
		return "accepted"
	case Dismissed:
		return "dismissed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen.
func (m Mode) Terminal() bool {
	return m == Accepted || m == Dismissed
}

// Selector is the host widget listing menu items.
type Selector interface {
	// Value is the filter text typed into the selector.
	Value() string
	SetValue(value string)
	Items() []menu.Item
	SetItems(items []menu.Item)
	// ActiveItem is the highlighted item.
	ActiveItem() (menu.Item, bool)
	// SelectedItem is the item chosen by the last accept.
	SelectedItem() (menu.Item, bool)
	SetBusy(busy bool)
	Show()
	Hide()
	Dispose()
	OnAccept(fn func())
	OnHide(fn func())
}

// TextField is the host widget taking free text.
type TextField interface {
	Value() string
	// SetValue replaces the value. Hosts notify OnValueChanged listeners
	// for it like for a user edit, possibly later.
	SetValue(value string)
	SetPrompt(prompt string)
	Show()
	Hide()
	Dispose()
	OnAccept(fn func())
	OnHide(fn func())
	OnValueChanged(fn func(value string))
}

// Pick is an accepted value. Base is the absolute folder the value is
// relative to, or empty when Value is a workspace-rooted request such as
// "/backend/src/new.go".
type Pick struct {
	Base  string
	Value string
}

// Loader produces the menu items.
type Loader func(ctx context.Context) ([]menu.Item, error)

// AsyncFunc runs work off the host's event loop and calls resolve back on it.
type AsyncFunc func(work func() ([]menu.Item, error), resolve func([]menu.Item, error))

// Hooks connect a session to its owner. Every hook is optional.
type Hooks struct {
	OnPick    func(Pick)
	OnDispose func()
	// OnError reports failures that did not come from the user: the menu
	// failing to load or completion failing.
	OnError func(error)
	// SetAutoCompletionAvailable tells the host whether the autocomplete
	// commands apply to this session.
	SetAutoCompletionAvailable func(available bool)
	// Async defaults to running work synchronously.
	Async AsyncFunc
}

// Config holds the collaborators of a session.
type Config struct {
	Selector  Selector
	TextField TextField
	Engine    *completion.Engine
	Hooks     Hooks
}

// Picker is one picking session.
type Picker struct {
	ID string

	selector  Selector
	textField TextField
	engine    *completion.Engine
	hooks     Hooks
	log       *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mode           Mode
	selectedFolder *menu.Item
	autoCompleting bool
	available      bool
	disposed       bool

	// suppressed counts the value-changed notifications still owed for
	// values the picker wrote itself.
	suppressed int
}

// New starts a session showing the menu produced by load.
func New(ctx context.Context, cfg Config, load Loader) *Picker {
	p := newPicker(ctx, cfg)
	p.log.Debug("picker session started")

	p.setAvailable(true)
	p.selector.SetBusy(true)
	p.selector.Show()

	p.hooks.Async(func() ([]menu.Item, error) {
		return load(p.ctx)
	}, p.menuLoaded)
	return p
}

// NewWithSelectedFolder starts a session with folder already chosen, skipping
// the menu.
func NewWithSelectedFolder(ctx context.Context, cfg Config, folder menu.Item) *Picker {
	p := newPicker(ctx, cfg)
	p.log.Debug("picker session started", "folder", folder.Label)

	p.setAvailable(true)
	p.selectedFolder = &folder
	p.switchToTextField(false, folder.Label)
	return p
}

func newPicker(ctx context.Context, cfg Config) *Picker {
	id := uuid.NewString()
	ctx, cancel := context.WithCancel(ctx)
	p := &Picker{
		ID:        id,
		selector:  cfg.Selector,
		textField: cfg.TextField,
		engine:    cfg.Engine,
		hooks:     cfg.Hooks,
		log:       logging.With("session", id),
		ctx:       ctx,
		cancel:    cancel,
		mode:      MenuSelecting,
	}
	if p.engine == nil {
		p.engine = completion.New(completion.SourceFunc(func(context.Context, string) ([]string, error) {
			return nil, nil
		}))
	}
	if p.hooks.Async == nil {
		p.hooks.Async = func(work func() ([]menu.Item, error), resolve func([]menu.Item, error)) {
			resolve(work())
		}
	}

	p.selector.OnAccept(p.selectorAccepted)
	p.selector.OnHide(p.selectorHidden)
	p.textField.OnAccept(p.textFieldAccepted)
	p.textField.OnHide(p.textFieldHidden)
	p.textField.OnValueChanged(p.textFieldChanged)
	return p
}

// Mode returns the current mode.
func (p *Picker) Mode() Mode {
	return p.mode
}

// SelectedFolder returns the folder chosen from the menu, if any.
func (p *Picker) SelectedFolder() (menu.Item, bool) {
	if p.selectedFolder == nil {
		return menu.Item{}, false
	}
	return *p.selectedFolder, true
}

// AutoCompleting reports whether autocompletion took over the session.
func (p *Picker) AutoCompleting() bool {
	return p.autoCompleting
}

// AutoCompletionAvailable reports whether AutoComplete applies.
func (p *Picker) AutoCompletionAvailable() bool {
	return p.available
}

// Disposed reports whether the session is over.
func (p *Picker) Disposed() bool {
	return p.disposed
}

func (p *Picker) menuLoaded(items []menu.Item, err error) {
	if p.disposed || p.autoCompleting || p.mode != MenuSelecting {
		p.log.Debug("discarding stale menu", "mode", p.mode, "autoCompleting", p.autoCompleting, "items", len(items))
		return
	}
	if err != nil {
		p.log.Error("failed to load menu", "error", err)
		p.reportError(err)
		p.Dismiss()
		return
	}

	p.selector.SetBusy(false)
	p.selector.SetItems(items)
	p.log.Debug("menu loaded", "items", len(items))
}

func (p *Picker) selectorAccepted() {
	if p.mode != MenuSelecting {
		return
	}

	item, ok := p.selector.SelectedItem()
	if !ok || item.IsSeparator() {
		p.Dismiss()
		return
	}

	p.log.Debug("folder selected", "label", item.Label)
	p.selectedFolder = &item
	p.switchToTextField(false, item.Label)
}

func (p *Picker) selectorHidden() {
	if p.mode != MenuSelecting {
		return
	}
	p.Dismiss()
}

func (p *Picker) textFieldAccepted() {
	if p.mode != FreeText {
		return
	}

	value := p.textField.Value()
	if value == "" {
		return
	}

	pick := Pick{Value: value}
	if p.selectedFolder != nil {
		pick.Base = p.selectedFolder.Path
	}

	p.mode = Accepted
	p.log.Debug("path accepted", "base", pick.Base, "value", pick.Value)
	if p.hooks.OnPick != nil {
		p.hooks.OnPick(pick)
	}
	p.dispose()
}

func (p *Picker) textFieldHidden() {
	if p.mode != FreeText {
		return
	}
	p.Dismiss()
}

func (p *Picker) textFieldChanged(string) {
	if p.suppressed > 0 {
		p.suppressed--
		return
	}
	p.engine.Invalidate()
}

// AutoComplete completes the current value in direction d. The first call
// leaves the menu: a highlighted folder seeds the value when nothing was
// typed, otherwise the typed value is completed right away.
func (p *Picker) AutoComplete(ctx context.Context, d completion.Direction) {
	if p.disposed || p.mode.Terminal() || !p.available {
		return
	}

	if !p.autoCompleting {
		p.autoCompleting = true
		p.selectedFolder = nil

		if p.mode == MenuSelecting {
			typed := p.selector.Value()
			if typed == "" {
				if item, ok := p.selector.ActiveItem(); ok && !item.IsSeparator() && !item.IsRoot() {
					p.log.Debug("seeding from highlighted folder", "label", item.Label)
					p.switchToTextField(true, "")
					p.write(item.Label)
					return
				}
			}
			p.switchToTextField(true, "")
			p.write(typed)
		}
	}

	res, err := p.engine.Complete(ctx, p.textField.Value(), d)
	if err != nil {
		p.log.Error("completion failed", "error", err)
		p.reportError(err)
		return
	}
	p.write(res.Value)
}

// Dismiss ends the session without a pick.
func (p *Picker) Dismiss() {
	if p.disposed {
		return
	}
	p.mode = Dismissed
	p.log.Debug("picker dismissed")
	p.dispose()
}

// switchToTextField leaves the menu. Autocompletion stays available only
// when it caused the switch.
func (p *Picker) switchToTextField(autoCompletion bool, prompt string) {
	p.mode = FreeText
	if !autoCompletion {
		p.setAvailable(false)
	}

	p.selector.SetBusy(false)
	p.selector.SetItems(nil)
	p.selector.Hide()

	p.textField.SetPrompt(prompt)
	p.write("")
	p.textField.Show()
}

// write sets the text field value, owing one notification per change.
func (p *Picker) write(value string) {
	if p.textField.Value() == value {
		return
	}
	p.suppressed++
	p.textField.SetValue(value)
}

func (p *Picker) setAvailable(available bool) {
	p.available = available
	if p.hooks.SetAutoCompletionAvailable != nil {
		p.hooks.SetAutoCompletionAvailable(available)
	}
}

func (p *Picker) reportError(err error) {
	if p.hooks.OnError != nil {
		p.hooks.OnError(err)
	}
}

func (p *Picker) dispose() {
	if p.disposed {
		return
	}
	p.disposed = true
	p.cancel()

	p.setAvailable(false)
	p.selector.Dispose()
	p.textField.Dispose()

	if p.hooks.OnDispose != nil {
		p.hooks.OnDispose()
	}
}
