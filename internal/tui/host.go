package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/firefly-engineering/create-new/internal/logging"
	"github.com/firefly-engineering/create-new/internal/menu"
	"github.com/firefly-engineering/create-new/internal/picker"
)

// asyncResultMsg carries the outcome of work started by Host.Async back
// to the update loop.
type asyncResultMsg struct {
	resolve func()
}

// Host provides terminal widgets to the extension. Widgets created last
// are the ones the model routes keys to.
type Host struct {
	activeFile string
	selector   *Selector
	textField  *TextField
	contexts   map[string]bool
	errors     []string
	cmds       []tea.Cmd
}

// NewHost creates a Host. activeFile is the file being edited, or "".
func NewHost(activeFile string) *Host {
	return &Host{
		activeFile: activeFile,
		contexts:   make(map[string]bool),
	}
}

func (h *Host) NewSelector() picker.Selector {
	h.selector = NewSelector()
	return h.selector
}

func (h *Host) NewTextField() picker.TextField {
	h.textField = NewTextField()
	return h.textField
}

// Async runs work off the update loop. resolve is called from Update once
// the work is done.
func (h *Host) Async(work func() ([]menu.Item, error), resolve func([]menu.Item, error)) {
	h.cmds = append(h.cmds, func() tea.Msg {
		items, err := work()
		return asyncResultMsg{resolve: func() { resolve(items, err) }}
	})
}

func (h *Host) ShowError(message string) {
	logging.Debug("showing error", "message", message)
	h.errors = append(h.errors, message)
}

func (h *Host) SetContext(key string, value bool) {
	h.contexts[key] = value
}

func (h *Host) ActiveFile() string { return h.activeFile }

// Context returns the value of a context key set by the extension.
func (h *Host) Context(key string) bool { return h.contexts[key] }

// Errors returns the messages shown to the user so far.
func (h *Host) Errors() []string {
	return append([]string(nil), h.errors...)
}

// drain returns the commands queued since the last call.
func (h *Host) drain() []tea.Cmd {
	cmds := h.cmds
	h.cmds = nil
	return cmds
}
