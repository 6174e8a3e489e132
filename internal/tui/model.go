package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/firefly-engineering/create-new/internal/config"
	"github.com/firefly-engineering/create-new/internal/extension"
	"github.com/firefly-engineering/create-new/internal/logging"
)

type keyMap struct {
	Next     key.Binding
	Previous key.Binding
	Accept   key.Binding
	Cancel   key.Binding
}

func newKeyMap(keys config.Keys) keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys(keys.AutoCompleteNext),
			key.WithHelp(keys.AutoCompleteNext, "complete"),
		),
		Previous: key.NewBinding(
			key.WithKeys(keys.AutoCompletePrevious),
			key.WithHelp(keys.AutoCompletePrevious, "previous"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "accept"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// Model is the bubbletea model hosting one picker session.
type Model struct {
	ctx  context.Context
	host *Host
	ext  *extension.Extension
	keys keyMap

	width  int
	height int
}

// NewModel creates a Model routing input to the session ext holds.
func NewModel(ctx context.Context, host *Host, ext *extension.Extension, keys config.Keys) *Model {
	return &Model{
		ctx:  ctx,
		host: host,
		ext:  ext,
		keys: newKeyMap(keys),
	}
}

// Init starts the work queued while the session was created.
func (m *Model) Init() tea.Cmd {
	return m.finish(nil)
}

// Update handles a message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.host.selector != nil {
			m.host.selector.setHeight(msg.Height - 8)
		}

	case asyncResultMsg:
		msg.resolve()

	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	}

	return m, m.finish(cmd)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Next), key.Matches(msg, m.keys.Previous):
		if !m.host.Context(extension.ContextAutoCompletionEnabled) {
			return nil
		}
		id := extension.CommandAutoCompleteNext
		if key.Matches(msg, m.keys.Previous) {
			id = extension.CommandAutoCompletePrevious
		}
		if err := m.ext.Execute(m.ctx, id); err != nil {
			logging.Debug("autocompletion failed", "error", err)
		}
		return nil

	case key.Matches(msg, m.keys.Accept):
		if f := m.textField(); f != nil {
			f.accept()
		} else if s := m.selector(); s != nil {
			s.accept()
		}
		return nil

	case key.Matches(msg, m.keys.Cancel):
		if f := m.textField(); f != nil {
			f.Hide()
		} else if s := m.selector(); s != nil {
			s.Hide()
		}
		return nil
	}

	if f := m.textField(); f != nil {
		return f.update(msg)
	}
	if s := m.selector(); s != nil {
		return s.update(msg)
	}
	return nil
}

// finish delivers pending value notifications and collects the work the
// session queued. It quits once no session is left.
func (m *Model) finish(cmd tea.Cmd) tea.Cmd {
	if f := m.host.textField; f != nil {
		f.flush()
	}

	cmds := append([]tea.Cmd{cmd}, m.host.drain()...)
	if m.ext.Session() == nil {
		cmds = append(cmds, tea.Quit)
	}
	return tea.Batch(cmds...)
}

func (m *Model) textField() *TextField {
	if f := m.host.textField; f != nil && f.Visible() {
		return f
	}
	return nil
}

func (m *Model) selector() *Selector {
	if s := m.host.selector; s != nil && s.Visible() {
		return s
	}
	return nil
}

// View renders the visible widget.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Create new file or folder"))
	b.WriteString("\n")

	var help string
	switch {
	case m.textField() != nil:
		b.WriteString(m.host.textField.View())
		b.WriteString("\n")
		help = "enter: create • esc: cancel"
	case m.selector() != nil:
		b.WriteString(m.host.selector.View())
		help = "↑/↓: navigate • enter: select • esc: cancel"
	}

	if m.host.Context(extension.ContextAutoCompletionEnabled) {
		help += " • " + m.keys.Next.Help().Key + "/" + m.keys.Previous.Help().Key + ": complete"
	}

	if errs := m.host.errors; len(errs) > 0 {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(errs[len(errs)-1]))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(help))
	return b.String()
}
