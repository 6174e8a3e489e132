package tui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TextField is a single line input. It implements picker.TextField.
//
// Values set through SetValue are announced to OnValueChanged listeners
// when the model flushes, after the current message has been handled.
// User edits are announced right away.
type TextField struct {
	input   textinput.Model
	prompt  string
	pending []string

	visible  bool
	disposed bool

	onAccept  func()
	onHide    func()
	onChanged func(string)
}

// NewTextField creates a hidden, empty TextField.
func NewTextField() *TextField {
	ti := textinput.New()
	ti.Placeholder = "new-file.txt, folder/, or {a,b}.ts"
	ti.CharLimit = 1024
	ti.Width = 60
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()

	return &TextField{input: ti}
}

func (f *TextField) Value() string { return f.input.Value() }

func (f *TextField) SetValue(value string) {
	if value == f.input.Value() {
		return
	}
	f.input.SetValue(value)
	f.input.CursorEnd()
	f.pending = append(f.pending, value)
}

// SetPrompt sets the label of the folder the value is relative to.
func (f *TextField) SetPrompt(prompt string) {
	f.prompt = prompt
	if prompt == "" {
		f.input.Prompt = "> "
		return
	}
	f.input.Prompt = prompt + " > "
}

func (f *TextField) Show() {
	if !f.disposed {
		f.visible = true
	}
}

func (f *TextField) Hide() {
	if !f.visible {
		return
	}
	f.visible = false
	if f.onHide != nil {
		f.onHide()
	}
}

func (f *TextField) Dispose() {
	f.disposed = true
	f.visible = false
	f.pending = nil
}

func (f *TextField) OnAccept(fn func())                   { f.onAccept = fn }
func (f *TextField) OnHide(fn func())                     { f.onHide = fn }
func (f *TextField) OnValueChanged(fn func(value string)) { f.onChanged = fn }

// Visible reports whether the field is shown.
func (f *TextField) Visible() bool { return f.visible }

// flush announces the values set since the last flush.
func (f *TextField) flush() {
	pending := f.pending
	f.pending = nil
	for _, v := range pending {
		if f.onChanged != nil && !f.disposed {
			f.onChanged(v)
		}
	}
}

func (f *TextField) accept() {
	f.flush()
	if f.onAccept != nil {
		f.onAccept()
	}
}

// update applies a user key to the input.
func (f *TextField) update(msg tea.KeyMsg) tea.Cmd {
	f.flush()

	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if v := f.input.Value(); v != before && f.onChanged != nil {
		f.onChanged(v)
	}
	return cmd
}

// View renders the input.
func (f *TextField) View() string {
	return f.input.View()
}
