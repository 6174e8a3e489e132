package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/firefly-engineering/create-new/internal/menu"
)

// defaultListHeight is the number of menu rows shown at once.
const defaultListHeight = 12

// Selector is a filterable menu. It implements picker.Selector.
type Selector struct {
	input    textinput.Model
	items    []menu.Item
	filtered []menu.Item
	cursor   int
	offset   int
	height   int
	selected *menu.Item

	busy     bool
	visible  bool
	disposed bool

	onAccept func()
	onHide   func()
}

// NewSelector creates a hidden, empty Selector.
func NewSelector() *Selector {
	ti := textinput.New()
	ti.Placeholder = "Filter folders"
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Width = 60
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()

	return &Selector{input: ti, height: defaultListHeight}
}

func (s *Selector) Value() string { return s.input.Value() }

func (s *Selector) SetValue(value string) {
	s.input.SetValue(value)
	s.refilter()
}

func (s *Selector) Items() []menu.Item { return s.items }

func (s *Selector) SetItems(items []menu.Item) {
	s.items = items
	s.refilter()
}

func (s *Selector) ActiveItem() (menu.Item, bool) {
	if s.cursor < 0 || s.cursor >= len(s.filtered) {
		return menu.Item{}, false
	}
	item := s.filtered[s.cursor]
	if item.IsSeparator() {
		return menu.Item{}, false
	}
	return item, true
}

func (s *Selector) SelectedItem() (menu.Item, bool) {
	if s.selected == nil {
		return menu.Item{}, false
	}
	return *s.selected, true
}

func (s *Selector) SetBusy(busy bool) { s.busy = busy }

func (s *Selector) Show() {
	if !s.disposed {
		s.visible = true
	}
}

// Hide hides the selector and notifies OnHide listeners, whoever asked.
func (s *Selector) Hide() {
	if !s.visible {
		return
	}
	s.visible = false
	if s.onHide != nil {
		s.onHide()
	}
}

func (s *Selector) Dispose() {
	s.disposed = true
	s.visible = false
}

func (s *Selector) OnAccept(fn func()) { s.onAccept = fn }
func (s *Selector) OnHide(fn func())   { s.onHide = fn }

// Visible reports whether the selector is shown.
func (s *Selector) Visible() bool { return s.visible }

// accept records the highlighted item as the selection.
func (s *Selector) accept() {
	s.selected = nil
	if item, ok := s.ActiveItem(); ok {
		s.selected = &item
	}
	if s.onAccept != nil {
		s.onAccept()
	}
}

// update handles a key the model did not claim.
func (s *Selector) update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "ctrl+k":
		s.move(-1)
		return nil
	case "down", "ctrl+j":
		s.move(1)
		return nil
	case "pgup":
		s.move(-s.height)
		return nil
	case "pgdown":
		s.move(s.height)
		return nil
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if s.input.Value() != before {
		s.refilter()
	}
	return cmd
}

// refilter recomputes the visible items. Without a filter every item is
// shown in menu order; with one, folders are ranked by fuzzy score and
// separators are left out.
func (s *Selector) refilter() {
	pattern := s.input.Value()
	if pattern == "" {
		s.filtered = s.items
	} else {
		var folders []menu.Item
		for _, item := range s.items {
			if !item.IsSeparator() {
				folders = append(folders, item)
			}
		}
		labels := make([]string, len(folders))
		for i, f := range folders {
			labels[i] = f.Label
		}

		s.filtered = nil
		for _, match := range fuzzy.Find(pattern, labels) {
			s.filtered = append(s.filtered, folders[match.Index])
		}
	}

	s.cursor, s.offset = 0, 0
	s.skipSeparators(1)
}

func (s *Selector) move(delta int) {
	if len(s.filtered) == 0 {
		return
	}
	direction := 1
	if delta < 0 {
		direction = -1
	}

	s.cursor += delta
	if s.cursor < 0 {
		s.cursor = 0
		direction = 1
	}
	if s.cursor >= len(s.filtered) {
		s.cursor = len(s.filtered) - 1
		direction = -1
	}
	s.skipSeparators(direction)
	s.scroll()
}

// skipSeparators moves the cursor off a separator, preferring direction.
func (s *Selector) skipSeparators(direction int) {
	items := s.filtered
	if len(items) == 0 || !items[s.cursor].IsSeparator() {
		return
	}

	if next := s.cursor + direction; next >= 0 && next < len(items) && !items[next].IsSeparator() {
		s.cursor = next
		return
	}
	if opposite := s.cursor - direction; opposite >= 0 && opposite < len(items) && !items[opposite].IsSeparator() {
		s.cursor = opposite
		return
	}
	for i := 0; i < len(items); i++ {
		candidate := (s.cursor + i*direction + len(items)) % len(items)
		if !items[candidate].IsSeparator() {
			s.cursor = candidate
			return
		}
	}
}

func (s *Selector) scroll() {
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+s.height {
		s.offset = s.cursor - s.height + 1
	}
}

func (s *Selector) setHeight(h int) {
	if h < 3 {
		h = 3
	}
	s.height = h
	s.scroll()
}

// View renders the filter input and the visible window of items.
func (s *Selector) View() string {
	var b strings.Builder
	b.WriteString(s.input.View())
	b.WriteString("\n\n")

	if s.busy {
		b.WriteString(dimStyle.Render("  Loading folders..."))
		b.WriteString("\n")
	}
	if !s.busy && len(s.filtered) == 0 {
		b.WriteString(dimStyle.Render("  No matching folder"))
		b.WriteString("\n")
	}

	end := min(s.offset+s.height, len(s.filtered))
	for i := s.offset; i < end; i++ {
		item := s.filtered[i]
		if item.IsSeparator() {
			b.WriteString(separatorStyle.Render(strings.Repeat("─", 30)))
			b.WriteString("\n")
			continue
		}

		line := item.Label
		if item.Description != "" {
			line += " " + descriptionStyle.Render(item.Description)
		}
		if i == s.cursor {
			b.WriteString(selectedStyle.Render("▸ " + item.Label))
			if item.Description != "" {
				b.WriteString(" " + descriptionStyle.Render(item.Description))
			}
		} else {
			b.WriteString(itemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if len(s.filtered) > s.height {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %d/%d", s.cursor+1, len(s.filtered))))
		b.WriteString("\n")
	}
	return b.String()
}
