// Package pickertest provides in-memory host widgets for exercising pickers.
//
// Like a real host, the fakes deliver value-changed notifications after the
// current event has been handled: SetValue queues one, Flush delivers the
// queue. Type simulates a user edit and notifies right away.
package pickertest

import (
	"sync"

	"github.com/firefly-engineering/create-new/internal/menu"
)

// Selector is a fake picker.Selector.
type Selector struct {
	value    string
	items    []menu.Item
	active   int
	selected *menu.Item

	Busy     bool
	Visible  bool
	Disposed bool
	// BusyHistory records every SetBusy call.
	BusyHistory []bool

	onAccept func()
	onHide   func()
}

// NewSelector creates an empty, hidden Selector.
func NewSelector() *Selector {
	return &Selector{active: -1}
}

func (s *Selector) Value() string         { return s.value }
func (s *Selector) SetValue(value string) { s.value = value }
func (s *Selector) Items() []menu.Item    { return s.items }

// SetItems replaces the items and highlights the first folder.
func (s *Selector) SetItems(items []menu.Item) {
	s.items = items
	s.active = -1
	for i, item := range items {
		if !item.IsSeparator() {
			s.active = i
			break
		}
	}
}

func (s *Selector) ActiveItem() (menu.Item, bool) {
	if s.active < 0 || s.active >= len(s.items) {
		return menu.Item{}, false
	}
	return s.items[s.active], true
}

func (s *Selector) SelectedItem() (menu.Item, bool) {
	if s.selected == nil {
		return menu.Item{}, false
	}
	return *s.selected, true
}

func (s *Selector) SetBusy(busy bool) {
	s.Busy = busy
	s.BusyHistory = append(s.BusyHistory, busy)
}

func (s *Selector) Show()    { s.Visible = true }
func (s *Selector) Dispose() { s.Disposed = true; s.Visible = false }

// Hide hides the selector and notifies like a host closing it.
func (s *Selector) Hide() {
	s.Visible = false
	if s.onHide != nil {
		s.onHide()
	}
}

func (s *Selector) OnAccept(fn func()) { s.onAccept = fn }
func (s *Selector) OnHide(fn func())   { s.onHide = fn }

// Highlight moves the highlight to the item labelled label.
func (s *Selector) Highlight(label string) bool {
	for i, item := range s.items {
		if !item.IsSeparator() && item.Label == label {
			s.active = i
			return true
		}
	}
	return false
}

// Type simulates the user typing a filter.
func (s *Selector) Type(value string) {
	s.value = value
}

// Accept simulates the user accepting the highlighted item.
func (s *Selector) Accept() {
	s.selected = nil
	if item, ok := s.ActiveItem(); ok {
		s.selected = &item
	}
	if s.onAccept != nil {
		s.onAccept()
	}
}

// Close simulates the user closing the selector.
func (s *Selector) Close() {
	s.Hide()
}

// TextField is a fake picker.TextField.
type TextField struct {
	value   string
	Prompt  string
	Visible bool

	Disposed bool

	pending []string

	onAccept  func()
	onHide    func()
	onChanged func(string)
}

// NewTextField creates an empty, hidden TextField.
func NewTextField() *TextField {
	return &TextField{}
}

func (f *TextField) Value() string { return f.value }

// SetValue changes the value and queues a notification.
func (f *TextField) SetValue(value string) {
	f.value = value
	f.pending = append(f.pending, value)
}

func (f *TextField) SetPrompt(prompt string) { f.Prompt = prompt }
func (f *TextField) Show()                   { f.Visible = true }
func (f *TextField) Dispose()                { f.Disposed = true; f.Visible = false }

func (f *TextField) Hide() {
	f.Visible = false
	if f.onHide != nil {
		f.onHide()
	}
}

func (f *TextField) OnAccept(fn func())                   { f.onAccept = fn }
func (f *TextField) OnHide(fn func())                     { f.onHide = fn }
func (f *TextField) OnValueChanged(fn func(value string)) { f.onChanged = fn }

// Pending returns the number of queued notifications.
func (f *TextField) Pending() int {
	return len(f.pending)
}

// Flush delivers the queued notifications.
func (f *TextField) Flush() {
	pending := f.pending
	f.pending = nil
	for _, v := range pending {
		if f.onChanged != nil {
			f.onChanged(v)
		}
	}
}

// Type simulates a user edit: queued notifications are delivered first,
// then the edit's own.
func (f *TextField) Type(value string) {
	f.Flush()
	f.value = value
	if f.onChanged != nil {
		f.onChanged(value)
	}
}

// Accept simulates the user pressing enter.
func (f *TextField) Accept() {
	f.Flush()
	if f.onAccept != nil {
		f.onAccept()
	}
}

// Close simulates the user closing the field.
func (f *TextField) Close() {
	f.Hide()
}

// Scheduler is a manual picker.AsyncFunc: work runs only on RunAll.
type Scheduler struct {
	mu   sync.Mutex
	jobs []func()
}

// Async queues work. It has the picker.AsyncFunc signature.
func (s *Scheduler) Async(work func() ([]menu.Item, error), resolve func([]menu.Item, error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, func() { resolve(work()) })
}

// Pending returns the number of queued jobs.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

// RunAll runs the queued jobs in order.
func (s *Scheduler) RunAll() {
	s.mu.Lock()
	jobs := s.jobs
	s.jobs = nil
	s.mu.Unlock()
	for _, job := range jobs {
		job()
	}
}
