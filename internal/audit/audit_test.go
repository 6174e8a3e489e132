package audit

import (
	"os"
	"testing"
	"time"
)

func TestLogger_LogAndEvents(t *testing.T) {
	dir := t.TempDir()
	logger := NewLogger(dir)

	now := time.Now().Truncate(time.Millisecond)

	events := []Event{
		{Timestamp: now, Type: EventCreate, Path: "/ws/src/a.go"},
		{Timestamp: now, Type: EventCreate, Path: "/ws/src/b.go"},
		{Timestamp: now.Add(time.Second), Type: EventError, Details: "Unable to create and open new file."},
	}

	if err := logger.Log(events...); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	result, err := logger.Events(0)
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}

	if len(result) != len(events) {
		t.Fatalf("got %d events, want %d", len(result), len(events))
	}

	for i, e := range result {
		if e.Type != events[i].Type {
			t.Errorf("event %d: type = %q, want %q", i, e.Type, events[i].Type)
		}
		if e.Path != events[i].Path {
			t.Errorf("event %d: path = %q, want %q", i, e.Path, events[i].Path)
		}
		if e.Details != events[i].Details {
			t.Errorf("event %d: details = %q, want %q", i, e.Details, events[i].Details)
		}
	}
}

func TestLogger_EventsEmpty(t *testing.T) {
	logger := NewLogger(t.TempDir())

	result, err := logger.Events(0)
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("got %d events, want 0", len(result))
	}
}

func TestLogger_LogNothing(t *testing.T) {
	logger := NewLogger(t.TempDir())

	if err := logger.Log(); err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if _, err := os.Stat(logger.Path()); !os.IsNotExist(err) {
		t.Error("history file should not be created without events")
	}
}

func TestLogger_LogEvent(t *testing.T) {
	logger := NewLogger(t.TempDir())

	if err := logger.LogEvent(EventCreate, "/ws/docs/", "folder"); err != nil {
		t.Fatalf("LogEvent failed: %v", err)
	}

	events, err := logger.Events(0)
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}

	e := events[0]
	if e.Type != EventCreate {
		t.Errorf("type = %q, want %q", e.Type, EventCreate)
	}
	if e.Path != "/ws/docs/" {
		t.Errorf("path = %q, want %q", e.Path, "/ws/docs/")
	}
	if e.Timestamp.IsZero() {
		t.Error("timestamp should be set automatically")
	}
}

func TestLogger_EventsLimit(t *testing.T) {
	logger := NewLogger(t.TempDir())

	base := time.Now()
	for i := 0; i < 5; i++ {
		logger.Log(Event{
			Timestamp: base.Add(time.Duration(i) * time.Second),
			Type:      EventCreate,
			Path:      string(rune('A' + i)),
		})
	}

	events, _ := logger.Events(2)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Path != "D" || events[1].Path != "E" {
		t.Errorf("events = %v, want the last two", events)
	}
}

func TestLogger_SkipsMalformedLines(t *testing.T) {
	logger := NewLogger(t.TempDir())
	logger.LogEvent(EventCreate, "/ws/a", "")

	f, err := os.OpenFile(logger.Path(), os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("not json\n\n")
	f.Close()

	logger.LogEvent(EventCreate, "/ws/b", "")

	events, err := logger.Events(0)
	if err != nil {
		t.Fatalf("Events failed: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("got %d events, want 2", len(events))
	}
}

func TestLogger_Clear(t *testing.T) {
	logger := NewLogger(t.TempDir())
	logger.LogEvent(EventCreate, "/ws/a", "")

	if err := logger.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	events, _ := logger.Events(0)
	if len(events) != 0 {
		t.Errorf("got %d events after clear, want 0", len(events))
	}

	if err := logger.Clear(); err != nil {
		t.Errorf("Clear should not error without history: %v", err)
	}
}
