// Package audit keeps a history of the paths created from the picker.
// Events are stored as JSON Lines (JSONL), appended once per session.
package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// HistoryFile is the name of the event log under the state directory.
const HistoryFile = "history.jsonl"

// EventType classifies a history event.
type EventType string

const (
	EventCreate EventType = "create"
	EventError  EventType = "error"
)

// Event represents a single history entry.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	// Path is the created path, empty for errors not tied to one.
	Path    string `json:"path,omitempty"`
	Details string `json:"details,omitempty"`
}

// Logger writes and reads history events.
// Events are stored in {stateDir}/history.jsonl.
type Logger struct {
	stateDir string
}

// NewLogger creates a new history logger rooted at stateDir.
func NewLogger(stateDir string) *Logger {
	return &Logger{stateDir: stateDir}
}

// Path returns the path to the JSONL event log.
func (l *Logger) Path() string {
	return filepath.Join(l.stateDir, HistoryFile)
}

// Log appends events to the history in one write.
func (l *Logger) Log(events ...Event) error {
	if len(events) == 0 {
		return nil
	}

	var buf []byte
	now := time.Now()
	for _, event := range events {
		if event.Timestamp.IsZero() {
			event.Timestamp = now
		}
		data, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal event: %w", err)
		}
		buf = append(append(buf, data...), '\n')
	}

	path := l.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(buf); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

// LogEvent is a convenience method that creates and logs an event.
func (l *Logger) LogEvent(eventType EventType, path, details string) error {
	return l.Log(Event{
		Timestamp: time.Now(),
		Type:      eventType,
		Path:      path,
		Details:   details,
	})
}

// Events reads the last limit events in chronological order.
// A limit of zero or less reads them all.
func (l *Logger) Events(limit int) ([]Event, error) {
	f, err := os.Open(l.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue // Skip malformed lines
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("error reading history: %w", err)
	}

	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	return events, nil
}

// Clear deletes the history.
func (l *Logger) Clear() error {
	if err := os.Remove(l.Path()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
