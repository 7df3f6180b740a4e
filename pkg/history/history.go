package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/uuid"
)

// Oldest entries are dropped past this
const maxEvents = 100

type Event struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Distance  float64   `json:"distance"` // metres to nearest target
	Unlocked  bool      `json:"unlocked"`
	TriesLeft uint8     `json:"tries_left"`
	Error     string    `json:"error,omitempty"`
}

type EventLog struct {
	Events []Event `json:"events"`
}

// Log is the owner-readable record of attempts, kept as JSON next to the
// config. It is separate from the EEPROM image and never read by the box
// logic.
type Log struct {
	mu   sync.Mutex
	path string
}

// Open creates the event log at path if it doesn't exist
func Open(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	l := &Log{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := l.writeEventLog(&EventLog{Events: []Event{}}); err != nil {
			return nil, fmt.Errorf("failed to create event log: %w", err)
		}
	}
	return l, nil
}

// Record appends an event, filling in ID and timestamp
func (l *Log) Record(ev Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	id, err := uuid.NewV4()
	if err != nil {
		return fmt.Errorf("failed to generate ID: %w", err)
	}
	ev.ID = id.String()
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}

	eventLog, err := l.readEventLog()
	if err != nil {
		return err
	}

	eventLog.Events = append(eventLog.Events, ev)
	if len(eventLog.Events) > maxEvents {
		eventLog.Events = eventLog.Events[len(eventLog.Events)-maxEvents:]
	}
	return l.writeEventLog(eventLog)
}

// Events returns all events, newest first
func (l *Log) Events() ([]Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	eventLog, err := l.readEventLog()
	if err != nil {
		return nil, err
	}

	events := make([]Event, len(eventLog.Events))
	for i := range eventLog.Events {
		events[i] = eventLog.Events[len(eventLog.Events)-1-i]
	}
	return events, nil
}

func (l *Log) readEventLog() (*EventLog, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event log: %w", err)
	}

	var log EventLog
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("failed to parse event log: %w", err)
	}

	return &log, nil
}

func (l *Log) writeEventLog(log *EventLog) error {
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal event log: %w", err)
	}

	if err := os.WriteFile(l.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write event log: %w", err)
	}

	return nil
}
