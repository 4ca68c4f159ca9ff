package quiz

import (
	"encoding/json"
	"os"
	"sync"
	"time"
)

// SubmissionEvent is one scored submission, recorded for later review.
type SubmissionEvent struct {
	Test       string    `json:"test"`
	Key        string    `json:"key,omitempty"`
	Total      int       `json:"total"`
	Correct    int       `json:"correct"`
	Incorrect  int       `json:"incorrect"`
	Unanswered int       `json:"unanswered"`
	Score      float64   `json:"score"`
	At         time.Time `json:"at"`
}

// EventLog appends submission events to a JSON-lines file. The file is
// the only durable record of submissions; everything else is derived
// from the source documents on demand.
type EventLog struct {
	mu   sync.Mutex
	path string
}

func NewEventLog(path string) *EventLog {
	return &EventLog{path: path}
}

// Append writes one event as a single JSON line.
func (l *EventLog) Append(ev SubmissionEvent) error {
	line, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write(line)
	return err
}
