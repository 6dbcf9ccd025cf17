package domain

import (
	"time"

	"github.com/google/uuid"
)

type LogAction string

const (
	LogActionAdd       LogAction = "ADD"
	LogActionEdit      LogAction = "EDIT"
	LogActionDelete    LogAction = "DELETE"
	LogActionSync      LogAction = "SYNC"
	LogActionAIProcess LogAction = "AI_PROCESS"
)

// MaxLogEntries bounds the activity log; oldest entries are dropped first.
const MaxLogEntries = 100

// LogEntry is one user-visible action in the activity log. The log is
// observational only and is never read by the balance engine.
type LogEntry struct {
	ID          uuid.UUID `json:"id"`
	Action      LogAction `json:"action"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// PrependLog puts entry at the head of logs (newest first) and truncates the
// result to MaxLogEntries.
func PrependLog(logs []LogEntry, entry LogEntry) []LogEntry {
	out := make([]LogEntry, 0, len(logs)+1)
	out = append(out, entry)
	out = append(out, logs...)
	if len(out) > MaxLogEntries {
		out = out[:MaxLogEntries]
	}
	return out
}
