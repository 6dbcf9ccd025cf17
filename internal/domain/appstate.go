package domain

import (
	"context"
	"time"
)

// UserProfile is the simulated session identity. There is no real
// authentication; login just flips this profile.
type UserProfile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	LoggedIn bool   `json:"isLoggedIn"`
}

// AppState is the aggregate root: the full ledger window, the bounded
// activity log, the session profile and the last sync marker. It is treated
// as a single-writer value; every mutation builds a new state and replaces
// the old one atomically.
type AppState struct {
	Rows     []DailyRow  `json:"rows"`
	Logs     []LogEntry  `json:"logs"`
	User     UserProfile `json:"user"`
	LastSync *time.Time  `json:"lastSync"`
}

// Clone returns a deep copy of the state suitable for transform-then-replace
// mutations.
func (s *AppState) Clone() *AppState {
	c := &AppState{
		User: s.User,
		Rows: make([]DailyRow, len(s.Rows)),
		Logs: append([]LogEntry(nil), s.Logs...),
	}
	for i, row := range s.Rows {
		c.Rows[i] = row.Clone()
	}
	if s.LastSync != nil {
		t := *s.LastSync
		c.LastSync = &t
	}
	return c
}

// SnapshotRepository persists the full application state as a single opaque
// blob under a fixed key.
type SnapshotRepository interface {
	Load(ctx context.Context, key string) (*AppState, error)
	Save(ctx context.Context, key string, state *AppState) error
}
