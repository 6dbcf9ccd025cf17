package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/smartledger-ai/smartledger-backend/internal/domain"
	"github.com/smartledger-ai/smartledger-backend/internal/ledger"
	"github.com/smartledger-ai/smartledger-backend/internal/websocket"
)

// LedgerService is the application state store. It owns the current AppState
// and is the only component allowed to mutate it. Every mutation is a
// transform-then-replace step: clone the state, apply the change, recompute
// balances, swap the pointer, persist the snapshot, publish an event. Old
// states are never modified, so readers can hold returned slices safely.
type LedgerService struct {
	mu          sync.RWMutex
	state       *domain.AppState
	snapshots   domain.SnapshotRepository
	snapshotKey string
	publisher   websocket.EventPublisher

	now func() time.Time
}

// NewLedgerService creates a LedgerService around an initial state. Balances
// are recomputed up front so a loaded snapshot is consistent even if it was
// written by a buggy or older build.
func NewLedgerService(state *domain.AppState, snapshots domain.SnapshotRepository, snapshotKey string, publisher websocket.EventPublisher) *LedgerService {
	state.Rows = ledger.Recompute(state.Rows)
	return &LedgerService{
		state:       state,
		snapshots:   snapshots,
		snapshotKey: snapshotKey,
		publisher:   publisher,
		now:         time.Now,
	}
}

// LoadOrCreateState loads the persisted snapshot or, when none exists (or it
// cannot be decoded), generates a fresh empty window ending today.
func LoadOrCreateState(ctx context.Context, snapshots domain.SnapshotRepository, key string, today time.Time, windowDays int) *domain.AppState {
	state, err := snapshots.Load(ctx, key)
	if err == nil {
		log.Info().Int("rows", len(state.Rows)).Msg("Loaded ledger snapshot")
		return state
	}
	if !errors.Is(err, domain.ErrSnapshotNotFound) {
		log.Warn().Err(err).Msg("Snapshot unreadable, starting fresh")
	}
	return &domain.AppState{
		Rows: ledger.GenerateWindow(today, windowDays),
		Logs: []domain.LogEntry{},
		User: domain.UserProfile{Name: "Guest User"},
	}
}

// Rows returns the ledger newest first. The returned slice belongs to an
// immutable state value and must not be modified by callers.
func (s *LedgerService) Rows() []domain.DailyRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Rows
}

// Row returns the row for the given day key.
func (s *LedgerService) Row(date string) (domain.DailyRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.state.Rows {
		if s.state.Rows[i].Date == date {
			return s.state.Rows[i], nil
		}
	}
	return domain.DailyRow{}, domain.ErrRowNotFound
}

// Logs returns the activity log, newest first.
func (s *LedgerService) Logs() []domain.LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Logs
}

// User returns the current session profile and last sync marker.
func (s *LedgerService) User() (domain.UserProfile, *time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.User, s.state.LastSync
}

// Totals returns the window-wide header figures.
func (s *LedgerService) Totals() ledger.Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ledger.WindowTotals(s.state.Rows)
}

// AddEntry validates and records one transaction on the row matching date.
// A zero amount is rejected with ErrInvalidAmount and an unknown date with
// ErrRowNotFound; in both cases the ledger and log are left untouched.
// Rows are never created implicitly.
func (s *LedgerService) AddEntry(ctx context.Context, date string, entryType domain.EntryType, amount decimal.Decimal, category, notes string) (*domain.Transaction, error) {
	if !entryType.Valid() {
		return nil, domain.ErrInvalidEntryType
	}
	if amount.IsZero() {
		return nil, domain.ErrInvalidAmount
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = domain.DefaultCategory
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := rowIndex(s.state.Rows, date)
	if idx < 0 {
		return nil, domain.ErrRowNotFound
	}

	tx := domain.Transaction{
		ID:        uuid.New(),
		Type:      entryType,
		Category:  category,
		Amount:    amount,
		Notes:     notes,
		Timestamp: s.now(),
	}

	next := s.state.Clone()
	if err := next.Rows[idx].AddTransaction(tx); err != nil {
		return nil, err
	}
	next.Rows = ledger.Recompute(next.Rows)
	entry := s.appendLog(next, domain.LogActionAdd, fmt.Sprintf("Added %s of %s for %s", entryType, amount, date))

	s.commit(ctx, next)
	s.publisher.Publish(websocket.LedgerUpdated(map[string]string{"date": date}))
	s.publisher.Publish(websocket.ActivityAppended(entry))
	return &tx, nil
}

// DeleteTransaction removes the transaction with the given id from the row
// matching date. A miss is still a full state transition: balances are
// recomputed, a DELETE entry is logged and the snapshot is persisted. The
// returned bool reports whether anything was actually removed.
func (s *LedgerService) DeleteTransaction(ctx context.Context, date string, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	removed := false
	if idx := rowIndex(next.Rows, date); idx >= 0 {
		removed = next.Rows[idx].RemoveTransaction(id)
	}
	next.Rows = ledger.Recompute(next.Rows)
	entry := s.appendLog(next, domain.LogActionDelete, fmt.Sprintf("Deleted transaction from %s", date))

	s.commit(ctx, next)
	s.publisher.Publish(websocket.LedgerUpdated(map[string]string{"date": date}))
	s.publisher.Publish(websocket.ActivityAppended(entry))
	return removed, nil
}

// EditNotes replaces the free-text notes of the row matching date. Balances
// are unaffected and no log entry is emitted, but the snapshot is persisted.
func (s *LedgerService) EditNotes(ctx context.Context, date, notes string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := rowIndex(s.state.Rows, date)
	if idx < 0 {
		return domain.ErrRowNotFound
	}

	next := s.state.Clone()
	next.Rows[idx].Notes = notes

	s.commit(ctx, next)
	s.publisher.Publish(websocket.LedgerUpdated(map[string]string{"date": date}))
	return nil
}

// RecordAIProcess appends the single AI_PROCESS log entry that closes an
// assistant batch. The count reflects entries submitted, not accepted.
func (s *LedgerService) RecordAIProcess(ctx context.Context, submitted int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	entry := s.appendLog(next, domain.LogActionAIProcess, fmt.Sprintf("Processed %d entries via AI", submitted))

	s.commit(ctx, next)
	s.publisher.Publish(websocket.ActivityAppended(entry))
}

// Login performs the simulated sign-in: a fixed demo profile, a sync marker
// and a SYNC log entry.
func (s *LedgerService) Login(ctx context.Context) domain.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	next := s.state.Clone()
	next.User = domain.UserProfile{Name: "John Doe", Email: "john@example.com", LoggedIn: true}
	next.LastSync = &now
	s.appendLog(next, domain.LogActionSync, "Logged in and synced with Google Drive")

	s.commit(ctx, next)
	s.publisher.Publish(websocket.ProfileSynced(next.User))
	return next.User
}

// Logout reverts the session to the guest profile.
func (s *LedgerService) Logout(ctx context.Context) domain.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	next.User = domain.UserProfile{Name: "Guest User"}

	s.commit(ctx, next)
	s.publisher.Publish(websocket.ProfileSynced(next.User))
	return next.User
}

// appendLog prepends a log entry to next's bounded activity log.
// Caller holds the write lock.
func (s *LedgerService) appendLog(next *domain.AppState, action domain.LogAction, description string) domain.LogEntry {
	entry := domain.LogEntry{
		ID:          uuid.New(),
		Action:      action,
		Description: description,
		Timestamp:   s.now(),
	}
	next.Logs = domain.PrependLog(next.Logs, entry)
	return entry
}

// commit swaps in the new state and persists it. Persistence failure is
// logged but does not roll back the in-memory transition; the local store is
// assumed cheap and reliable, and losing a write beats losing the edit.
// Caller holds the write lock.
func (s *LedgerService) commit(ctx context.Context, next *domain.AppState) {
	s.state = next
	if err := s.snapshots.Save(ctx, s.snapshotKey, next); err != nil {
		log.Error().Err(err).Msg("Failed to persist snapshot")
	}
}

func rowIndex(rows []domain.DailyRow, date string) int {
	for i := range rows {
		if rows[i].Date == date {
			return i
		}
	}
	return -1
}
