package testutil

import (
	"context"
	"sync"

	"github.com/smartledger-ai/smartledger-backend/internal/domain"
)

// MockSnapshotRepository is an in-memory implementation of domain.SnapshotRepository
type MockSnapshotRepository struct {
	mu        sync.Mutex
	Snapshots map[string]*domain.AppState
	SaveCalls int
	SaveErr   error
	LoadErr   error
}

// NewMockSnapshotRepository creates a new MockSnapshotRepository
func NewMockSnapshotRepository() *MockSnapshotRepository {
	return &MockSnapshotRepository{
		Snapshots: make(map[string]*domain.AppState),
	}
}

// Load retrieves a stored snapshot
func (m *MockSnapshotRepository) Load(ctx context.Context, key string) (*domain.AppState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	state, ok := m.Snapshots[key]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	return state, nil
}

// Save stores a snapshot and counts the call
func (m *MockSnapshotRepository) Save(ctx context.Context, key string, state *domain.AppState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Snapshots[key] = state
	return nil
}

// Saved returns the snapshot stored under key (helper for tests)
func (m *MockSnapshotRepository) Saved(key string) *domain.AppState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Snapshots[key]
}

// MockInterpreter is a canned implementation of domain.Interpreter
type MockInterpreter struct {
	Entries     []domain.ProposedEntry
	ParseErr    error
	ParseCalls  int
	LastText    string
	SummaryText string
	SummaryErr  error
}

// ParseEntries returns the canned entries
func (m *MockInterpreter) ParseEntries(ctx context.Context, text string) ([]domain.ProposedEntry, error) {
	m.ParseCalls++
	m.LastText = text
	if m.ParseErr != nil {
		return []domain.ProposedEntry{}, m.ParseErr
	}
	return m.Entries, nil
}

// Summarize returns the canned summary
func (m *MockInterpreter) Summarize(ctx context.Context, rows []domain.DailyRow) (string, error) {
	if m.SummaryErr != nil {
		return "", m.SummaryErr
	}
	return m.SummaryText, nil
}
