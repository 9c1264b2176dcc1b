package history

import (
	"context"
	"sort"
	"sync"
)

// MockStore implements Service in memory for unit tests.
type MockStore struct {
	mu      sync.RWMutex
	entries []Entry

	// RecordErr, when set, is returned by Record.
	RecordErr error
}

// NewMockStore creates an empty in-memory store.
func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Record(_ context.Context, entry Entry) error {
	if m.RecordErr != nil {
		return m.RecordErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockStore) List(_ context.Context) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	return out, nil
}

func (m *MockStore) LastByOperator(ctx context.Context, operator string) (*Entry, error) {
	entries, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].Operator == operator {
			return &entries[i], nil
		}
	}
	return nil, ErrNoRuns
}

// Compile-time interface check
var _ Service = (*MockStore)(nil)
