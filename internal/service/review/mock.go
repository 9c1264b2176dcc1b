package review

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

// MockReviewService implements Service in memory for unit tests.
type MockReviewService struct {
	items map[string]Item

	// ExportEnabled gates Approve, mirroring the exporter wiring.
	ExportEnabled bool
	// ExportErr, when set, makes Approve fail after finding the item.
	ExportErr error
}

// NewMockReviewService creates an empty mock queue with export enabled.
func NewMockReviewService() *MockReviewService {
	return &MockReviewService{
		items:         map[string]Item{},
		ExportEnabled: true,
	}
}

func (m *MockReviewService) Enqueue(_ context.Context, source string, payload map[string]any) (*Item, error) {
	item := Item{
		ID:        uuid.NewString(),
		Source:    source,
		Status:    StatusPending,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
	m.items[item.ID] = item
	return &item, nil
}

func (m *MockReviewService) Get(_ context.Context, id string) (*Item, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (m *MockReviewService) List(_ context.Context) ([]Item, error) {
	items := make([]Item, 0, len(m.items))
	for _, it := range m.items {
		items = append(items, it)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (m *MockReviewService) Approve(_ context.Context, id string) (*Resolution, error) {
	if !m.ExportEnabled {
		return nil, ErrExportDisabled
	}
	if _, ok := m.items[id]; !ok {
		return nil, ErrNotFound
	}
	if m.ExportErr != nil {
		return nil, m.ExportErr
	}
	delete(m.items, id)
	return &Resolution{ID: id, Status: StatusApproved, Forwarded: true, ResolvedAt: time.Now().UTC()}, nil
}

func (m *MockReviewService) Reject(_ context.Context, id, reason string) (*Resolution, error) {
	if _, ok := m.items[id]; !ok {
		return nil, ErrNotFound
	}
	delete(m.items, id)
	if reason == "" {
		reason = "Rejected by reviewer"
	}
	return &Resolution{ID: id, Status: StatusRejected, Reason: reason, ResolvedAt: time.Now().UTC()}, nil
}

func (m *MockReviewService) Clear(_ context.Context) (int, error) {
	n := len(m.items)
	m.items = map[string]Item{}
	return n, nil
}

// Compile-time interface check
var _ Service = (*MockReviewService)(nil)
