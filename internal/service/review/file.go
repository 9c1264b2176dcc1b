package review

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// fileItem maps Item to the on-disk JSON document.
type fileItem struct {
	ID        string         `json:"id"`
	Source    string         `json:"source"`
	Status    string         `json:"status"`
	Payload   map[string]any `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}

type fileDoc struct {
	Items map[string]fileItem `json:"items"`
}

// FileQueue implements Service on a local JSON file. Writes go through a
// temp file + rename so a crash never leaves a truncated queue. A file that
// fails to parse is treated as empty rather than blocking the launcher.
// A nil exporter disables Approve.
type FileQueue struct {
	mu       sync.Mutex
	path     string
	exporter Exporter
}

// NewFileQueue creates a file-backed review queue at path.
func NewFileQueue(path string, exporter Exporter) *FileQueue {
	return &FileQueue{path: path, exporter: exporter}
}

func (q *FileQueue) load() fileDoc {
	doc := fileDoc{Items: map[string]fileItem{}}
	data, err := os.ReadFile(q.path)
	if err != nil {
		return doc
	}
	var parsed fileDoc
	if err := json.Unmarshal(data, &parsed); err != nil || parsed.Items == nil {
		return doc
	}
	return parsed
}

func (q *FileQueue) save(doc fileDoc) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding review queue: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(q.path), "rq_*.json")
	if err != nil {
		return fmt.Errorf("creating temp queue file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing review queue: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing queue file: %w", err)
	}
	if err := os.Rename(tmpPath, q.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing queue file: %w", err)
	}
	return nil
}

func (q *FileQueue) Enqueue(_ context.Context, source string, payload map[string]any) (*Item, error) {
	item := Item{
		ID:        uuid.NewString(),
		Source:    source,
		Status:    StatusPending,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	doc := q.load()
	doc.Items[item.ID] = toFileItem(item)
	if err := q.save(doc); err != nil {
		return nil, err
	}
	return &item, nil
}

func (q *FileQueue) Get(_ context.Context, id string) (*Item, error) {
	q.mu.Lock()
	doc := q.load()
	q.mu.Unlock()

	fi, ok := doc.Items[id]
	if !ok {
		return nil, ErrNotFound
	}
	item := fromFileItem(fi)
	return &item, nil
}

func (q *FileQueue) List(_ context.Context) ([]Item, error) {
	q.mu.Lock()
	doc := q.load()
	q.mu.Unlock()

	items := make([]Item, 0, len(doc.Items))
	for _, fi := range doc.Items {
		items = append(items, fromFileItem(fi))
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// Approve forwards the item and removes it from the queue. An export failure
// leaves the item queued so it can be retried.
func (q *FileQueue) Approve(ctx context.Context, id string) (*Resolution, error) {
	if q.exporter == nil {
		return nil, ErrExportDisabled
	}

	item, err := q.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := q.exporter.Export(ctx, item); err != nil {
		return nil, err
	}

	q.mu.Lock()
	doc := q.load()
	delete(doc.Items, id)
	saveErr := q.save(doc)
	q.mu.Unlock()
	if saveErr != nil {
		return nil, saveErr
	}

	return &Resolution{
		ID:         id,
		Status:     StatusApproved,
		Forwarded:  true,
		ResolvedAt: time.Now().UTC(),
	}, nil
}

func (q *FileQueue) Reject(_ context.Context, id, reason string) (*Resolution, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	doc := q.load()
	if _, ok := doc.Items[id]; !ok {
		return nil, ErrNotFound
	}
	delete(doc.Items, id)
	if err := q.save(doc); err != nil {
		return nil, err
	}

	if reason == "" {
		reason = "Rejected by reviewer"
	}
	return &Resolution{
		ID:         id,
		Status:     StatusRejected,
		Reason:     reason,
		ResolvedAt: time.Now().UTC(),
	}, nil
}

func (q *FileQueue) Clear(_ context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	doc := q.load()
	n := len(doc.Items)
	if err := q.save(fileDoc{Items: map[string]fileItem{}}); err != nil {
		return 0, err
	}
	return n, nil
}

func toFileItem(it Item) fileItem {
	return fileItem{
		ID:        it.ID,
		Source:    it.Source,
		Status:    string(it.Status),
		Payload:   it.Payload,
		CreatedAt: it.CreatedAt.UTC(),
	}
}

func fromFileItem(fi fileItem) Item {
	return Item{
		ID:        fi.ID,
		Source:    fi.Source,
		Status:    Status(fi.Status),
		Payload:   fi.Payload,
		CreatedAt: fi.CreatedAt,
	}
}

// Compile-time interface check
var _ Service = (*FileQueue)(nil)
