package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// fileEntry maps Entry to the on-disk JSON document.
type fileEntry struct {
	ID         string    `json:"id"`
	Operator   string    `json:"operator"`
	Status     string    `json:"status"`
	ExitCode   int       `json:"exit_code"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	DurationMS int64     `json:"duration_ms"`
}

type fileDoc struct {
	Runs []fileEntry `json:"runs"`
}

// FileStore implements Service on a local JSON file. Writes go through a
// temp file + rename so a crash never leaves a truncated history. A file
// that fails to parse is treated as empty rather than blocking the launcher.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file-backed history store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) load() fileDoc {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fileDoc{}
	}
	var doc fileDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fileDoc{}
	}
	return doc
}

func (s *FileStore) save(doc fileDoc) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "history_*.json")
	if err != nil {
		return fmt.Errorf("creating temp history file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing history file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing history file: %w", err)
	}
	return nil
}

// Record stores a completed run.
func (s *FileStore) Record(_ context.Context, entry Entry) error {
	if entry.ID == "" {
		return errors.New("history entry requires an ID")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	doc.Runs = append(doc.Runs, toFileEntry(entry))
	return s.save(doc)
}

// List returns all recorded runs, newest first.
func (s *FileStore) List(_ context.Context) ([]Entry, error) {
	s.mu.Lock()
	doc := s.load()
	s.mu.Unlock()

	entries := make([]Entry, 0, len(doc.Runs))
	for _, fe := range doc.Runs {
		entries = append(entries, fromFileEntry(fe))
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].StartedAt.After(entries[j].StartedAt)
	})
	return entries, nil
}

// LastByOperator returns the most recent run for an operator key.
func (s *FileStore) LastByOperator(ctx context.Context, operator string) (*Entry, error) {
	entries, err := s.List(ctx)
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

func toFileEntry(e Entry) fileEntry {
	return fileEntry{
		ID:         e.ID,
		Operator:   e.Operator,
		Status:     string(e.Status),
		ExitCode:   e.ExitCode,
		StartedAt:  e.StartedAt.UTC(),
		FinishedAt: e.FinishedAt.UTC(),
		DurationMS: e.Duration.Milliseconds(),
	}
}

func fromFileEntry(fe fileEntry) Entry {
	return Entry{
		ID:         fe.ID,
		Operator:   fe.Operator,
		Status:     Status(fe.Status),
		ExitCode:   fe.ExitCode,
		StartedAt:  fe.StartedAt,
		FinishedAt: fe.FinishedAt,
		Duration:   time.Duration(fe.DurationMS) * time.Millisecond,
	}
}

// Compile-time interface check
var _ Service = (*FileStore)(nil)
