package history

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	runsCollection   = "runs"
	latestCollection = "operator_latest"
)

// firestoreEntry maps to the Firestore document structure.
type firestoreEntry struct {
	Operator   string    `firestore:"operator"`
	Status     string    `firestore:"status"`
	ExitCode   int       `firestore:"exit_code"`
	StartedAt  time.Time `firestore:"started_at"`
	FinishedAt time.Time `firestore:"finished_at"`
	DurationMS int64     `firestore:"duration_ms"`
}

// FirestoreStore implements Service on Firestore. Each run is a document in
// the runs collection; a per-operator "latest" document is kept in the same
// transaction so LastByOperator avoids a query.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// Record stores a completed run and updates the operator's latest pointer.
func (s *FirestoreStore) Record(ctx context.Context, entry Entry) error {
	runRef := s.client.Collection(runsCollection).Doc(entry.ID)
	latestRef := s.client.Collection(latestCollection).Doc(entry.Operator)
	fe := toFirestoreEntry(entry)

	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		latest, err := tx.Get(latestRef)
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}

		if err := tx.Set(runRef, fe); err != nil {
			return err
		}

		// Only advance the latest pointer forward in time.
		if latest != nil && latest.Exists() {
			var prev firestoreEntry
			if err := latest.DataTo(&prev); err == nil && prev.StartedAt.After(fe.StartedAt) {
				return nil
			}
		}
		return tx.Set(latestRef, fe)
	})
}

// List returns all recorded runs, newest first.
func (s *FirestoreStore) List(ctx context.Context) ([]Entry, error) {
	iter := s.client.Collection(runsCollection).
		OrderBy("started_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var entries []Entry
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var fe firestoreEntry
		if err := doc.DataTo(&fe); err != nil {
			return nil, err
		}
		entries = append(entries, fromFirestoreEntry(doc.Ref.ID, fe))
	}
	return entries, nil
}

// LastByOperator returns the most recent run for an operator key.
func (s *FirestoreStore) LastByOperator(ctx context.Context, operator string) (*Entry, error) {
	doc, err := s.client.Collection(latestCollection).Doc(operator).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNoRuns
		}
		return nil, err
	}
	var fe firestoreEntry
	if err := doc.DataTo(&fe); err != nil {
		return nil, err
	}
	entry := fromFirestoreEntry("", fe)
	return &entry, nil
}

func toFirestoreEntry(e Entry) firestoreEntry {
	return firestoreEntry{
		Operator:   e.Operator,
		Status:     string(e.Status),
		ExitCode:   e.ExitCode,
		StartedAt:  e.StartedAt.UTC(),
		FinishedAt: e.FinishedAt.UTC(),
		DurationMS: e.Duration.Milliseconds(),
	}
}

func fromFirestoreEntry(id string, fe firestoreEntry) Entry {
	return Entry{
		ID:         id,
		Operator:   fe.Operator,
		Status:     Status(fe.Status),
		ExitCode:   fe.ExitCode,
		StartedAt:  fe.StartedAt,
		FinishedAt: fe.FinishedAt,
		Duration:   time.Duration(fe.DurationMS) * time.Millisecond,
	}
}

// Compile-time interface check
var _ Service = (*FirestoreStore)(nil)
