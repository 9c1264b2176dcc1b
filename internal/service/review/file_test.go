package review

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// fakeExporter records exported items and optionally fails.
type fakeExporter struct {
	exported []*Item
	err      error
}

func (f *fakeExporter) Export(_ context.Context, item *Item) error {
	if f.err != nil {
		return f.err
	}
	f.exported = append(f.exported, item)
	return nil
}

func leadPayload() map[string]any {
	return map[string]any{
		"address": "123 Main St",
		"price":   float64(250000),
	}
}

func TestFileQueueEnqueueAndGet(t *testing.T) {
	q := NewFileQueue(filepath.Join(t.TempDir(), "queue.json"), &fakeExporter{})
	ctx := context.Background()

	item, err := q.Enqueue(ctx, "servicelink_auction", leadPayload())
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if item.ID == "" || item.Status != StatusPending {
		t.Fatalf("unexpected item: %+v", item)
	}

	got, err := q.Get(ctx, item.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Source != "servicelink_auction" {
		t.Errorf("source = %q", got.Source)
	}
	if got.Payload["address"] != "123 Main St" {
		t.Errorf("payload not preserved: %v", got.Payload)
	}
}

func TestFileQueueGetNotFound(t *testing.T) {
	q := NewFileQueue(filepath.Join(t.TempDir(), "queue.json"), nil)

	if _, err := q.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFileQueueListNewestFirst(t *testing.T) {
	q := NewFileQueue(filepath.Join(t.TempDir(), "queue.json"), nil)
	ctx := context.Background()

	first, _ := q.Enqueue(ctx, "auction_com", leadPayload())
	time.Sleep(5 * time.Millisecond)
	second, _ := q.Enqueue(ctx, "zome_com", leadPayload())

	items, err := q.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != second.ID || items[1].ID != first.ID {
		t.Errorf("expected newest first: %s, %s", items[0].ID, items[1].ID)
	}
}

func TestFileQueueApprove(t *testing.T) {
	exporter := &fakeExporter{}
	q := NewFileQueue(filepath.Join(t.TempDir(), "queue.json"), exporter)
	ctx := context.Background()

	item, _ := q.Enqueue(ctx, "auction_com", leadPayload())

	res, err := q.Approve(ctx, item.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if res.Status != StatusApproved || !res.Forwarded {
		t.Errorf("unexpected resolution: %+v", res)
	}
	if len(exporter.exported) != 1 || exporter.exported[0].ID != item.ID {
		t.Errorf("exporter did not receive the item")
	}
	if _, err := q.Get(ctx, item.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected item removed after approve, got %v", err)
	}
}

func TestFileQueueApproveExportDisabled(t *testing.T) {
	q := NewFileQueue(filepath.Join(t.TempDir(), "queue.json"), nil)
	ctx := context.Background()

	item, _ := q.Enqueue(ctx, "auction_com", leadPayload())

	if _, err := q.Approve(ctx, item.ID); !errors.Is(err, ErrExportDisabled) {
		t.Fatalf("expected ErrExportDisabled, got %v", err)
	}
}

func TestFileQueueApproveExportFailureKeepsItem(t *testing.T) {
	exporter := &fakeExporter{err: ErrExportFailed}
	q := NewFileQueue(filepath.Join(t.TempDir(), "queue.json"), exporter)
	ctx := context.Background()

	item, _ := q.Enqueue(ctx, "auction_com", leadPayload())

	if _, err := q.Approve(ctx, item.ID); !errors.Is(err, ErrExportFailed) {
		t.Fatalf("expected ErrExportFailed, got %v", err)
	}
	if _, err := q.Get(ctx, item.ID); err != nil {
		t.Errorf("expected item still queued after failed export, got %v", err)
	}
}

func TestFileQueueReject(t *testing.T) {
	q := NewFileQueue(filepath.Join(t.TempDir(), "queue.json"), nil)
	ctx := context.Background()

	item, _ := q.Enqueue(ctx, "auction_com", leadPayload())

	res, err := q.Reject(ctx, item.ID, "duplicate listing")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if res.Status != StatusRejected || res.Reason != "duplicate listing" || res.Forwarded {
		t.Errorf("unexpected resolution: %+v", res)
	}
	if _, err := q.Get(ctx, item.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected item removed after reject, got %v", err)
	}
}

func TestFileQueueRejectDefaultReason(t *testing.T) {
	q := NewFileQueue(filepath.Join(t.TempDir(), "queue.json"), nil)
	ctx := context.Background()

	item, _ := q.Enqueue(ctx, "auction_com", leadPayload())

	res, err := q.Reject(ctx, item.ID, "")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if res.Reason != "Rejected by reviewer" {
		t.Errorf("reason = %q", res.Reason)
	}
}

func TestFileQueueClear(t *testing.T) {
	q := NewFileQueue(filepath.Join(t.TempDir(), "queue.json"), nil)
	ctx := context.Background()

	_, _ = q.Enqueue(ctx, "auction_com", leadPayload())
	_, _ = q.Enqueue(ctx, "zome_com", leadPayload())

	n, err := q.Clear(ctx)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if n != 2 {
		t.Errorf("cleared = %d, want 2", n)
	}
	items, _ := q.List(ctx)
	if len(items) != 0 {
		t.Errorf("expected empty queue, got %d items", len(items))
	}
}

func TestFileQueueSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.json")
	ctx := context.Background()

	first := NewFileQueue(path, nil)
	item, _ := first.Enqueue(ctx, "auction_com", leadPayload())

	second := NewFileQueue(path, nil)
	got, err := second.Get(ctx, item.ID)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.Source != "auction_com" {
		t.Errorf("source = %q", got.Source)
	}
}

func TestFileQueueToleratesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queue.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seeding corrupt file: %v", err)
	}
	q := NewFileQueue(path, nil)
	ctx := context.Background()

	items, err := q.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty queue, got %d items", len(items))
	}
	if _, err := q.Enqueue(ctx, "auction_com", leadPayload()); err != nil {
		t.Fatalf("enqueue over corrupt file: %v", err)
	}
}
