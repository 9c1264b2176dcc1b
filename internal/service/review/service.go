// Package review implements the manual review queue: leads parked by the bot
// until an operator approves or rejects them.
package review

import (
	"context"
	"errors"
	"time"
)

// Service errors
var (
	ErrNotFound       = errors.New("review item not found")
	ErrExportDisabled = errors.New("lead export is disabled")
	ErrExportFailed   = errors.New("lead export failed")
)

// Status is the lifecycle state of a review item.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Item is one queued lead awaiting review.
type Item struct {
	ID        string
	Source    string
	Status    Status
	Payload   map[string]any
	CreatedAt time.Time
}

// Resolution records the outcome of approving or rejecting an item.
type Resolution struct {
	ID         string
	Status     Status
	Reason     string
	Forwarded  bool
	ResolvedAt time.Time
}

// Service defines review queue operations. Resolved items leave the queue;
// only pending items are ever listed.
type Service interface {
	// Enqueue adds a pending item and returns it with its assigned ID.
	Enqueue(ctx context.Context, source string, payload map[string]any) (*Item, error)
	// Get returns a pending item by ID.
	Get(ctx context.Context, id string) (*Item, error)
	// List returns all pending items, newest first.
	List(ctx context.Context) ([]Item, error)
	// Approve forwards the item downstream and removes it from the queue.
	// Returns ErrExportDisabled when no exporter is configured.
	Approve(ctx context.Context, id string) (*Resolution, error)
	// Reject removes the item from the queue without forwarding it.
	Reject(ctx context.Context, id, reason string) (*Resolution, error)
	// Clear drops every pending item and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}
