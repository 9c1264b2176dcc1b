package reviews

import (
	"github.com/leadbotio/leadbot/internal/platform/timeutil"
)

// Item represents one queued lead awaiting review.
type Item struct {
	ID        string         `json:"id"        doc:"Unique identifier" example:"7f9c24e8-3b12-4b8f-a1d0-2f5e9c6b7a01"`
	Source    string         `json:"source"    doc:"Operator key that produced the lead" example:"servicelink_auction"`
	Status    string         `json:"status"    doc:"Lifecycle state"   example:"pending" enum:"pending,approved,rejected"`
	Payload   map[string]any `json:"payload"   doc:"Lead data as captured by the bot"`
	CreatedAt timeutil.Time  `json:"createdAt" doc:"When the lead was queued"`
}

// Resolution represents the outcome of approving or rejecting an item.
type Resolution struct {
	ID         string        `json:"id"               doc:"Unique identifier" example:"7f9c24e8-3b12-4b8f-a1d0-2f5e9c6b7a01"`
	Status     string        `json:"status"           doc:"Final state"       example:"approved" enum:"approved,rejected"`
	Reason     string        `json:"reason,omitempty" doc:"Rejection reason"`
	Forwarded  bool          `json:"forwarded"        doc:"Whether the lead was exported downstream" example:"true"`
	ResolvedAt timeutil.Time `json:"resolvedAt"       doc:"When the item was resolved"`
}
