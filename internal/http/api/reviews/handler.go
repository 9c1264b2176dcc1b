package reviews

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/leadbotio/leadbot/internal/platform/timeutil"
	reviewsvc "github.com/leadbotio/leadbot/internal/service/review"
)

// Register wires review queue routes into the provided API router.
func Register(api huma.API, svc reviewsvc.Service, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-review-item",
		Method:        http.MethodPost,
		Path:          "/reviews",
		Summary:       "Queue a lead for review",
		Description:   "Adds a lead to the review queue. The bot calls this for leads it cannot export automatically.",
		Tags:          []string{"Reviews"},
		DefaultStatus: http.StatusCreated,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ReviewCreateInput) (*ReviewCreateOutput, error) {
		item, err := svc.Enqueue(ctx, input.Body.Source, input.Body.Payload)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ReviewCreateOutput{
			Location: prefix + "/reviews/" + item.ID,
			Body:     toHTTPItem(item),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-review-items",
		Method:      http.MethodGet,
		Path:        "/reviews",
		Summary:     "List pending review items",
		Description: "Returns all pending leads, newest first.",
		Tags:        []string{"Reviews"},
	}, func(ctx context.Context, _ *ReviewListInput) (*ReviewListOutput, error) {
		items, err := svc.List(ctx)
		if err != nil {
			return nil, mapServiceError(err)
		}
		httpItems := make([]Item, len(items))
		for i := range items {
			httpItems[i] = toHTTPItem(&items[i])
		}
		return &ReviewListOutput{Body: ReviewListData{
			Items: httpItems,
			Count: len(httpItems),
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-review-item",
		Method:      http.MethodGet,
		Path:        "/reviews/{id}",
		Summary:     "Get a review item",
		Description: "Returns a pending lead by ID.",
		Tags:        []string{"Reviews"},
	}, func(ctx context.Context, input *ReviewGetInput) (*ReviewGetOutput, error) {
		item, err := svc.Get(ctx, input.ID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ReviewGetOutput{Body: toHTTPItem(item)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "approve-review-item",
		Method:      http.MethodPost,
		Path:        "/reviews/{id}/approve",
		Summary:     "Approve a review item",
		Description: "Forwards the lead downstream and removes it from the queue. A failed export leaves the item queued.",
		Tags:        []string{"Reviews"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ReviewApproveInput) (*ReviewResolveOutput, error) {
		res, err := svc.Approve(ctx, input.ID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ReviewResolveOutput{Body: toHTTPResolution(res)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "reject-review-item",
		Method:      http.MethodPost,
		Path:        "/reviews/{id}/reject",
		Summary:     "Reject a review item",
		Description: "Removes the lead from the queue without forwarding it.",
		Tags:        []string{"Reviews"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ReviewRejectInput) (*ReviewResolveOutput, error) {
		res, err := svc.Reject(ctx, input.ID, input.Body.Reason)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ReviewResolveOutput{Body: toHTTPResolution(res)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "clear-review-queue",
		Method:      http.MethodDelete,
		Path:        "/reviews",
		Summary:     "Clear the review queue",
		Description: "Drops every pending lead.",
		Tags:        []string{"Reviews"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *ReviewClearInput) (*ReviewClearOutput, error) {
		n, err := svc.Clear(ctx)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ReviewClearOutput{Body: ReviewClearData{Cleared: n}}, nil
	})
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, reviewsvc.ErrNotFound):
		return huma.Error404NotFound("review item not found")
	case errors.Is(err, reviewsvc.ErrExportDisabled):
		return huma.Error409Conflict("lead export is disabled")
	case errors.Is(err, reviewsvc.ErrExportFailed):
		return huma.Error502BadGateway("lead export failed")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPItem(it *reviewsvc.Item) Item {
	payload := it.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	return Item{
		ID:        it.ID,
		Source:    it.Source,
		Status:    string(it.Status),
		Payload:   payload,
		CreatedAt: timeutil.Time{Time: it.CreatedAt},
	}
}

func toHTTPResolution(r *reviewsvc.Resolution) Resolution {
	return Resolution{
		ID:         r.ID,
		Status:     string(r.Status),
		Reason:     r.Reason,
		Forwarded:  r.Forwarded,
		ResolvedAt: timeutil.Time{Time: r.ResolvedAt},
	}
}
