package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

func TestRequestIDGeneratesUUIDv4(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	var captured string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = chimiddleware.GetReqID(r.Context())
	}))

	h.ServeHTTP(rec, req)

	if captured == "" {
		t.Fatal("expected generated request ID")
	}
	if header := rec.Header().Get(chimiddleware.RequestIDHeader); header != captured {
		t.Fatalf("expected response header %q, got %q", captured, header)
	}
	parsed, err := uuid.Parse(captured)
	if err != nil {
		t.Fatalf("request ID %q is not a valid UUID: %v", captured, err)
	}
	if parsed.Version() != 4 {
		t.Fatalf("expected UUIDv4, got version %d", parsed.Version())
	}
}

func TestRequestIDPreservesIncomingHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "external-id")

	var captured string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = chimiddleware.GetReqID(r.Context())
	}))

	h.ServeHTTP(rec, req)

	if captured != "external-id" {
		t.Fatalf("expected request ID to remain external-id, got %q", captured)
	}
}

func TestRequestIDRejectsInvalidHeaders(t *testing.T) {
	tests := []struct {
		name    string
		inputID string
		wantNew bool
	}{
		{"empty string generates new UUID", "", true},
		{"valid alphanumeric is preserved", "abc123-XYZ", false},
		{"valid UUID is preserved", "550e8400-e29b-41d4-a716-446655440000", false},
		{"control characters are replaced", "bad\x00id", true},
		{"newline is replaced", "bad\nid", true},
		{"non-ASCII is replaced", "идентификатор", true},
		{"too long is replaced", strings.Repeat("a", maxRequestIDLength+1), true},
		{"max length is preserved", strings.Repeat("a", maxRequestIDLength), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.inputID != "" {
				req.Header.Set(chimiddleware.RequestIDHeader, tt.inputID)
			}

			var captured string
			h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				captured = chimiddleware.GetReqID(r.Context())
			}))
			h.ServeHTTP(rec, req)

			if tt.wantNew {
				if captured == tt.inputID {
					t.Fatalf("expected a new ID, got the incoming %q", captured)
				}
				if _, err := uuid.Parse(captured); err != nil {
					t.Fatalf("replacement ID %q is not a UUID: %v", captured, err)
				}
			} else if captured != tt.inputID {
				t.Fatalf("expected %q to be preserved, got %q", tt.inputID, captured)
			}
		})
	}
}
