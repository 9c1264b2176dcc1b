package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCORSAllowsGETOrigin(t *testing.T) {
	called := false
	fn := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	h := CORS()(fn)
	req := httptest.NewRequest(http.MethodGet, "http://localhost/resource", nil)
	req.Header.Set("Origin", "http://example.com")
	resp := httptest.NewRecorder()

	h.ServeHTTP(resp, req)

	if !called {
		t.Fatal("expected downstream handler to be called for GET request")
	}
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected Access-Control-Allow-Origin '*', got %q", got)
	}
	exposeHeaders := resp.Header().Get("Access-Control-Expose-Headers")
	if !containsHeader(exposeHeaders, "Link") {
		t.Fatalf("expected Access-Control-Expose-Headers to contain Link, got %q", exposeHeaders)
	}
}

func containsHeader(headerValue, target string) bool {
	for part := range strings.SplitSeq(headerValue, ",") {
		if strings.EqualFold(strings.TrimSpace(part), target) {
			return true
		}
	}
	return false
}

func TestCORSHandlesPreflightWithoutCallingNext(t *testing.T) {
	called := false
	fn := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	h := CORS()(fn)
	req := httptest.NewRequest(http.MethodOptions, "http://localhost/resource", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	resp := httptest.NewRecorder()

	h.ServeHTTP(resp, req)

	if called {
		t.Fatal("expected preflight request to be handled without calling downstream handler")
	}
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for preflight, got %d", resp.Code)
	}
	if got := resp.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Fatal("expected Access-Control-Allow-Methods header to be set")
	}
	if got := resp.Header().Get("Access-Control-Allow-Headers"); got == "" {
		t.Fatal("expected Access-Control-Allow-Headers header to be set")
	}
}

func TestCORSAllowsEventStreamHeaders(t *testing.T) {
	fn := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	h := CORS()(fn)
	req := httptest.NewRequest(http.MethodOptions, "http://localhost/api/logs/stream", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "Last-Event-ID")
	resp := httptest.NewRecorder()

	h.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected preflight to succeed for Last-Event-ID, got %d", resp.Code)
	}
	allowed := resp.Header().Get("Access-Control-Allow-Headers")
	if !containsHeader(allowed, "Last-Event-ID") {
		t.Fatalf("expected Last-Event-ID to be allowed, got %q", allowed)
	}
}
