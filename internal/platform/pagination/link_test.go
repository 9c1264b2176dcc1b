package pagination

import (
	"net/url"
	"strings"
	"testing"
)

func TestBuildLinkHeaderBothCursors(t *testing.T) {
	baseURL := "/api/runs"
	query := url.Values{"operator": []string{"auction_com"}}
	next := "bmV4dA"
	prev := "cHJldg"

	link := BuildLinkHeader(baseURL, query, next, prev)

	if !strings.Contains(link, `rel="next"`) {
		t.Error("missing next rel")
	}
	if !strings.Contains(link, `rel="prev"`) {
		t.Error("missing prev rel")
	}
	if !strings.Contains(link, "cursor="+next) {
		t.Error("missing next cursor")
	}
	if !strings.Contains(link, "cursor="+prev) {
		t.Error("missing prev cursor")
	}
	if !strings.Contains(link, "operator=auction_com") {
		t.Error("original query param not preserved")
	}
}

func TestBuildLinkHeaderOnlyNext(t *testing.T) {
	link := BuildLinkHeader("/api/runs", url.Values{}, "bmV4dA", "")

	if !strings.Contains(link, `rel="next"`) {
		t.Error("missing next rel")
	}
	if strings.Contains(link, `rel="prev"`) {
		t.Error("should not contain prev rel")
	}
}

func TestBuildLinkHeaderOnlyPrev(t *testing.T) {
	link := BuildLinkHeader("/api/runs", url.Values{}, "", "cHJldg")

	if strings.Contains(link, `rel="next"`) {
		t.Error("should not contain next rel")
	}
	if !strings.Contains(link, `rel="prev"`) {
		t.Error("missing prev rel")
	}
}

func TestBuildLinkHeaderEmpty(t *testing.T) {
	link := BuildLinkHeader("/api/runs", nil, "", "")
	if link != "" {
		t.Errorf("expected empty string, got %q", link)
	}
}

func TestCloneValuesNil(t *testing.T) {
	cloned := cloneValues(nil)
	if cloned == nil {
		t.Error("expected non-nil map")
	}
	if len(cloned) != 0 {
		t.Error("expected empty map")
	}
}

func TestCloneValuesIsolation(t *testing.T) {
	original := url.Values{"key": []string{"value"}}
	cloned := cloneValues(original)
	cloned.Set("key", "modified")

	if original.Get("key") != "value" {
		t.Error("original was modified")
	}
}
