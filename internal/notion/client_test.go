package notion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const pageJSON = `{
	"properties": {
		"Name": {
			"type": "title",
			"title": [{"plain_text": "TrustStack"}]
		}
	}
}`

const blocksJSON = `{
	"results": [
		{"type": "heading_1", "heading_1": {"rich_text": [{"plain_text": "About"}]}},
		{"type": "paragraph", "paragraph": {"rich_text": [{"plain_text": "We build "}, {"plain_text": "trust tooling."}]}},
		{"type": "bulleted_list_item", "bulleted_list_item": {"rich_text": [{"plain_text": "Fraud detection"}]}},
		{"type": "quote", "quote": {"rich_text": [{"plain_text": "Safety first."}]}},
		{"type": "divider"},
		{"type": "paragraph", "paragraph": {"rich_text": []}}
	]
}`

func newTestServer(t *testing.T, requests *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*requests++
		if r.Header.Get("Notion-Version") == "" {
			t.Error("missing Notion-Version header")
		}
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			t.Error("missing bearer token")
		}
		switch {
		case strings.HasPrefix(r.URL.Path, "/v1/pages/"):
			w.Write([]byte(pageJSON))
		case strings.HasSuffix(r.URL.Path, "/children"):
			w.Write([]byte(blocksJSON))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestCompanySummary(t *testing.T) {
	var requests int
	server := newTestServer(t, &requests)
	defer server.Close()

	client := NewClient(server.URL, "secret", "page-123", 5*time.Second)
	summary, err := client.CompanySummary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"# TrustStack",
		"## About",
		"We build trust tooling.",
		"- Fraud detection",
		"> Safety first.",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestCompanySummaryCached(t *testing.T) {
	var requests int
	server := newTestServer(t, &requests)
	defer server.Close()

	client := NewClient(server.URL, "secret", "page-123", 5*time.Second)
	if _, err := client.CompanySummary(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := requests

	if _, err := client.CompanySummary(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if requests != first {
		t.Errorf("expected cached summary, but %d extra requests were made", requests-first)
	}
}

func TestCompanySummaryUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad", "page-123", 5*time.Second)
	if _, err := client.CompanySummary(context.Background()); err == nil {
		t.Error("expected error for unauthorized response")
	}
}
