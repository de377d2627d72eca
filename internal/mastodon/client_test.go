package mastodon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestPostStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/statuses" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}
		if got := r.PostForm.Get("status"); got != "Hello fediverse" {
			t.Errorf("unexpected status %q", got)
		}
		if got := r.PostForm.Get("visibility"); got != "public" {
			t.Errorf("unexpected visibility %q", got)
		}
		w.Write([]byte(`{"id":"42","url":"https://mastodon.test/@acct/42","created_at":"2025-06-01T12:00:00Z"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "token", 5*time.Second)
	status, err := client.PostStatus(context.Background(), "Hello fediverse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.ID != "42" {
		t.Errorf("unexpected id %s", status.ID)
	}
	if status.URL != "https://mastodon.test/@acct/42" {
		t.Errorf("unexpected url %s", status.URL)
	}
}

func TestReplySetsInReplyTo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		if got := r.PostForm.Get("in_reply_to_id"); got != "99" {
			t.Errorf("unexpected in_reply_to_id %q", got)
		}
		w.Write([]byte(`{"id":"100","url":"https://mastodon.test/@acct/100"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "token", 5*time.Second)
	if _, err := client.Reply(context.Background(), "99", "Good point!"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestVerifyCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/accounts/verify_credentials" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token" {
			t.Errorf("unexpected auth %q", got)
		}
		w.Write([]byte(`{"id":"7","username":"truststack","display_name":"TrustStack","followers_count":10,"statuses_count":3,"url":"https://mastodon.test/@truststack"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "token", 5*time.Second)
	account, err := client.VerifyCredentials(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.Username != "truststack" || account.FollowersCount != 10 {
		t.Errorf("unexpected account %+v", account)
	}
}

func TestSearchFiltersOwnStatuses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("type"); got != "statuses" {
			t.Errorf("unexpected search type %q", got)
		}
		w.Write([]byte(`{"statuses":[
			{"id":"1","content":"<p>fraud trends</p>","account":{"id":"7","username":"me"}},
			{"id":"2","content":"<p>marketplace safety</p>","account":{"id":"8","username":"other"}}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "token", 5*time.Second)
	statuses, err := client.Search(context.Background(), "fraud", 5, "7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(statuses) != 1 || statuses[0].ID != "2" {
		t.Errorf("expected own status filtered out, got %+v", statuses)
	}
}

func TestUpstreamErrorIncludesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Record not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "token", 5*time.Second)
	if _, err := client.PostStatus(context.Background(), "x"); err == nil {
		t.Error("expected error for 404 response")
	}
}
