package cmd

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/truststack/socialmon/internal/artifact"
	"github.com/truststack/socialmon/internal/config"
)

// countingServer records how many requests reached it.
func countingServer(t *testing.T, calls *int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func setCredentials(t *testing.T, mastodonURL string) {
	t.Helper()
	t.Setenv("OPENROUTER_API_KEY", "k")
	t.Setenv("OPENROUTER_MODEL", "m")
	t.Setenv("NOTION_API_KEY", "k")
	t.Setenv("NOTION_PAGE_ID", "p")
	t.Setenv("MASTODON_ACCESS_TOKEN", "t")
	t.Setenv("MASTODON_API_BASE_URL", mastodonURL)
	t.Setenv("SOCIALMON_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
}

func writePostsFile(t *testing.T, n int) string {
	t.Helper()
	posts := make([]artifact.Post, n)
	for i := range posts {
		posts[i] = artifact.Post{Text: "Post text", Style: "professional", Length: 9}
	}
	path := filepath.Join(t.TempDir(), "posts.json")
	if err := artifact.Save(path, posts); err != nil {
		t.Fatalf("failed to write posts file: %v", err)
	}
	return path
}

func TestPostToMastodonIndexOutOfRange(t *testing.T) {
	var calls int
	server := countingServer(t, &calls)
	setCredentials(t, server.URL)

	postFile = writePostsFile(t, 3)
	postIndex = 5
	postAll = false
	postPreview = false

	err := runPostToMastodon(&cobra.Command{}, nil)

	var ierr *artifact.IndexError
	if !errors.As(err, &ierr) {
		t.Fatalf("expected *artifact.IndexError, got %v", err)
	}
	if calls != 0 {
		t.Errorf("expected no network calls, got %d", calls)
	}
}

func TestPostToMastodonPreviewMakesNoCalls(t *testing.T) {
	var calls int
	server := countingServer(t, &calls)
	setCredentials(t, server.URL)

	postFile = writePostsFile(t, 2)
	postIndex = -1
	postAll = false
	postPreview = true

	if err := runPostToMastodon(&cobra.Command{}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 0 {
		t.Errorf("preview made %d network calls", calls)
	}
}

func TestPostToMastodonRequiresSelection(t *testing.T) {
	var calls int
	server := countingServer(t, &calls)
	setCredentials(t, server.URL)

	postFile = writePostsFile(t, 2)
	postIndex = -1
	postAll = false
	postPreview = false

	if err := runPostToMastodon(&cobra.Command{}, nil); err == nil {
		t.Error("expected error when neither --index nor --all is given")
	}
	if calls != 0 {
		t.Errorf("expected no network calls, got %d", calls)
	}
}

func TestCommandsFailBeforeNetworkWithoutConfig(t *testing.T) {
	var calls int
	server := countingServer(t, &calls)
	setCredentials(t, server.URL)
	t.Setenv("OPENROUTER_API_KEY", "") // one missing key fails everything

	runners := map[string]func(*cobra.Command, []string) error{
		"generate-posts":    runGeneratePosts,
		"fetch-articles":    runFetchArticles,
		"generate-comments": runGenerateComments,
		"post-to-mastodon":  runPostToMastodon,
		"post-comments":     runPostComments,
		"account-info":      runAccountInfo,
		"search-and-reply":  runSearchAndReply,
		"full-workflow":     runFullWorkflow,
	}

	for name, run := range runners {
		err := run(&cobra.Command{}, nil)
		var verr *config.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected *config.ValidationError, got %v", name, err)
		}
	}
	if calls != 0 {
		t.Errorf("expected zero network calls across all commands, got %d", calls)
	}
}

func TestValidateRequestBounds(t *testing.T) {
	if err := validateRequest(0, 0.7); err == nil {
		t.Error("expected error for count 0")
	}
	if err := validateRequest(3, 2.5); err == nil {
		t.Error("expected error for temperature above 2")
	}
	if err := validateRequest(3, -0.1); err == nil {
		t.Error("expected error for negative temperature")
	}
	if err := validateRequest(3, 0.7); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
