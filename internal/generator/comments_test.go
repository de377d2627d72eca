package generator

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/truststack/socialmon/internal/artifact"
)

func sampleArticles(n int) []artifact.Article {
	articles := make([]artifact.Article, n)
	for i := range articles {
		articles[i] = artifact.Article{
			Title:    fmt.Sprintf("Article %d", i+1),
			URL:      fmt.Sprintf("https://example.com/%d", i+1),
			Summary:  "Some industry development.",
			FeedName: "Tech",
		}
	}
	return articles
}

func TestGenerateComments(t *testing.T) {
	g := NewCommentGenerator(&fakeCompleter{}, 300, discard())

	comments, omissions := g.Generate(context.Background(), sampleArticles(3), "Company context.", 0.7)

	if len(comments) != 3 {
		t.Fatalf("expected 3 comments, got %d", len(comments))
	}
	if len(omissions) != 0 {
		t.Errorf("expected no omissions, got %v", omissions)
	}
	for i, c := range comments {
		if c.Text == "" {
			t.Errorf("comment %d: empty text", i)
		}
		if c.SourceHash != artifact.Digest(c.URL) {
			t.Errorf("comment %d: source hash does not identify the article", i)
		}
		if c.Title != fmt.Sprintf("Article %d", i+1) {
			t.Errorf("comment %d: article metadata not carried over", i)
		}
	}
}

func TestGenerateCommentsPartialFailure(t *testing.T) {
	llm := &fakeCompleter{errs: map[int]error{0: fmt.Errorf("upstream 503")}}
	g := NewCommentGenerator(llm, 300, discard())

	comments, omissions := g.Generate(context.Background(), sampleArticles(2), "ctx", 0.7)

	if len(comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(comments))
	}
	if len(omissions) != 1 || omissions[0].Index != 0 {
		t.Errorf("expected omission at index 0, got %v", omissions)
	}
}

func TestFormatForMastodon(t *testing.T) {
	c := artifact.Comment{
		Article: artifact.Article{URL: "https://example.com/a"},
		Text:    "Sharp take on the article.",
	}

	got := FormatForMastodon(c, 500)
	if !strings.Contains(got, "Sharp take on the article.") {
		t.Errorf("formatted post missing comment: %q", got)
	}
	if !strings.Contains(got, "https://example.com/a") {
		t.Errorf("formatted post missing article URL: %q", got)
	}

	if got := FormatForMastodon(c, 20); len([]rune(got)) > 20 {
		t.Errorf("formatted post exceeds limit: %q", got)
	}
}

func TestFormatForMastodonWithoutURL(t *testing.T) {
	c := artifact.Comment{Text: "Comment only."}
	if got := FormatForMastodon(c, 500); got != "Comment only." {
		t.Errorf("unexpected formatting %q", got)
	}
}
