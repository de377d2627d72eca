package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Post is one generated social-media post. Posts have no stable identifier;
// commands address them by position in the file they were saved to.
type Post struct {
	Text       string     `json:"content"`
	Style      string     `json:"style"`
	Length     int        `json:"length"`
	CreatedAt  time.Time  `json:"generated_at"`
	SourceHash string     `json:"source_hash,omitempty"`
	Posted     bool       `json:"posted"`
	PostedAt   *time.Time `json:"posted_at,omitempty"`
	RemoteURL  string     `json:"mastodon_url,omitempty"`
}

// Article is a ranked feed entry, later used as generation context.
type Article struct {
	Title           string     `json:"title"`
	URL             string     `json:"url"`
	Summary         string     `json:"summary"`
	FeedName        string     `json:"source"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	MatchedKeywords []string   `json:"matched_keywords"`
}

// Comment is an article plus the commentary generated for it.
type Comment struct {
	Article
	Text       string    `json:"comment"`
	CreatedAt  time.Time `json:"comment_generated_at"`
	SourceHash string    `json:"source_hash"`
}

// Reply is a found status plus the structured reply decision made for it.
type Reply struct {
	StatusID    string    `json:"status_id"`
	Author      string    `json:"author"`
	StatusURL   string    `json:"status_url"`
	StatusText  string    `json:"status_text"`
	ShouldReply bool      `json:"should_reply"`
	Reason      string    `json:"reason,omitempty"`
	Text        string    `json:"reply,omitempty"`
	CreatedAt   time.Time `json:"generated_at"`
}

// IndexError reports an artifact index outside the loaded file.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	if e.Len == 0 {
		return fmt.Sprintf("invalid index %d: file is empty", e.Index)
	}
	return fmt.Sprintf("invalid index %d: must be 0-%d", e.Index, e.Len-1)
}

// CheckIndex validates a 0-based index against a file of n entries.
func CheckIndex(index, n int) error {
	if index < 0 || index >= n {
		return &IndexError{Index: index, Len: n}
	}
	return nil
}

// Digest returns a short hex digest identifying a piece of source context.
func Digest(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:8])
}
