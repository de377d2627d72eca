package publisher

import (
	"context"
	"log/slog"

	"github.com/truststack/socialmon/internal/mastodon"
)

// Poster is the one network operation publishing needs. *mastodon.Client
// satisfies it.
type Poster interface {
	PostStatus(ctx context.Context, content string) (*mastodon.Status, error)
}

// Result reports one publish attempt. It is printed and discarded.
type Result struct {
	Success   bool
	RemoteID  string
	RemoteURL string
	Err       error
}

// Publisher posts artifact text to the social network, or previews it
// without any network call.
type Publisher struct {
	poster  Poster
	preview bool
	logger  *slog.Logger
}

func New(poster Poster, preview bool, logger *slog.Logger) *Publisher {
	return &Publisher{poster: poster, preview: preview, logger: logger}
}

// Preview reports whether this publisher is in dry-run mode.
func (p *Publisher) Preview() bool {
	return p.preview
}

// Publish posts one piece of content. In preview mode it returns before
// touching the network with Success=false; that is display behavior, not a
// failure.
func (p *Publisher) Publish(ctx context.Context, content string) Result {
	if p.preview {
		return Result{Success: false}
	}

	status, err := p.poster.PostStatus(ctx, content)
	if err != nil {
		p.logger.Warn("publish failed", "error", err)
		return Result{Err: err}
	}

	p.logger.Info("published", "id", status.ID, "url", status.URL)
	return Result{Success: true, RemoteID: status.ID, RemoteURL: status.URL}
}

// PublishAll publishes each content in order, continuing past failures.
// One Result is returned per input, index-aligned.
func (p *Publisher) PublishAll(ctx context.Context, contents []string) []Result {
	results := make([]Result, 0, len(contents))
	for _, content := range contents {
		results = append(results, p.Publish(ctx, content))
	}
	return results
}
