package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/truststack/socialmon/internal/artifact"
)

// PostGenerator turns company context into social-media posts, one LLM
// call per post, cycling through the style set.
type PostGenerator struct {
	llm       Completer
	maxLength int
	logger    *slog.Logger
}

func NewPostGenerator(llm Completer, maxLength int, logger *slog.Logger) *PostGenerator {
	return &PostGenerator{llm: llm, maxLength: maxLength, logger: logger}
}

// Generate produces up to count posts grounded in contextText, cycling
// through styles (the default set when empty; a single element pins every
// post to that style). Items that fail are dropped and reported as
// omissions; the batch never aborts.
func (g *PostGenerator) Generate(ctx context.Context, contextText string, count int, temperature float64, styles []Style) ([]artifact.Post, []Omission) {
	if len(styles) == 0 {
		styles = DefaultStyles()
	}
	sourceHash := artifact.Digest(contextText)

	posts := []artifact.Post{}
	var omissions []Omission

	for i := 0; i < count; i++ {
		style := styles[i%len(styles)]

		raw, err := g.llm.Complete(ctx,
			postSystemPrompt(style, g.maxLength),
			postUserPrompt(style, contextText, g.maxLength),
			temperature, 300)
		if err != nil {
			g.logger.Warn("post generation failed", "item", i+1, "style", style, "error", err)
			omissions = append(omissions, Omission{Index: i, Reason: err.Error()})
			continue
		}

		text := cleanCompletion(raw)
		if text == "" {
			g.logger.Warn("post generation returned empty completion", "item", i+1, "style", style)
			omissions = append(omissions, Omission{Index: i, Reason: "empty completion"})
			continue
		}
		text = truncate(text, g.maxLength)

		posts = append(posts, artifact.Post{
			Text:       text,
			Style:      string(style),
			Length:     len(text),
			CreatedAt:  time.Now().UTC(),
			SourceHash: sourceHash,
		})
		g.logger.Info("generated post", "item", i+1, "style", style, "length", len(text))
	}

	return posts, omissions
}

func postSystemPrompt(style Style, maxLength int) string {
	return fmt.Sprintf(`You are a social media manager for TrustStack.
Create engaging social media posts in %s.
Posts must be concise, engaging, and under %d characters.`, style.promptFragment(), maxLength)
}

func postUserPrompt(style Style, contextText string, maxLength int) string {
	return fmt.Sprintf(`Based on the following company information, create a compelling social media post:

%s

Create a %s post that:
- Highlights a key aspect of the company
- Is engaging and shareable
- Stays under %d characters
- Includes relevant hashtags if appropriate

Post:`, contextText, style, maxLength)
}
