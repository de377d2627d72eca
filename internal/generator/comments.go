package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/truststack/socialmon/internal/artifact"
)

// CommentGenerator writes commentary on fetched articles, one LLM call per
// article, grounded in the article's title and summary plus company context.
type CommentGenerator struct {
	llm       Completer
	maxLength int
	logger    *slog.Logger
}

func NewCommentGenerator(llm Completer, maxLength int, logger *slog.Logger) *CommentGenerator {
	return &CommentGenerator{llm: llm, maxLength: maxLength, logger: logger}
}

// Generate visits each article once and returns a comment per article that
// succeeded. Failures become omissions; the batch continues.
func (g *CommentGenerator) Generate(ctx context.Context, articles []artifact.Article, companyContext string, temperature float64) ([]artifact.Comment, []Omission) {
	comments := []artifact.Comment{}
	var omissions []Omission

	for i, a := range articles {
		raw, err := g.llm.Complete(ctx,
			commentSystemPrompt(g.maxLength),
			commentUserPrompt(a.Title, a.Summary, companyContext, g.maxLength),
			temperature, 200)
		if err != nil {
			g.logger.Warn("comment generation failed", "item", i+1, "article", a.Title, "error", err)
			omissions = append(omissions, Omission{Index: i, Reason: err.Error()})
			continue
		}

		text := cleanCompletion(raw)
		if text == "" {
			g.logger.Warn("comment generation returned empty completion", "item", i+1, "article", a.Title)
			omissions = append(omissions, Omission{Index: i, Reason: "empty completion"})
			continue
		}
		text = truncate(text, g.maxLength)

		comments = append(comments, artifact.Comment{
			Article:    a,
			Text:       text,
			CreatedAt:  time.Now().UTC(),
			SourceHash: artifact.Digest(a.URL),
		})
		g.logger.Info("generated comment", "item", i+1, "article", a.Title, "length", len(text))
	}

	return comments, omissions
}

// FormatForMastodon turns a comment into a publishable status by appending
// the article link, re-truncated to the platform limit.
func FormatForMastodon(c artifact.Comment, maxLength int) string {
	text := c.Text
	if c.URL != "" {
		text += "\n\n🔗 " + c.URL
	}
	return truncate(text, maxLength)
}

func commentSystemPrompt(maxLength int) string {
	return fmt.Sprintf(`You are an AI/ML expert representing TrustStack.
Create thoughtful, insightful comments on industry articles.
Comments should add value to the discussion and stay under %d characters.`, maxLength)
}

func commentUserPrompt(title, summary, companyContext string, maxLength int) string {
	return fmt.Sprintf(`Article: %s

Summary: %s

Company Context: %s

Write a thoughtful comment that:
- Provides insightful perspective on the article
- Relates to the company's expertise when relevant
- Adds value to the discussion
- Is professional and respectful
- Stays under %d characters

Comment:`, title, summary, companyContext, maxLength)
}
