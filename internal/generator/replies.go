package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/truststack/socialmon/internal/artifact"
	"github.com/truststack/socialmon/internal/htmltext"
	"github.com/truststack/socialmon/internal/mastodon"
)

// ReplyGenerator decides, in one structured-output batch call, which found
// statuses deserve a reply and drafts the replies.
type ReplyGenerator struct {
	llm       Completer
	maxLength int
	logger    *slog.Logger
}

type replyDecision struct {
	PostNumber  int    `json:"post_number"`
	ShouldReply bool   `json:"should_reply"`
	Reason      string `json:"reason"`
	Reply       string `json:"reply"`
}

func NewReplyGenerator(llm Completer, maxLength int, logger *slog.Logger) *ReplyGenerator {
	return &ReplyGenerator{llm: llm, maxLength: maxLength, logger: logger}
}

// GenerateBatch returns one Reply per input status, in input order. A
// status the model skipped or answered unusably gets ShouldReply=false.
func (g *ReplyGenerator) GenerateBatch(ctx context.Context, statuses []mastodon.Status, companyContext string, temperature float64) ([]artifact.Reply, error) {
	if len(statuses) == 0 {
		return []artifact.Reply{}, nil
	}

	raw, err := g.llm.Complete(ctx,
		replySystemPrompt(g.maxLength),
		replyUserPrompt(statuses, companyContext),
		temperature, 2000)
	if err != nil {
		return nil, fmt.Errorf("reply generation failed: %w", err)
	}

	decisions, err := parseReplyDecisions(raw)
	if err != nil {
		return nil, err
	}

	byNumber := make(map[int]replyDecision, len(decisions))
	for _, d := range decisions {
		byNumber[d.PostNumber] = d
	}

	now := time.Now().UTC()
	replies := make([]artifact.Reply, 0, len(statuses))
	for i, s := range statuses {
		r := artifact.Reply{
			StatusID:   s.ID,
			Author:     s.Account.Username,
			StatusURL:  s.URL,
			StatusText: htmltext.Strip(s.Content),
			CreatedAt:  now,
		}

		if d, ok := byNumber[i+1]; ok {
			r.Reason = d.Reason
			if text := truncate(cleanCompletion(d.Reply), g.maxLength); d.ShouldReply && text != "" {
				r.ShouldReply = true
				r.Text = text
			}
		} else {
			r.Reason = "no decision returned for this post"
			g.logger.Warn("model returned no decision", "post", i+1)
		}

		replies = append(replies, r)
	}

	return replies, nil
}

// parseReplyDecisions accepts a bare JSON array or one buried in
// surrounding prose/fences.
func parseReplyDecisions(raw string) ([]replyDecision, error) {
	var decisions []replyDecision
	if err := json.Unmarshal([]byte(raw), &decisions); err == nil {
		return decisions, nil
	}

	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array found in reply completion")
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &decisions); err != nil {
		return nil, fmt.Errorf("failed to parse reply completion as JSON: %w", err)
	}
	return decisions, nil
}

func replySystemPrompt(maxLength int) string {
	return fmt.Sprintf(`You are a social media manager for TrustStack, an e-commerce trust & safety company.
Generate helpful, engaging replies to posts that are relevant to the company's expertise.

GUIDELINES:
- Be genuinely helpful and add value to the conversation
- Don't be overly promotional
- Keep replies under %d characters each
- Only mention the company if naturally relevant

Respond with a JSON array only. Each element:
{"post_number": <1-based number>, "should_reply": <bool>, "reason": "<why>", "reply": "<text or empty>"}`, maxLength)
}

func replyUserPrompt(statuses []mastodon.Status, companyContext string) string {
	var sb strings.Builder
	sb.WriteString("Company Context:\n")
	sb.WriteString(companyContext)
	sb.WriteString("\n\nPosts:\n")
	for i, s := range statuses {
		fmt.Fprintf(&sb, "\n%d. @%s: %s\n", i+1, s.Account.Username, htmltext.Strip(s.Content))
	}
	sb.WriteString("\nDecide for each post whether to reply, and draft the reply where appropriate.")
	return sb.String()
}
