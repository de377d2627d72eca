package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the Notion REST API root.
	DefaultBaseURL = "https://api.notion.com"

	apiVersion = "2022-06-28"
)

// Client fetches a single page of company information from Notion.
type Client struct {
	baseURL    string
	apiKey     string
	pageID     string
	httpClient *http.Client

	summary string // cached for the lifetime of one invocation
}

type richText struct {
	PlainText string `json:"plain_text"`
}

type richTextBlock struct {
	RichText []richText `json:"rich_text"`
}

type block struct {
	Type      string         `json:"type"`
	Paragraph *richTextBlock `json:"paragraph"`
	Heading1  *richTextBlock `json:"heading_1"`
	Heading2  *richTextBlock `json:"heading_2"`
	Heading3  *richTextBlock `json:"heading_3"`
	Bulleted  *richTextBlock `json:"bulleted_list_item"`
	Numbered  *richTextBlock `json:"numbered_list_item"`
	Quote     *richTextBlock `json:"quote"`
}

type blockChildren struct {
	Results []block `json:"results"`
}

type page struct {
	Properties map[string]struct {
		Type  string     `json:"type"`
		Title []richText `json:"title"`
	} `json:"properties"`
}

func NewClient(baseURL, apiKey, pageID string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		pageID:  pageID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CompanySummary returns the configured page flattened to plain text:
// the page title as a heading, then headings, paragraphs, list items and
// quotes in document order. The result is cached after the first call.
func (c *Client) CompanySummary(ctx context.Context) (string, error) {
	if c.summary != "" {
		return c.summary, nil
	}

	var p page
	if err := c.get(ctx, "/v1/pages/"+c.pageID, &p); err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}

	var children blockChildren
	if err := c.get(ctx, "/v1/blocks/"+c.pageID+"/children", &children); err != nil {
		return "", fmt.Errorf("failed to fetch page blocks: %w", err)
	}

	parts := []string{"# " + pageTitle(p)}
	for _, b := range children.Results {
		if text := renderBlock(b); text != "" {
			parts = append(parts, text)
		}
	}

	c.summary = strings.Join(parts, "\n\n")
	return c.summary, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("notion error %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func pageTitle(p page) string {
	for _, prop := range p.Properties {
		if prop.Type == "title" && len(prop.Title) > 0 {
			return prop.Title[0].PlainText
		}
	}
	return "Untitled"
}

func renderBlock(b block) string {
	switch b.Type {
	case "paragraph":
		return plainText(b.Paragraph)
	case "heading_1":
		return prefixText("## ", b.Heading1)
	case "heading_2":
		return prefixText("### ", b.Heading2)
	case "heading_3":
		return prefixText("#### ", b.Heading3)
	case "bulleted_list_item", "numbered_list_item":
		if b.Bulleted != nil {
			return prefixText("- ", b.Bulleted)
		}
		return prefixText("- ", b.Numbered)
	case "quote":
		return prefixText("> ", b.Quote)
	}
	return ""
}

func plainText(rt *richTextBlock) string {
	if rt == nil {
		return ""
	}
	var sb strings.Builder
	for _, t := range rt.RichText {
		sb.WriteString(t.PlainText)
	}
	return strings.TrimSpace(sb.String())
}

func prefixText(prefix string, rt *richTextBlock) string {
	text := plainText(rt)
	if text == "" {
		return ""
	}
	return prefix + text
}
