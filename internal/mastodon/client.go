package mastodon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client wraps the handful of Mastodon REST endpoints this tool uses.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// Status is a posted or found toot.
type Status struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Account   Account   `json:"account"`
}

// Account describes a Mastodon account.
type Account struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	DisplayName    string `json:"display_name"`
	FollowersCount int    `json:"followers_count"`
	FollowingCount int    `json:"following_count"`
	StatusesCount  int    `json:"statuses_count"`
	URL            string `json:"url"`
}

type searchResult struct {
	Statuses []Status `json:"statuses"`
}

func NewClient(baseURL, accessToken string, timeout time.Duration) *Client {
	return &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// PostStatus publishes a public status.
func (c *Client) PostStatus(ctx context.Context, content string) (*Status, error) {
	return c.postForm(ctx, url.Values{
		"status":     {content},
		"visibility": {"public"},
	})
}

// Reply publishes a public status in reply to an existing one.
func (c *Client) Reply(ctx context.Context, statusID, content string) (*Status, error) {
	return c.postForm(ctx, url.Values{
		"status":         {content},
		"visibility":     {"public"},
		"in_reply_to_id": {statusID},
	})
}

func (c *Client) postForm(ctx context.Context, form url.Values) (*Status, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/statuses", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var status Status
	if err := c.do(req, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// VerifyCredentials returns the account behind the access token.
func (c *Client) VerifyCredentials(ctx context.Context) (*Account, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/accounts/verify_credentials", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	var account Account
	if err := c.do(req, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// Search finds recent statuses matching the query. Statuses authored by
// excludeAccountID are filtered out so the tool never replies to itself.
func (c *Client) Search(ctx context.Context, query string, limit int, excludeAccountID string) ([]Status, error) {
	params := url.Values{
		"q":     {query},
		"type":  {"statuses"},
		"limit": {strconv.Itoa(limit)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v2/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	var result searchResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}

	statuses := result.Statuses[:0]
	for _, s := range result.Statuses {
		if excludeAccountID != "" && s.Account.ID == excludeAccountID {
			continue
		}
		statuses = append(statuses, s)
	}
	return statuses, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("mastodon error %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
