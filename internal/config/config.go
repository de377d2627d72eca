package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	openrouterKeyEnv   = "OPENROUTER_API_KEY"
	openrouterModelEnv = "OPENROUTER_MODEL"
	notionKeyEnv       = "NOTION_API_KEY"
	notionPageEnv      = "NOTION_PAGE_ID"
	mastodonTokenEnv   = "MASTODON_ACCESS_TOKEN"
	mastodonURLEnv     = "MASTODON_API_BASE_URL"
)

// Config carries everything a command needs: credentials from the
// environment plus feed and generation settings from config.yaml.
type Config struct {
	OpenrouterAPIKey    string `yaml:"-"`
	OpenrouterModel     string `yaml:"-"`
	NotionAPIKey        string `yaml:"-"`
	NotionPageID        string `yaml:"-"`
	MastodonAccessToken string `yaml:"-"`
	MastodonBaseURL     string `yaml:"-"`

	Feeds    []Feed          `yaml:"rss_feeds"`
	Keywords []string        `yaml:"article_keywords"`
	Posts    PostSettings    `yaml:"post_settings"`
	Comments CommentSettings `yaml:"comment_settings"`
	Articles ArticleSettings `yaml:"article_settings"`
}

type Feed struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type PostSettings struct {
	MaxLength int `yaml:"max_length"`
}

type CommentSettings struct {
	MaxLength int `yaml:"max_length"`
}

type ArticleSettings struct {
	MaxPerFeed int `yaml:"max_articles_per_feed"`
}

// ValidationError reports every missing required key at once so the user
// can fix the environment in a single pass.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required configuration: " + strings.Join(e.Missing, ", ")
}

func Default() *Config {
	return &Config{
		Feeds: []Feed{
			{Name: "Hacker News", URL: "https://news.ycombinator.com/rss"},
		},
		Keywords: []string{"ai", "machine learning", "fraud", "trust and safety"},
		Posts:    PostSettings{MaxLength: 500},
		Comments: CommentSettings{MaxLength: 300},
		Articles: ArticleSettings{MaxPerFeed: 20},
	}
}

func configPath() string {
	if path := os.Getenv("SOCIALMON_CONFIG"); path != "" {
		return path
	}
	return "config.yaml"
}

// Load reads .env (if present), the YAML settings file (defaults when
// missing), and credential environment variables. It does not validate;
// callers decide when missing keys are fatal.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	data, err := os.ReadFile(configPath())
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.OpenrouterAPIKey = os.Getenv(openrouterKeyEnv)
	cfg.OpenrouterModel = os.Getenv(openrouterModelEnv)
	cfg.NotionAPIKey = os.Getenv(notionKeyEnv)
	cfg.NotionPageID = os.Getenv(notionPageEnv)
	cfg.MastodonAccessToken = os.Getenv(mastodonTokenEnv)
	cfg.MastodonBaseURL = os.Getenv(mastodonURLEnv)

	return cfg, nil
}

// Validate checks the required credential keys and returns a
// *ValidationError naming all that are missing.
func (c *Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{openrouterKeyEnv, c.OpenrouterAPIKey},
		{openrouterModelEnv, c.OpenrouterModel},
		{notionKeyEnv, c.NotionAPIKey},
		{notionPageEnv, c.NotionPageID},
		{mastodonTokenEnv, c.MastodonAccessToken},
		{mastodonURLEnv, c.MastodonBaseURL},
	}

	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.key)
		}
	}

	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
