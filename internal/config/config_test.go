package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var credentialEnv = []string{
	"OPENROUTER_API_KEY", "OPENROUTER_MODEL",
	"NOTION_API_KEY", "NOTION_PAGE_ID",
	"MASTODON_ACCESS_TOKEN", "MASTODON_API_BASE_URL",
}

func setAllCredentials(t *testing.T) {
	t.Helper()
	for _, key := range credentialEnv {
		t.Setenv(key, "value-for-"+key)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Posts.MaxLength != 500 {
		t.Errorf("expected post max length 500, got %d", cfg.Posts.MaxLength)
	}
	if cfg.Comments.MaxLength != 300 {
		t.Errorf("expected comment max length 300, got %d", cfg.Comments.MaxLength)
	}
	if cfg.Articles.MaxPerFeed != 20 {
		t.Errorf("expected 20 articles per feed, got %d", cfg.Articles.MaxPerFeed)
	}
	if len(cfg.Feeds) == 0 {
		t.Error("expected at least one default feed")
	}
}

func TestLoadAppliesYAMLAndEnv(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
rss_feeds:
  - name: Example Blog
    url: https://example.com/feed.xml
article_keywords:
  - golang
post_settings:
  max_length: 280
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("SOCIALMON_CONFIG", path)
	setAllCredentials(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if len(cfg.Feeds) != 1 || cfg.Feeds[0].Name != "Example Blog" {
		t.Errorf("expected single feed from yaml, got %+v", cfg.Feeds)
	}
	if cfg.Posts.MaxLength != 280 {
		t.Errorf("expected post max length 280, got %d", cfg.Posts.MaxLength)
	}
	if cfg.OpenrouterAPIKey != "value-for-OPENROUTER_API_KEY" {
		t.Errorf("expected env credential, got %q", cfg.OpenrouterAPIKey)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("SOCIALMON_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	setAllCredentials(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected defaults for missing file, got error: %v", err)
	}
	if cfg.Posts.MaxLength != 500 {
		t.Errorf("expected default max length 500, got %d", cfg.Posts.MaxLength)
	}
}

func TestValidateReportsAllMissingKeys(t *testing.T) {
	cfg := Default()

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error for empty credentials")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(verr.Missing) != len(credentialEnv) {
		t.Errorf("expected %d missing keys, got %d: %v", len(credentialEnv), len(verr.Missing), verr.Missing)
	}
}

func TestValidateSingleMissingKey(t *testing.T) {
	cfg := Default()
	cfg.OpenrouterAPIKey = "k"
	cfg.OpenrouterModel = "m"
	cfg.NotionAPIKey = "k"
	cfg.NotionPageID = "p"
	cfg.MastodonAccessToken = "t"
	// MastodonBaseURL left empty

	var verr *ValidationError
	if err := cfg.Validate(); !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	} else if len(verr.Missing) != 1 || verr.Missing[0] != "MASTODON_API_BASE_URL" {
		t.Errorf("expected only MASTODON_API_BASE_URL missing, got %v", verr.Missing)
	}

	cfg.MastodonBaseURL = "https://mastodon.social"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}
