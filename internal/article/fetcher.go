package article

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/truststack/socialmon/internal/artifact"
	"github.com/truststack/socialmon/internal/config"
	"github.com/truststack/socialmon/internal/htmltext"
)

const summaryLimit = 500

// Fetcher polls configured RSS/Atom feeds and ranks matching entries.
type Fetcher struct {
	parser     *gofeed.Parser
	feeds      []config.Feed
	keywords   []string
	maxPerFeed int
	logger     *slog.Logger
	now        func() time.Time
}

func NewFetcher(feeds []config.Feed, keywords []string, maxPerFeed int, logger *slog.Logger) *Fetcher {
	if maxPerFeed <= 0 {
		maxPerFeed = 20
	}
	return &Fetcher{
		parser:     gofeed.NewParser(),
		feeds:      feeds,
		keywords:   keywords,
		maxPerFeed: maxPerFeed,
		logger:     logger,
		now:        time.Now,
	}
}

// FetchTop returns at most count articles published within
// [minAgeHours, maxAgeDays] before now, matching at least one keyword,
// ordered by publish time descending with ties broken by feed declaration
// order. A feed that fails to fetch or parse is logged and skipped; the
// remaining feeds still contribute.
func (f *Fetcher) FetchTop(ctx context.Context, count, minAgeHours, maxAgeDays int) ([]artifact.Article, error) {
	now := f.now()
	oldest := now.Add(-time.Duration(maxAgeDays) * 24 * time.Hour)
	newest := now.Add(-time.Duration(minAgeHours) * time.Hour)

	var articles []artifact.Article
	for _, feedCfg := range f.feeds {
		if feedCfg.URL == "" {
			f.logger.Warn("skipping feed with no URL", "feed", feedCfg.Name)
			continue
		}

		feed, err := f.parser.ParseURLWithContext(feedCfg.URL, ctx)
		if err != nil {
			f.logger.Warn("failed to fetch feed", "feed", feedCfg.Name, "error", err)
			continue
		}

		items := feed.Items
		if len(items) > f.maxPerFeed {
			items = items[:f.maxPerFeed]
		}

		kept := 0
		for _, item := range items {
			a, ok := f.parseItem(item, feedCfg.Name, oldest, newest)
			if !ok {
				continue
			}
			articles = append(articles, a)
			kept++
		}
		f.logger.Info("fetched feed", "feed", feedCfg.Name, "entries", len(items), "kept", kept)
	}

	// Stable sort keeps feed declaration order for equal publish times.
	sort.SliceStable(articles, func(i, j int) bool {
		return publishTime(articles[i]).After(publishTime(articles[j]))
	})

	if len(articles) > count {
		articles = articles[:count]
	}
	return articles, nil
}

func (f *Fetcher) parseItem(item *gofeed.Item, feedName string, oldest, newest time.Time) (artifact.Article, bool) {
	title := strings.TrimSpace(item.Title)
	link := strings.TrimSpace(item.Link)
	if title == "" || link == "" {
		return artifact.Article{}, false
	}

	var published *time.Time
	if item.PublishedParsed != nil {
		published = item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		published = item.UpdatedParsed
	}

	// Entries without a date can't violate the window, so they pass.
	if published != nil && (published.Before(oldest) || published.After(newest)) {
		return artifact.Article{}, false
	}

	summary := htmltext.Strip(item.Description)
	if summary == "" {
		summary = htmltext.Strip(item.Content)
	}
	if len(summary) > summaryLimit {
		summary = summary[:summaryLimit]
	}

	matched := matchKeywords(title+" "+summary, f.keywords)
	if len(f.keywords) > 0 && len(matched) == 0 {
		return artifact.Article{}, false
	}

	return artifact.Article{
		Title:           title,
		URL:             link,
		Summary:         summary,
		FeedName:        feedName,
		PublishedAt:     published,
		MatchedKeywords: matched,
	}, true
}

func matchKeywords(text string, keywords []string) []string {
	lower := strings.ToLower(text)
	matched := []string{}
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			matched = append(matched, kw)
		}
	}
	return matched
}

func publishTime(a artifact.Article) time.Time {
	if a.PublishedAt == nil {
		return time.Time{}
	}
	return *a.PublishedAt
}
