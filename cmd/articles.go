package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/truststack/socialmon/internal/article"
	"github.com/truststack/socialmon/internal/artifact"
	"github.com/truststack/socialmon/internal/logging"
)

var fetchArticlesCmd = &cobra.Command{
	Use:   "fetch-articles",
	Short: "Fetch top articles from configured feeds",
	Long:  `Polls the RSS feeds from config.yaml and keeps recent entries matching the configured keywords.`,
	RunE:  runFetchArticles,
}

var (
	articleCount  int
	articleOutput string
	minAgeHours   int
	maxAgeDays    int
)

func init() {
	rootCmd.AddCommand(fetchArticlesCmd)
	fetchArticlesCmd.Flags().IntVarP(&articleCount, "count", "c", 10, "Number of top articles to fetch")
	fetchArticlesCmd.Flags().StringVarP(&articleOutput, "output", "o", "output/articles.json", "Output file path")
	fetchArticlesCmd.Flags().IntVar(&minAgeHours, "min-age-hours", 1, "Minimum article age in hours")
	fetchArticlesCmd.Flags().IntVar(&maxAgeDays, "max-age-days", 7, "Maximum article age in days")
}

func runFetchArticles(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if articleCount < 1 {
		return fmt.Errorf("count must be at least 1, got %d", articleCount)
	}

	fmt.Printf("Fetching top %d articles from %d feeds...\n", articleCount, len(cfg.Feeds))

	fetcher := article.NewFetcher(cfg.Feeds, cfg.Keywords, cfg.Articles.MaxPerFeed, logging.New(""))
	articles, err := fetcher.FetchTop(cmd.Context(), articleCount, minAgeHours, maxAgeDays)
	if err != nil {
		return err
	}

	if err := artifact.Save(articleOutput, articles); err != nil {
		return err
	}

	fmt.Printf("\n%s Fetched %d articles\n", okStyle.Render("✓"), len(articles))
	fmt.Printf("%s Saved to %s\n", okStyle.Render("✓"), articleOutput)

	for i, a := range articles {
		if i >= 5 {
			break
		}
		fmt.Printf("\n%d. %s\n", i+1, headerStyle.Render(clip(a.Title, 70)))
		fmt.Printf("   %s %s\n", labelStyle.Render("Source:"), valueStyle.Render(a.FeedName))
		if len(a.MatchedKeywords) > 0 {
			fmt.Printf("   %s %s\n", labelStyle.Render("Keywords:"), valueStyle.Render(strings.Join(a.MatchedKeywords, ", ")))
		}
		fmt.Printf("   %s\n", urlStyle.Render(a.URL))
	}
	return nil
}
