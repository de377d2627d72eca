package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/truststack/socialmon/internal/artifact"
	"github.com/truststack/socialmon/internal/generator"
	"github.com/truststack/socialmon/internal/llm"
	"github.com/truststack/socialmon/internal/logging"
	"github.com/truststack/socialmon/internal/notion"
)

var generatePostsCmd = &cobra.Command{
	Use:   "generate-posts",
	Short: "Generate social media posts from company context",
	Long:  `Fetches company information from Notion and generates posts with the LLM gateway.`,
	RunE:  runGeneratePosts,
}

var (
	genCount       int
	genOutput      string
	genTemperature float64
	genStyle       string
)

func init() {
	rootCmd.AddCommand(generatePostsCmd)
	generatePostsCmd.Flags().IntVarP(&genCount, "count", "c", 5, "Number of posts to generate")
	generatePostsCmd.Flags().StringVarP(&genOutput, "output", "o", "output/posts.json", "Output file path")
	generatePostsCmd.Flags().Float64VarP(&genTemperature, "temperature", "t", 0.7, "Sampling temperature (0-2)")
	generatePostsCmd.Flags().StringVar(&genStyle, "style", "", "Pin every post to one style instead of cycling")
}

func validateRequest(count int, temperature float64) error {
	if count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", count)
	}
	if temperature < 0 || temperature > 2 {
		return fmt.Errorf("temperature must be in [0, 2], got %g", temperature)
	}
	return nil
}

func runGeneratePosts(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := validateRequest(genCount, genTemperature); err != nil {
		return err
	}

	var styles []generator.Style
	if genStyle != "" {
		style, err := generator.ParseStyle(genStyle)
		if err != nil {
			return err
		}
		styles = []generator.Style{style}
	}

	logger := logging.New("")
	ctx := cmd.Context()

	notionClient := notion.NewClient(notion.DefaultBaseURL, cfg.NotionAPIKey, cfg.NotionPageID, clientTimeout)
	companyInfo, err := notionClient.CompanySummary(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch company context: %w", err)
	}

	llmClient := llm.NewClient(llm.DefaultBaseURL, cfg.OpenrouterAPIKey, cfg.OpenrouterModel, clientTimeout)
	gen := generator.NewPostGenerator(llmClient, cfg.Posts.MaxLength, logger)

	fmt.Printf("Generating %d social media posts...\n", genCount)
	posts, omissions := gen.Generate(ctx, companyInfo, genCount, genTemperature, styles)

	if err := artifact.Save(genOutput, posts); err != nil {
		return err
	}

	fmt.Printf("\n%s Generated %d posts", okStyle.Render("✓"), len(posts))
	if len(omissions) > 0 {
		fmt.Printf(" %s", warnStyle.Render(fmt.Sprintf("(%d of %d failed)", len(omissions), genCount)))
	}
	fmt.Printf("\n%s Saved to %s\n", okStyle.Render("✓"), genOutput)

	for i, p := range posts {
		if i >= 3 {
			break
		}
		fmt.Printf("\n%s\n%s\n",
			headerStyle.Render(fmt.Sprintf("--- Post %d (%s) ---", i+1, p.Style)),
			clip(p.Text, 150))
	}
	return nil
}
