package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/truststack/socialmon/internal/artifact"
	"github.com/truststack/socialmon/internal/generator"
	"github.com/truststack/socialmon/internal/llm"
	"github.com/truststack/socialmon/internal/logging"
	"github.com/truststack/socialmon/internal/notion"
)

var generateCommentsCmd = &cobra.Command{
	Use:   "generate-comments",
	Short: "Generate comments for fetched articles",
	RunE:  runGenerateComments,
}

var (
	commentFile        string
	commentOutput      string
	commentTemperature float64
)

func init() {
	rootCmd.AddCommand(generateCommentsCmd)
	generateCommentsCmd.Flags().StringVarP(&commentFile, "file", "f", "output/articles.json", "Input file with articles")
	generateCommentsCmd.Flags().StringVarP(&commentOutput, "output", "o", "output/comments.json", "Output file path")
	generateCommentsCmd.Flags().Float64VarP(&commentTemperature, "temperature", "t", 0.7, "Sampling temperature (0-2)")
}

func runGenerateComments(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if commentTemperature < 0 || commentTemperature > 2 {
		return fmt.Errorf("temperature must be in [0, 2], got %g", commentTemperature)
	}

	articles, err := artifact.Load[artifact.Article](commentFile)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s (run 'socialmon fetch-articles' first)", commentFile)
		}
		return err
	}

	logger := logging.New("")
	ctx := cmd.Context()

	// Company context is flavor for comments, not a hard requirement.
	notionClient := notion.NewClient(notion.DefaultBaseURL, cfg.NotionAPIKey, cfg.NotionPageID, clientTimeout)
	companyContext, err := notionClient.CompanySummary(ctx)
	if err != nil {
		logger.Warn("failed to fetch company context, using fallback", "error", err)
		companyContext = "TrustStack is an AI/ML company focused on e-commerce trust and safety."
	}

	llmClient := llm.NewClient(llm.DefaultBaseURL, cfg.OpenrouterAPIKey, cfg.OpenrouterModel, clientTimeout)
	gen := generator.NewCommentGenerator(llmClient, cfg.Comments.MaxLength, logger)

	fmt.Printf("Generating comments for %d articles...\n", len(articles))
	comments, omissions := gen.Generate(ctx, articles, companyContext, commentTemperature)

	if err := artifact.Save(commentOutput, comments); err != nil {
		return err
	}

	fmt.Printf("\n%s Generated %d comments", okStyle.Render("✓"), len(comments))
	if len(omissions) > 0 {
		fmt.Printf(" %s", warnStyle.Render(fmt.Sprintf("(%d of %d failed)", len(omissions), len(articles))))
	}
	fmt.Printf("\n%s Saved to %s\n", okStyle.Render("✓"), commentOutput)

	for i, c := range comments {
		if i >= 3 {
			break
		}
		fmt.Printf("\n%s\n", headerStyle.Render(fmt.Sprintf("--- Comment %d ---", i+1)))
		fmt.Printf("%s %s\n", labelStyle.Render("Article:"), valueStyle.Render(clip(c.Title, 70)))
		fmt.Printf("%s %s\n", labelStyle.Render("Comment:"), clip(c.Text, 100))
	}
	return nil
}
