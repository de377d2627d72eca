package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/truststack/socialmon/internal/artifact"
	"github.com/truststack/socialmon/internal/generator"
	"github.com/truststack/socialmon/internal/history"
	"github.com/truststack/socialmon/internal/llm"
	"github.com/truststack/socialmon/internal/logging"
	"github.com/truststack/socialmon/internal/mastodon"
	"github.com/truststack/socialmon/internal/notion"
)

var searchAndReplyCmd = &cobra.Command{
	Use:   "search-and-reply",
	Short: "Find relevant Mastodon posts and draft replies",
	Long:  `Searches Mastodon for posts matching a keyword, decides which deserve a reply, and drafts the replies with the LLM gateway.`,
	RunE:  runSearchAndReply,
}

var (
	replyKeyword string
	replyCount   int
	replyOutput  string
	postReplies  bool
)

// defaultReplyKeyword is used when no keyword is given.
const defaultReplyKeyword = "ecommerce fraud"

func init() {
	rootCmd.AddCommand(searchAndReplyCmd)
	searchAndReplyCmd.Flags().StringVarP(&replyKeyword, "keyword", "k", "", "Keyword to search for")
	searchAndReplyCmd.Flags().IntVarP(&replyCount, "count", "c", 5, "Number of posts to find")
	searchAndReplyCmd.Flags().StringVarP(&replyOutput, "output", "o", "output/replies.json", "Output file path")
	searchAndReplyCmd.Flags().BoolVar(&postReplies, "post-replies", false, "Publish the drafted replies")
}

func runSearchAndReply(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	keyword := replyKeyword
	if keyword == "" {
		keyword = defaultReplyKeyword
		fmt.Printf("Using default keyword: %s\n", keyword)
	}

	logger := logging.New("")
	ctx := cmd.Context()

	client := mastodon.NewClient(cfg.MastodonBaseURL, cfg.MastodonAccessToken, clientTimeout)

	// Own account id filters our own statuses out of the results.
	account, err := client.VerifyCredentials(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify credentials: %w", err)
	}

	fmt.Printf("Searching Mastodon for %q...\n", keyword)
	statuses, err := client.Search(ctx, keyword, replyCount, account.ID)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(statuses) == 0 {
		fmt.Println("No relevant posts found. Try a different keyword.")
		return nil
	}
	fmt.Printf("%s Found %d posts\n", okStyle.Render("✓"), len(statuses))

	notionClient := notion.NewClient(notion.DefaultBaseURL, cfg.NotionAPIKey, cfg.NotionPageID, clientTimeout)
	companyContext, err := notionClient.CompanySummary(ctx)
	if err != nil {
		logger.Warn("failed to fetch company context, using fallback", "error", err)
		companyContext = "TrustStack is an AI/ML company focused on e-commerce trust and safety."
	}

	llmClient := llm.NewClient(llm.DefaultBaseURL, cfg.OpenrouterAPIKey, cfg.OpenrouterModel, clientTimeout)
	gen := generator.NewReplyGenerator(llmClient, cfg.Posts.MaxLength, logger)

	replies, err := gen.GenerateBatch(ctx, statuses, companyContext, 0.7)
	if err != nil {
		return err
	}

	if err := artifact.Save(replyOutput, replies); err != nil {
		return err
	}
	fmt.Printf("%s Saved replies to %s\n", okStyle.Render("✓"), replyOutput)

	var toPost []artifact.Reply
	for i, r := range replies {
		fmt.Printf("\n%s\n", headerStyle.Render(fmt.Sprintf("--- Post %d ---", i+1)))
		fmt.Printf("%s @%s\n", labelStyle.Render("Author:"), valueStyle.Render(r.Author))
		fmt.Printf("%s %s\n", labelStyle.Render("Original:"), clip(r.StatusText, 80))
		if r.ShouldReply {
			fmt.Printf("%s %s\n", okStyle.Render("Reply:"), r.Text)
			toPost = append(toPost, r)
		} else {
			fmt.Printf("%s %s\n", warnStyle.Render("Skipped:"), r.Reason)
		}
	}

	if !postReplies {
		if len(toPost) > 0 {
			fmt.Println("\nRun with --post-replies to publish these replies.")
		}
		return nil
	}
	if len(toPost) == 0 {
		fmt.Println("\nNo relevant posts to reply to.")
		return nil
	}

	hist, err := history.Open(history.DefaultPath())
	if err != nil {
		return err
	}
	defer hist.Close()

	fmt.Printf("\nPublishing %d replies...\n", len(toPost))
	for i, r := range toPost {
		status, err := client.Reply(ctx, r.StatusID, r.Text)
		if err != nil {
			fmt.Printf("%s Reply to @%s failed: %v\n", warnStyle.Render("✗"), r.Author, err)
			continue
		}
		fmt.Printf("%s Replied to @%s: %s\n", okStyle.Render("✓"), r.Author, urlStyle.Render(status.URL))
		if err := hist.Record("reply", artifact.Digest(r.Text), status.ID, status.URL, time.Now().UTC()); err != nil {
			return err
		}
		// Brief pause between replies.
		if i < len(toPost)-1 {
			time.Sleep(2 * time.Second)
		}
	}
	return nil
}
