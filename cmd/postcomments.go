package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/truststack/socialmon/internal/artifact"
	"github.com/truststack/socialmon/internal/generator"
	"github.com/truststack/socialmon/internal/history"
	"github.com/truststack/socialmon/internal/logging"
	"github.com/truststack/socialmon/internal/mastodon"
	"github.com/truststack/socialmon/internal/publisher"
)

var postCommentsCmd = &cobra.Command{
	Use:   "post-comments",
	Short: "Publish generated article comments to Mastodon",
	RunE:  runPostComments,
}

var (
	pcFile    string
	pcIndex   int
	pcPreview bool
)

func init() {
	rootCmd.AddCommand(postCommentsCmd)
	postCommentsCmd.Flags().StringVarP(&pcFile, "file", "f", "output/comments.json", "Input file with comments")
	postCommentsCmd.Flags().IntVarP(&pcIndex, "index", "i", -1, "Comment index to publish (0-based)")
	postCommentsCmd.Flags().BoolVar(&pcPreview, "preview", false, "Preview without publishing")
}

func runPostComments(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	all, err := artifact.Load[artifact.Comment](pcFile)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s (run 'socialmon generate-comments' first)", pcFile)
		}
		return err
	}

	comments := all[:0:0]
	for _, c := range all {
		if c.Text != "" {
			comments = append(comments, c)
		}
	}
	if len(comments) == 0 {
		return fmt.Errorf("no comments found in %s", pcFile)
	}

	if pcIndex < 0 && !pcPreview {
		fmt.Println(headerStyle.Render("Available comments:"))
		for i, c := range comments {
			fmt.Printf("  %d. %s\n     %s %s\n", i, clip(c.Title, 60), labelStyle.Render("Source:"), c.FeedName)
		}
		return fmt.Errorf("specify --index")
	}

	indices := make([]int, 0, len(comments))
	if pcIndex >= 0 {
		if err := artifact.CheckIndex(pcIndex, len(comments)); err != nil {
			return err
		}
		indices = append(indices, pcIndex)
	} else {
		for i := range comments {
			indices = append(indices, i)
		}
	}

	client := mastodon.NewClient(cfg.MastodonBaseURL, cfg.MastodonAccessToken, clientTimeout)
	pub := publisher.New(client, pcPreview, logging.New(""))

	var hist *history.Store
	if !pcPreview {
		hist, err = history.Open(history.DefaultPath())
		if err != nil {
			return err
		}
		defer hist.Close()
	}

	for _, idx := range indices {
		c := comments[idx]
		content := generator.FormatForMastodon(c, cfg.Posts.MaxLength)

		if pcPreview {
			fmt.Printf("\n%s\n%s %s\n\n%s\n%s\n",
				headerStyle.Render(fmt.Sprintf("--- Preview Comment %d ---", idx)),
				labelStyle.Render("Article:"), valueStyle.Render(c.Title),
				content,
				labelStyle.Render(fmt.Sprintf("Length: %d chars", len(content))))
			continue
		}

		fmt.Printf("\nPublishing comment %d...\n", idx)
		result := pub.Publish(cmd.Context(), content)
		if !result.Success {
			fmt.Printf("%s Failed: %v\n", warnStyle.Render("✗"), result.Err)
			if len(indices) == 1 {
				return fmt.Errorf("failed to publish comment %d: %w", idx, result.Err)
			}
			continue
		}

		fmt.Printf("%s Published: %s\n", okStyle.Render("✓"), urlStyle.Render(result.RemoteURL))
		if err := hist.Record("comment", c.SourceHash, result.RemoteID, result.RemoteURL, time.Now().UTC()); err != nil {
			return err
		}
	}
	return nil
}
