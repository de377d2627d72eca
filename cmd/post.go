package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/truststack/socialmon/internal/artifact"
	"github.com/truststack/socialmon/internal/history"
	"github.com/truststack/socialmon/internal/logging"
	"github.com/truststack/socialmon/internal/mastodon"
	"github.com/truststack/socialmon/internal/publisher"
)

var postToMastodonCmd = &cobra.Command{
	Use:   "post-to-mastodon",
	Short: "Publish generated posts to Mastodon",
	RunE:  runPostToMastodon,
}

var (
	postFile    string
	postIndex   int
	postAll     bool
	postPreview bool
)

func init() {
	rootCmd.AddCommand(postToMastodonCmd)
	postToMastodonCmd.Flags().StringVarP(&postFile, "file", "f", "output/posts.json", "Input file with posts")
	postToMastodonCmd.Flags().IntVarP(&postIndex, "index", "i", -1, "Post index to publish (0-based)")
	postToMastodonCmd.Flags().BoolVar(&postAll, "all", false, "Publish every post in the file")
	postToMastodonCmd.Flags().BoolVar(&postPreview, "preview", false, "Preview without publishing")
}

func runPostToMastodon(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	posts, err := artifact.Load[artifact.Post](postFile)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s (run 'socialmon generate-posts' first)", postFile)
		}
		return err
	}

	var indices []int
	switch {
	case postIndex >= 0:
		if err := artifact.CheckIndex(postIndex, len(posts)); err != nil {
			return err
		}
		indices = []int{postIndex}
	case postAll || postPreview:
		// --preview without a selection previews everything
		for i := range posts {
			indices = append(indices, i)
		}
	default:
		listPosts(posts)
		return fmt.Errorf("specify --index or --all")
	}

	client := mastodon.NewClient(cfg.MastodonBaseURL, cfg.MastodonAccessToken, clientTimeout)
	pub := publisher.New(client, postPreview, logging.New(""))

	var hist *history.Store
	if !postPreview {
		hist, err = history.Open(history.DefaultPath())
		if err != nil {
			return err
		}
		defer hist.Close()
	}

	published, failed := 0, 0
	for _, idx := range indices {
		p := &posts[idx]

		if postPreview {
			fmt.Printf("\n%s\n%s\n%s\n",
				headerStyle.Render(fmt.Sprintf("--- Preview Post %d (%s) ---", idx, p.Style)),
				p.Text,
				labelStyle.Render(fmt.Sprintf("Length: %d chars", len(p.Text))))
			continue
		}

		fmt.Printf("\nPublishing post %d...\n", idx)
		result := pub.Publish(cmd.Context(), p.Text)
		if !result.Success {
			failed++
			fmt.Printf("%s Failed: %v\n", warnStyle.Render("✗"), result.Err)
			if len(indices) == 1 {
				return fmt.Errorf("failed to publish post %d: %w", idx, result.Err)
			}
			continue
		}

		published++
		now := time.Now().UTC()
		p.Posted = true
		p.PostedAt = &now
		p.RemoteURL = result.RemoteURL
		fmt.Printf("%s Published: %s\n", okStyle.Render("✓"), urlStyle.Render(result.RemoteURL))

		if err := hist.Record("post", artifact.Digest(p.Text), result.RemoteID, result.RemoteURL, now); err != nil {
			return err
		}
	}

	if postPreview {
		return nil
	}

	if err := artifact.Save(postFile, posts); err != nil {
		return err
	}
	fmt.Printf("\n%s Published %d, failed %d. Updated %s\n", okStyle.Render("✓"), published, failed, postFile)
	return nil
}

func listPosts(posts []artifact.Post) {
	fmt.Println(headerStyle.Render("Available posts:"))
	for i, p := range posts {
		status := "○ not posted"
		if p.Posted {
			status = okStyle.Render("✓ posted")
		}
		fmt.Printf("  %d. %s - %s (%d chars)\n", i, status, p.Style, len(p.Text))
	}
}
