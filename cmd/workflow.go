package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fullWorkflowCmd = &cobra.Command{
	Use:   "full-workflow",
	Short: "Run the complete automation workflow",
	Long:  `Generates posts, optionally publishes the first one, fetches articles, and generates comments.`,
	RunE:  runFullWorkflow,
}

var (
	wfPostCount    int
	wfArticleCount int
	wfPublish      bool
)

func init() {
	rootCmd.AddCommand(fullWorkflowCmd)
	fullWorkflowCmd.Flags().IntVar(&wfPostCount, "post-count", 3, "Number of posts to generate")
	fullWorkflowCmd.Flags().IntVar(&wfArticleCount, "article-count", 5, "Number of articles to fetch")
	fullWorkflowCmd.Flags().BoolVar(&wfPublish, "post-to-mastodon", false, "Publish the first post (default: generate only)")
}

// runFullWorkflow chains the individual commands by setting their flag
// variables and invoking their runners in order.
func runFullWorkflow(cmd *cobra.Command, args []string) error {
	fmt.Println(headerStyle.Render("Full workflow"))

	fmt.Println("\n[Step 1/4] Generating social media posts...")
	genCount = wfPostCount
	genOutput = "output/posts.json"
	if err := runGeneratePosts(cmd, nil); err != nil {
		return err
	}

	if wfPublish {
		fmt.Println("\n[Step 2/4] Publishing first post to Mastodon...")
		postFile = "output/posts.json"
		postIndex = 0
		postAll = false
		postPreview = false
		if err := runPostToMastodon(cmd, nil); err != nil {
			return err
		}
	} else {
		fmt.Println("\n[Step 2/4] Skipping Mastodon publishing (use --post-to-mastodon to enable)")
	}

	fmt.Println("\n[Step 3/4] Fetching top articles...")
	articleCount = wfArticleCount
	articleOutput = "output/articles.json"
	if err := runFetchArticles(cmd, nil); err != nil {
		return err
	}

	fmt.Println("\n[Step 4/4] Generating comments...")
	commentFile = "output/articles.json"
	commentOutput = "output/comments.json"
	if err := runGenerateComments(cmd, nil); err != nil {
		return err
	}

	fmt.Printf("\n%s Workflow complete\n", okStyle.Render("✓"))
	fmt.Println("\nGenerated files:")
	fmt.Println("  - output/posts.json")
	fmt.Println("  - output/articles.json")
	fmt.Println("  - output/comments.json")
	return nil
}
