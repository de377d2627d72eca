package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/truststack/socialmon/internal/mastodon"
)

var accountInfoCmd = &cobra.Command{
	Use:   "account-info",
	Short: "Display Mastodon account information",
	RunE:  runAccountInfo,
}

func init() {
	rootCmd.AddCommand(accountInfoCmd)
}

func runAccountInfo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := mastodon.NewClient(cfg.MastodonBaseURL, cfg.MastodonAccessToken, clientTimeout)
	account, err := client.VerifyCredentials(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch account info: %w", err)
	}

	fmt.Println(headerStyle.Render("Mastodon Account Information:"))
	fmt.Printf("  %s @%s\n", labelStyle.Render("Username:"), valueStyle.Render(account.Username))
	fmt.Printf("  %s %s\n", labelStyle.Render("Display Name:"), valueStyle.Render(account.DisplayName))
	fmt.Printf("  %s %d\n", labelStyle.Render("Followers:"), account.FollowersCount)
	fmt.Printf("  %s %d\n", labelStyle.Render("Following:"), account.FollowingCount)
	fmt.Printf("  %s %d\n", labelStyle.Render("Posts:"), account.StatusesCount)
	fmt.Printf("  %s %s\n", labelStyle.Render("URL:"), urlStyle.Render(account.URL))
	return nil
}
