package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/truststack/socialmon/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently published content",
	RunE:  runHistory,
}

var historyLimit int

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.Open(history.DefaultPath())
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(historyLimit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("Nothing published yet.")
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf(" %-18s  %-8s  %-10s  %s", "POSTED", "KIND", "REMOTE ID", "URL")))
	fmt.Println(strings.Repeat("─", 80))
	for _, e := range entries {
		fmt.Printf(" %-18s  %-8s  %-10s  %s\n",
			e.PostedAt.Format("2006-01-02 15:04"),
			e.Kind,
			e.RemoteID,
			urlStyle.Render(e.RemoteURL))
	}
	return nil
}
