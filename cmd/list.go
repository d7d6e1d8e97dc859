package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Laski/counter-strike-docker/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all cached match reports",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open report cache: %w", err)
	}
	defer db.Close()

	matches, err := db.ListMatches()
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches cached yet. Run 'csstats rank <logs-dir>' to add some.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-14s  %-20s  %-12s  %-19s  %s\n",
		"HASH", "FILE", "MAP", "START", "SCORE")
	for _, m := range matches {
		score := fmt.Sprintf("%d-%d", m.CTScore, m.TScore)
		fmt.Fprintf(os.Stdout, "%-14s  %-20s  %-12s  %-19s  %s\n",
			m.Hash[:12], m.FileName, m.MapName, m.StartTime.Format("2006-01-02 15:04:05"), score)
	}
	return nil
}
