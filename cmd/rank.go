package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Laski/counter-strike-docker/internal/parser"
	"github.com/Laski/counter-strike-docker/internal/report"
	"github.com/Laski/counter-strike-docker/internal/scorer"
	"github.com/Laski/counter-strike-docker/internal/storage"
)

var rankMinRounds int

var rankCmd = &cobra.Command{
	Use:   "rank <logs-dir>",
	Short: "Score every player across a directory of match logs",
	Args:  cobra.ExactArgs(1),
	RunE:  runRank,
}

func init() {
	rankCmd.Flags().IntVar(&rankMinRounds, "min-rounds", 10, "drop players with fewer scored rounds")
}

func runRank(cmd *cobra.Command, args []string) error {
	logsDir := args[0]

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open report cache: %w", err)
	}
	defer db.Close()

	reports, err := parser.NewDirectory(logsDir, db).MatchReports()
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		fmt.Fprintf(os.Stdout, "No .log files found in %s.\n", logsDir)
		return nil
	}

	strategies := []scorer.Strategy{
		scorer.NewRating(rankMinRounds),
		scorer.NewDefault(),
		scorer.NewWinRate(rankMinRounds),
		scorer.NewKills(),
		scorer.NewDeaths(),
		scorer.NewTotalRounds(),
		scorer.NewTimeSpent(),
	}
	board := scorer.BuildScoreboard(reports, strategies)

	fmt.Fprintf(os.Stdout, "\n%d matches, %d ranked players\n\n", len(reports), len(board.Rows()))
	report.PrintScoreboard(os.Stdout, board)
	return nil
}
