package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Laski/counter-strike-docker/internal/parser"
	"github.com/Laski/counter-strike-docker/internal/report"
)

var parseCmd = &cobra.Command{
	Use:   "parse <match.log>",
	Short: "Parse one server log and print the match stats",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	logPath := args[0]

	p, err := parser.FromFile(logPath)
	if err != nil {
		return err
	}
	matchReport, err := p.MatchReport()
	if err != nil {
		return fmt.Errorf("parse %s: %w", logPath, err)
	}

	report.PrintMatchOverview(os.Stdout, matchReport)
	report.PrintMatchStats(os.Stdout, matchReport)
	return nil
}
