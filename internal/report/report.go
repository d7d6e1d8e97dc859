// Package report renders match stats and scoreboards as text tables.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/Laski/counter-strike-docker/internal/aggregator"
	"github.com/Laski/counter-strike-docker/internal/model"
	"github.com/Laski/counter-strike-docker/internal/scorer"
)

const timeLayout = "2006-01-02 15:04:05"

// PrintMatchOverview prints a one-line summary header for the match.
func PrintMatchOverview(w io.Writer, m *model.MatchReport) {
	fmt.Fprintf(w, "\nMap: %s  |  %s – %s  |  Score: CT %d – T %d  |  Rounds: %d\n\n",
		m.MapName(),
		m.StartTime().Format(timeLayout), m.EndTime().Format(timeLayout),
		m.TeamScore(model.TeamCT), m.TeamScore(model.TeamTerrorist),
		len(m.RoundReports()))
}

// PrintMatchStats prints the per-player stats table for one match, sorted by
// classic score (kills minus deaths).
func PrintMatchStats(w io.Writer, m *model.MatchReport) {
	table := newTable(w)
	table.Header("NAME", "STEAM_ID", "K", "D", "K-D", "DMG", "DMG_RECV", "W", "L")

	players := m.AllPlayers()
	stats := make(map[uint64]*model.PlayerStats, len(players))
	for _, p := range players {
		stats[p.SteamID] = aggregator.MatchStats(m, p)
	}
	sort.SliceStable(players, func(i, j int) bool {
		a, b := stats[players[i].SteamID], stats[players[j].SteamID]
		return a.Kills-a.Deaths > b.Kills-b.Deaths
	})

	for _, p := range players {
		s := stats[p.SteamID]
		table.Append(
			p.Nickname,
			strconv.FormatUint(p.SteamID, 10),
			strconv.Itoa(s.Kills),
			strconv.Itoa(s.Deaths),
			strconv.Itoa(s.Kills-s.Deaths),
			strconv.Itoa(s.DamageInflicted),
			strconv.Itoa(s.DamageReceived),
			strconv.Itoa(s.RoundsWon),
			strconv.Itoa(s.RoundsLost),
		)
	}
	table.Render()
}

// PrintScoreboard prints the multi-strategy scoreboard, one column per stat.
func PrintScoreboard(w io.Writer, board *scorer.Scoreboard) {
	table := newTable(w)

	header := append([]string{"NAME"}, board.StatNames()...)
	headerCells := make([]any, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	table.Header(headerCells...)

	for _, row := range board.Rows() {
		cells := make([]any, 0, len(header))
		cells = append(cells, row.Player.Nickname)
		for _, stat := range board.StatNames() {
			cells = append(cells, row.Scores[stat].Display)
		}
		table.Append(cells...)
	}
	table.Render()
}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}
