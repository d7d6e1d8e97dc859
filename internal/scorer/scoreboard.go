package scorer

import (
	"sort"

	"github.com/Laski/counter-strike-docker/internal/model"
)

// Row holds one player's scores keyed by stat name.
type Row map[string]FullScore

// PlayerRow pairs a player with their scoreboard row.
type PlayerRow struct {
	Player model.Player
	Scores Row
}

// Scoreboard is the combined output of several strategies over the same set
// of match reports. Only players scored by every strategy appear; a strategy
// leaving a player out acts as a veto.
type Scoreboard struct {
	statNames []string
	rows      []PlayerRow
}

// BuildScoreboard runs every strategy over the reports and assembles the
// per-player table.
func BuildScoreboard(reports []*model.MatchReport, strategies []Strategy) *Scoreboard {
	names := nameIndex(reports)

	rows := make(map[uint64]Row)
	statNames := make([]string, 0, len(strategies))
	for _, strategy := range strategies {
		statNames = append(statNames, strategy.StatName())
		for id, score := range strategy.FullScores(reports) {
			if rows[id] == nil {
				rows[id] = make(Row, len(strategies))
			}
			rows[id][strategy.StatName()] = score
		}
	}

	board := &Scoreboard{statNames: statNames}
	for id, row := range rows {
		if len(row) != len(strategies) {
			continue
		}
		board.rows = append(board.rows, PlayerRow{
			Player: model.Player{Nickname: names[id], SteamID: id},
			Scores: row,
		})
	}
	if len(statNames) > 0 {
		lead := statNames[0]
		sort.SliceStable(board.rows, func(i, j int) bool {
			return board.rows[i].Scores[lead].Value > board.rows[j].Scores[lead].Value
		})
	}
	return board
}

// StatNames returns the column names in strategy order.
func (s *Scoreboard) StatNames() []string { return s.statNames }

// Rows returns the table sorted by the first strategy's value, best first.
func (s *Scoreboard) Rows() []PlayerRow { return s.rows }

// Row returns the scoreboard row for a player, if present.
func (s *Scoreboard) Row(player model.Player) (Row, bool) {
	for _, row := range s.rows {
		if row.Player.Equal(player) {
			return row.Scores, true
		}
	}
	return nil, false
}
