// Package scorer turns collections of match reports into per-player scores.
// Each strategy produces a value, a display string and a confidence; the
// scoreboard combines several strategies into one table.
package scorer

import (
	"fmt"
	"math"
	"sort"

	"github.com/Laski/counter-strike-docker/internal/aggregator"
	"github.com/Laski/counter-strike-docker/internal/model"
)

// FullScore is one player's result under one strategy.
type FullScore struct {
	// Value is the numeric score, used for sorting.
	Value float64
	// Display is the human-readable rendering of the score.
	Display string
	// Confidence is a [0,1] measure of how trustworthy the score is,
	// typically driven by sample size.
	Confidence float64
}

// Strategy assigns scores to players given some criterion.
type Strategy interface {
	StatName() string
	Explanation() string
	FullScores(reports []*model.MatchReport) map[uint64]FullScore
}

// statScorer derives a score from aggregated player stats. Players below the
// round threshold get confidence 0 and are dropped by the scoreboard's
// consensus filter.
type statScorer struct {
	name        string
	explanation string
	minRounds   int
	value       func(*model.PlayerStats) float64
	display     func(float64) string
}

func (s statScorer) StatName() string    { return s.name }
func (s statScorer) Explanation() string { return s.explanation }

func (s statScorer) FullScores(reports []*model.MatchReport) map[uint64]FullScore {
	table := aggregator.Collect(reports)
	scores := make(map[uint64]FullScore, table.Len())
	for _, player := range table.Players() {
		stats, _ := table.Lookup(player.SteamID)
		value := s.value(stats)
		confidence := 1.0
		if stats.TotalRounds() < s.minRounds {
			confidence = 0
		}
		scores[player.SteamID] = FullScore{
			Value:      value,
			Display:    s.display(value),
			Confidence: confidence,
		}
	}
	return scores
}

func displayInt(v float64) string {
	return fmt.Sprintf("%.0f", v)
}

// NewDefault scores with the classic scoreboard formula: kills minus deaths.
func NewDefault() Strategy {
	return statScorer{
		name:        "Score",
		explanation: "kills - deaths",
		value: func(s *model.PlayerStats) float64 {
			return float64(s.Kills - s.Deaths)
		},
		display: displayInt,
	}
}

// NewWinRate scores with the percentage of scored rounds the player won.
// Ratios on tiny samples mislead, so a minimum-rounds filter is usual.
func NewWinRate(minRounds int) Strategy {
	return statScorer{
		name:        "Win rate",
		explanation: "percentage of played rounds won",
		minRounds:   minRounds,
		value: func(s *model.PlayerStats) float64 {
			return s.WinRate()
		},
		display: func(v float64) string {
			return fmt.Sprintf("%.2f%%", v*100)
		},
	}
}

// NewKills scores with the raw kill count.
func NewKills() Strategy {
	return statScorer{
		name:        "Kills",
		explanation: "total kills",
		value:       func(s *model.PlayerStats) float64 { return float64(s.Kills) },
		display:     displayInt,
	}
}

// NewDeaths scores with the raw death count.
func NewDeaths() Strategy {
	return statScorer{
		name:        "Deaths",
		explanation: "total deaths",
		value:       func(s *model.PlayerStats) float64 { return float64(s.Deaths) },
		display:     displayInt,
	}
}

// NewTotalRounds scores with the number of scored rounds played.
func NewTotalRounds() Strategy {
	return statScorer{
		name:        "Total rounds",
		explanation: "scored rounds the player took part in",
		value:       func(s *model.PlayerStats) float64 { return float64(s.TotalRounds()) },
		display:     displayInt,
	}
}

// NewTimeSpent scores with the hours the player was observed in play.
func NewTimeSpent() Strategy {
	return statScorer{
		name:        "Time spent",
		explanation: "hours observed in play",
		value:       func(s *model.PlayerStats) float64 { return s.TimeSpentHours() },
		display:     displayHours,
	}
}

func displayHours(hours float64) string {
	total := int(math.Round(hours * 3600))
	h := total / 3600
	m := total % 3600 / 60
	s := total % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// PlayerScore pairs a player with their score under one strategy.
type PlayerScore struct {
	Player model.Player
	Score  FullScore
}

// SortedScores ranks every scored player, best first.
func SortedScores(reports []*model.MatchReport, strategy Strategy) []PlayerScore {
	names := nameIndex(reports)
	scores := strategy.FullScores(reports)
	ranked := make([]PlayerScore, 0, len(scores))
	for id, score := range scores {
		ranked = append(ranked, PlayerScore{
			Player: model.Player{Nickname: names[id], SteamID: id},
			Score:  score,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Value > ranked[j].Score.Value
	})
	return ranked
}

// BestPlayer returns the top-ranked player under the strategy.
func BestPlayer(reports []*model.MatchReport, strategy Strategy) (PlayerScore, error) {
	ranked := SortedScores(reports, strategy)
	if len(ranked) == 0 {
		return PlayerScore{}, fmt.Errorf("no players to score")
	}
	return ranked[0], nil
}

// nameIndex maps steam IDs to the latest nickname observed anywhere in the
// reports, including kill events for players that never made a roster.
func nameIndex(reports []*model.MatchReport) map[uint64]string {
	names := make(map[uint64]string)
	for _, report := range reports {
		for _, kill := range report.AllKills() {
			names[kill.Attacker.SteamID] = kill.Attacker.Nickname
			names[kill.Victim.SteamID] = kill.Victim.Nickname
		}
		for _, player := range report.AllPlayers() {
			names[player.SteamID] = player.Nickname
		}
	}
	return names
}
