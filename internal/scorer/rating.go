package scorer

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/Laski/counter-strike-docker/internal/aggregator"
	"github.com/Laski/counter-strike-docker/internal/glicko"
	"github.com/Laski/counter-strike-docker/internal/model"
)

// ratingScorer treats every kill as a pairwise contest won by the attacker
// and maintains a Glicko-2 rating per player. Unlike the stat scorers it
// replays the raw chronological kill sequence instead of aggregated
// counters.
type ratingScorer struct {
	minRounds int
}

// NewRating builds the Glicko-2 rating strategy. Reports must be supplied in
// chronological match order; matches with fewer than two closed rounds are
// skipped as warmups.
func NewRating(minRounds int) Strategy {
	return ratingScorer{minRounds: minRounds}
}

func (ratingScorer) StatName() string { return "Rating" }

func (ratingScorer) Explanation() string {
	return "Glicko-2 skill rating; each kill counts as a contest won by the attacker"
}

func (s ratingScorer) FullScores(reports []*model.MatchReport) map[uint64]FullScore {
	ratings := s.calculate(reports)
	table := aggregator.Collect(reports)

	scores := make(map[uint64]FullScore, len(ratings))
	for id, rating := range ratings {
		lo, hi := rating.Interval()
		confidence := 0.0
		if stats, ok := table.Lookup(id); ok && stats.TotalRounds() >= s.minRounds {
			confidence = 1
		}
		// Sorting by the interval's lower bound keeps a high but uncertain
		// rating from outranking a slightly lower, well-established one.
		scores[id] = FullScore{
			Value:      lo,
			Display:    fmt.Sprintf("[%.2f, %.2f]", lo, hi),
			Confidence: confidence,
		}
	}
	return scores
}

func (s ratingScorer) calculate(reports []*model.MatchReport) map[uint64]*glicko.Rating {
	ratings := make(map[uint64]*glicko.Rating)
	ratingFor := func(id uint64) *glicko.Rating {
		r, ok := ratings[id]
		if !ok {
			r = glicko.NewRating()
			ratings[id] = r
		}
		return r
	}

	for _, report := range reports {
		if len(report.RoundReports()) < 2 {
			log.Debugf("skipping match on %s with %d rounds", report.MapName(), len(report.RoundReports()))
			continue
		}
		for _, kill := range report.AllKills() {
			attacker := ratingFor(kill.Attacker.SteamID)
			victim := ratingFor(kill.Victim.SteamID)
			attacker.WinAgainst(victim)
		}
		// Players already rated who sat this match out become less certain.
		played := make(map[uint64]bool)
		for _, player := range report.AllPlayers() {
			played[player.SteamID] = true
		}
		for id, rating := range ratings {
			if !played[id] {
				rating.Decay()
			}
		}
	}
	return ratings
}
