// Package aggregator folds report events into per-player counters. A round
// fold visits every recorded event once and applies its effect to the
// accumulator of a single player; match and multi-match aggregation are sums
// of round folds.
package aggregator

import "github.com/Laski/counter-strike-docker/internal/model"

// AddRound folds one round into the player's accumulator. Events that do not
// involve the player contribute nothing; a player absent from both rosters
// ends up with zero-valued stats.
func AddRound(round model.RoundReport, player model.Player, stats *model.PlayerStats) {
	for _, ev := range round.Events() {
		applyEvent(ev, round, player, stats)
	}
	if containsPlayer(round.AllPlayers(), player) {
		stats.TimeSpent += round.Duration()
	}
}

// applyEvent is the single place where an event kind maps to its stats
// effect.
func applyEvent(ev model.Event, round model.RoundReport, player model.Player, stats *model.PlayerStats) {
	switch e := ev.(type) {
	case model.Attack:
		if e.Attacker.Equal(player) {
			stats.DamageInflicted += e.Damage
			stats.DamageByWeapon[e.Weapon] += e.Damage
		}
		if e.Victim.Equal(player) {
			stats.DamageReceived += e.Damage
		}

	case model.Kill:
		if e.Attacker.Equal(player) {
			stats.Kills++
		}
		if e.Victim.Equal(player) {
			stats.Deaths++
		}

	case model.TeamWin:
		if containsPlayer(round.Composition(e.Team), player) {
			stats.RoundsWon++
		} else if containsPlayer(round.AllPlayers(), player) {
			stats.RoundsLost++
		}
	}
}

// RoundStats folds one round into a fresh accumulator.
func RoundStats(round model.RoundReport, player model.Player) *model.PlayerStats {
	stats := model.NewPlayerStats()
	AddRound(round, player, stats)
	return stats
}

// AddMatch folds every round of the match into the player's accumulator.
func AddMatch(report *model.MatchReport, player model.Player, stats *model.PlayerStats) {
	for _, round := range report.RoundReports() {
		AddRound(round, player, stats)
	}
}

// MatchStats folds a whole match into a fresh accumulator.
func MatchStats(report *model.MatchReport, player model.Player) *model.PlayerStats {
	stats := model.NewPlayerStats()
	AddMatch(report, player, stats)
	return stats
}

func containsPlayer(players []model.Player, player model.Player) bool {
	for _, p := range players {
		if p.Equal(player) {
			return true
		}
	}
	return false
}
