package model

import "time"

// PlayerStats holds the per-player counters accumulated by folding report
// events one at a time.
type PlayerStats struct {
	DamageInflicted int
	DamageReceived  int
	Kills           int
	Deaths          int
	RoundsWon       int
	RoundsLost      int
	DamageByWeapon  map[Weapon]int
	TimeSpent       time.Duration
}

// NewPlayerStats returns a zero-valued accumulator.
func NewPlayerStats() *PlayerStats {
	return &PlayerStats{DamageByWeapon: make(map[Weapon]int)}
}

// TotalRounds is the number of scored rounds the player took part in.
func (s *PlayerStats) TotalRounds() int {
	return s.RoundsWon + s.RoundsLost
}

// WinRate is the fraction of scored rounds the player won, 0 if none.
func (s *PlayerStats) WinRate() float64 {
	rounds := s.TotalRounds()
	if rounds == 0 {
		return 0
	}
	return float64(s.RoundsWon) / float64(rounds)
}

// TimeSpentHours is the observed play time in hours.
func (s *PlayerStats) TimeSpentHours() float64 {
	return s.TimeSpent.Hours()
}

// MatchSummary is a lightweight record of a cached match, used by the list
// command and the report cache.
type MatchSummary struct {
	Hash      string
	FileName  string
	MapName   string
	StartTime time.Time
	EndTime   time.Time
	CTScore   int
	TScore    int
}
