package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrEventNotFound is returned when a report is asked for an event that does
// not exist in the data, e.g. the first kill of a match with no kills.
var ErrEventNotFound = errors.New("event not found")

// RoundReport is the frozen record of one finished round. It is built by the
// replay state machine when the round closes and never mutated afterwards.
type RoundReport struct {
	startTime   time.Time
	endTime     time.Time
	events      []Event
	composition map[Team][]Player
	winner      Team
}

// NewRoundReport freezes the given round data. Start and end times derive
// from the first and last recorded event. The composition is the roster
// snapshot taken at round start; only CT and TERRORIST entries are kept.
// A winner of TeamUnknown means no side won the round.
func NewRoundReport(events []Event, composition map[Team][]Player, winner Team) RoundReport {
	r := RoundReport{
		events:      append([]Event(nil), events...),
		composition: make(map[Team][]Player, len(PlayingTeams)),
		winner:      winner,
	}
	for _, team := range PlayingTeams {
		r.composition[team] = append([]Player(nil), composition[team]...)
	}
	if len(r.events) > 0 {
		r.startTime = r.events[0].Timestamp()
		r.endTime = r.events[len(r.events)-1].Timestamp()
	}
	return r
}

func (r RoundReport) StartTime() time.Time { return r.startTime }
func (r RoundReport) EndTime() time.Time   { return r.endTime }

// Duration is the wall-clock span of the round.
func (r RoundReport) Duration() time.Duration { return r.endTime.Sub(r.startTime) }

// Events returns the recorded round events in chronological order. Callers
// must not modify the returned slice.
func (r RoundReport) Events() []Event { return r.events }

// Composition returns the roster snapshot for a playing team.
func (r RoundReport) Composition(team Team) []Player { return r.composition[team] }

func (r RoundReport) CTComposition() []Player        { return r.composition[TeamCT] }
func (r RoundReport) TerroristComposition() []Player { return r.composition[TeamTerrorist] }

// AllPlayers returns every player on a playing roster. Spectators are never
// part of a round report.
func (r RoundReport) AllPlayers() []Player {
	players := make([]Player, 0, len(r.composition[TeamCT])+len(r.composition[TeamTerrorist]))
	players = append(players, r.composition[TeamCT]...)
	players = append(players, r.composition[TeamTerrorist]...)
	return players
}

// Winner returns the winning team, if any side won the round.
func (r RoundReport) Winner() (Team, bool) {
	return r.winner, r.winner == TeamCT || r.winner == TeamTerrorist
}

// MatchReport is the immutable result of replaying one full log file. It is
// only constructed once the underlying match has ended.
type MatchReport struct {
	mapName     string
	matchEvents []Event
	rounds      []RoundReport
}

// NewMatchReport freezes the match-level event log and the already-frozen
// round reports into a match report.
func NewMatchReport(mapName string, matchEvents []Event, rounds []RoundReport) *MatchReport {
	return &MatchReport{
		mapName:     mapName,
		matchEvents: append([]Event(nil), matchEvents...),
		rounds:      append([]RoundReport(nil), rounds...),
	}
}

func (m *MatchReport) MapName() string { return m.mapName }

// MatchEvents returns the match-scoped events (map loads, team joins, match
// boundaries). Round-scoped events live in the round reports.
func (m *MatchReport) MatchEvents() []Event { return m.matchEvents }

// RoundReports returns the finished rounds in chronological order.
func (m *MatchReport) RoundReports() []RoundReport { return m.rounds }

// StartTime is the timestamp of the first match-level event.
func (m *MatchReport) StartTime() time.Time {
	if len(m.matchEvents) == 0 {
		return time.Time{}
	}
	return m.matchEvents[0].Timestamp()
}

// EndTime is the timestamp of the last match-level event.
func (m *MatchReport) EndTime() time.Time {
	if len(m.matchEvents) == 0 {
		return time.Time{}
	}
	return m.matchEvents[len(m.matchEvents)-1].Timestamp()
}

// FirstAttack returns the first damage-dealing event of the match.
func (m *MatchReport) FirstAttack() (Event, error) {
	for _, ev := range m.allRoundEvents() {
		if IsAttack(ev) {
			return ev, nil
		}
	}
	return nil, fmt.Errorf("no attacks recorded in this match: %w", ErrEventNotFound)
}

// FirstKill returns the first frag of the match.
func (m *MatchReport) FirstKill() (Event, error) {
	for _, ev := range m.allRoundEvents() {
		if IsKill(ev) {
			return ev, nil
		}
	}
	return nil, fmt.Errorf("no kills recorded in this match: %w", ErrEventNotFound)
}

// AllKills returns every kill of the match in chronological order.
func (m *MatchReport) AllKills() []Kill {
	var kills []Kill
	for _, ev := range m.allRoundEvents() {
		if kill, ok := ev.(Kill); ok {
			kills = append(kills, kill)
		}
	}
	return kills
}

// Scores counts the rounds won by each playing team.
func (m *MatchReport) Scores() map[Team]int {
	scores := map[Team]int{TeamCT: 0, TeamTerrorist: 0}
	for _, round := range m.rounds {
		if winner, ok := round.Winner(); ok {
			scores[winner]++
		}
	}
	return scores
}

func (m *MatchReport) TeamScore(team Team) int {
	return m.Scores()[team]
}

// AllPlayers returns every player that appeared on a playing roster in any
// round, deduplicated by steam ID in order of first appearance.
func (m *MatchReport) AllPlayers() []Player {
	seen := make(map[uint64]bool)
	var players []Player
	for _, round := range m.rounds {
		for _, p := range round.AllPlayers() {
			if !seen[p.SteamID] {
				seen[p.SteamID] = true
				players = append(players, p)
			}
		}
	}
	return players
}

// HasPlayer reports whether the player took part in any round of the match.
func (m *MatchReport) HasPlayer(player Player) bool {
	for _, p := range m.AllPlayers() {
		if p.Equal(player) {
			return true
		}
	}
	return false
}

func (m *MatchReport) allRoundEvents() []Event {
	var events []Event
	for _, round := range m.rounds {
		events = append(events, round.Events()...)
	}
	return events
}
