package model

import "time"

// Event is one recognized log line. Events are never modified after the
// decoder constructs them; the replay state machine and the aggregators only
// read them.
type Event interface {
	Timestamp() time.Time
}

// Base carries the timestamp every event has, extracted from the log line
// preamble.
type Base struct {
	Time time.Time
}

func (b Base) Timestamp() time.Time { return b.Time }

// MapLoading announces the map the match is played on.
type MapLoading struct {
	Base
	MapName string
}

// RoundStart opens a new round.
type RoundStart struct {
	Base
}

// RoundEnd closes the current round. Round restarts count as round ends.
type RoundEnd struct {
	Base
}

// Attack is one instance of damage dealt from one player to another.
type Attack struct {
	Base
	Attacker    Player
	Victim      Player
	Weapon      Weapon
	Damage      int
	DamageArmor int
	Health      int
	Armor       int
}

// Kill is a frag. It also counts as an attack for classification purposes.
type Kill struct {
	Base
	Attacker Player
	Victim   Player
	Weapon   Weapon
}

// MatchStarted marks the beginning of the match proper.
type MatchStarted struct {
	Base
}

// MatchEnded marks the end of the match.
type MatchEnded struct {
	Base
}

// PlayerJoinedTeam moves a player to a team roster, effective from the next
// round start.
type PlayerJoinedTeam struct {
	Base
	Player Player
	Team   Team
}

// PlayerDisconnected removes a player from whatever roster they were on.
type PlayerDisconnected struct {
	Base
	Player Player
}

// TeamWin records which side won the current round.
type TeamWin struct {
	Base
	Team Team
}

// ServerNotice is server chatter, recognized only so the line is not reported
// as unparseable. It has no effect on any state.
type ServerNotice struct {
	Base
}

// IsAttack reports whether the event dealt damage. Kills classify as attacks.
func IsAttack(e Event) bool {
	switch e.(type) {
	case Attack, Kill:
		return true
	}
	return false
}

// IsKill reports whether the event is a frag.
func IsKill(e Event) bool {
	_, ok := e.(Kill)
	return ok
}

// AttackerOf returns the attacking player of an attack or kill event.
func AttackerOf(e Event) (Player, bool) {
	switch ev := e.(type) {
	case Attack:
		return ev.Attacker, true
	case Kill:
		return ev.Attacker, true
	}
	return Player{}, false
}
