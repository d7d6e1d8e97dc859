package model

// Team represents which side a player is on.
type Team int

const (
	TeamUnknown Team = iota
	TeamSpectator
	TeamTerrorist
	TeamCT
)

func (t Team) String() string {
	switch t {
	case TeamCT:
		return "CT"
	case TeamTerrorist:
		return "TERRORIST"
	case TeamSpectator:
		return "SPECTATOR"
	default:
		return "?"
	}
}

// ParseTeam maps a team name as it appears in log lines to a Team.
func ParseTeam(name string) (Team, bool) {
	switch name {
	case "CT":
		return TeamCT, true
	case "TERRORIST":
		return TeamTerrorist, true
	case "SPECTATOR":
		return TeamSpectator, true
	}
	return TeamUnknown, false
}

// PlayingTeams are the sides that take part in scored rounds.
var PlayingTeams = [2]Team{TeamCT, TeamTerrorist}

// Player is a participant of a match. The steam ID is the durable identity;
// the nickname is a display label that may change between appearances.
type Player struct {
	Nickname string
	SteamID  uint64
}

// Equal reports whether two captures denote the same player, ignoring the
// nickname.
func (p Player) Equal(other Player) bool {
	return p.SteamID == other.SteamID
}

func (p Player) String() string {
	return p.Nickname
}

// Weapon is identified by its log name, e.g. "ak47".
type Weapon string
