package parser

import "regexp"

// Log line patterns for the HL engine text log format. Event patterns are
// tried in the order of the decode table below; they are structurally
// disjoint except for the catch-all server pattern, which goes last.
var (
	// Every recognized line starts with `L MM/DD/YYYY - HH:MM:SS:`.
	rxTimestamp = regexp.MustCompile(`L (\d{2}/\d{2}/\d{4} - \d{2}:\d{2}:\d{2}):`)

	// Entity sub-patterns, used to type captured groups.
	// Player capture, e.g. `Name<382><STEAM_0:1:22649331><CT>`. The steam ID
	// is the identity key; nickname and issued ID are display-only.
	rxPlayer = regexp.MustCompile(`(?P<nickname>.*)<\d+><STEAM_0:[0-1]:(?P<steam_id>\d+)><[A-Z]*>`)
	rxWeapon = regexp.MustCompile(`with "(?P<name>\w+)"`)
	rxTeam   = regexp.MustCompile(`[Tt]eam "(?P<name>CT|TERRORIST|SPECTATOR)"`)

	// Event patterns.
	rxMapLoading = regexp.MustCompile(`Loading map "(?P<map_name>.*)"`)
	rxRoundStart = regexp.MustCompile(`World triggered "Round_Start"`)
	rxRoundEnd   = regexp.MustCompile(`World triggered "Round_End"|World triggered "Restart_Round_`)
	rxAttack     = regexp.MustCompile(`"(?P<attacker>.+)" attacked "(?P<victim>.+)" (?P<weapon>with "\w+")` +
		` \(damage "(?P<damage>\d+)"\) \(damage_armor "(?P<damage_armor>\d+)"\)` +
		` \(health "(?P<health>-?\d+)"\) \(armor "(?P<armor>-?\d+)"\)`)
	rxKill         = regexp.MustCompile(`"(?P<attacker>.+)" killed "(?P<victim>.+)" (?P<weapon>with "\w+")`)
	rxMatchStarted = regexp.MustCompile(`World triggered "Game_Commencing"`)
	rxMatchEnded   = regexp.MustCompile(`Team "CT" scored|Log file closed`)
	rxJoinedTeam   = regexp.MustCompile(`"(?P<player>.+)" joined (?P<team>team "[A-Z]+")`)
	rxDisconnected = regexp.MustCompile(`"(?P<player>.+)" disconnected`)
	rxTeamWin      = regexp.MustCompile(`(?P<team>Team "[A-Z]+") triggered "\w+_Win"`)
	rxServer       = regexp.MustCompile(`Server`)
)

// captures runs the pattern against the line and returns the named capture
// groups, or nil if the pattern does not match.
func captures(rx *regexp.Regexp, line string) map[string]string {
	match := rx.FindStringSubmatch(line)
	if match == nil {
		return nil
	}
	caps := make(map[string]string)
	for i, name := range rx.SubexpNames() {
		if name != "" {
			caps[name] = match[i]
		}
	}
	return caps
}
