package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Laski/counter-strike-docker/internal/model"
)

// The cache serializes the report tree as a JSON document with one tagged
// object per event. Kinds mirror the event types one to one.
const (
	kindMapLoading         = "map_loading"
	kindRoundStart         = "round_start"
	kindRoundEnd           = "round_end"
	kindAttack             = "attack"
	kindKill               = "kill"
	kindMatchStarted       = "match_started"
	kindMatchEnded         = "match_ended"
	kindPlayerJoinedTeam   = "player_joined_team"
	kindPlayerDisconnected = "player_disconnected"
	kindTeamWin            = "team_win"
	kindServerNotice       = "server_notice"
)

type playerDoc struct {
	Nickname string `json:"nickname"`
	SteamID  uint64 `json:"steam_id"`
}

type eventDoc struct {
	Kind        string     `json:"kind"`
	Time        time.Time  `json:"time"`
	MapName     string     `json:"map_name,omitempty"`
	Attacker    *playerDoc `json:"attacker,omitempty"`
	Victim      *playerDoc `json:"victim,omitempty"`
	Player      *playerDoc `json:"player,omitempty"`
	Weapon      string     `json:"weapon,omitempty"`
	Damage      int        `json:"damage,omitempty"`
	DamageArmor int        `json:"damage_armor,omitempty"`
	Health      int        `json:"health,omitempty"`
	Armor       int        `json:"armor,omitempty"`
	Team        string     `json:"team,omitempty"`
}

type roundDoc struct {
	Events     []eventDoc  `json:"events"`
	CT         []playerDoc `json:"ct"`
	Terrorists []playerDoc `json:"terrorists"`
	Winner     string      `json:"winner,omitempty"`
}

type matchDoc struct {
	MapName     string     `json:"map_name"`
	MatchEvents []eventDoc `json:"match_events"`
	Rounds      []roundDoc `json:"rounds"`
}

func encodeReport(report *model.MatchReport) ([]byte, error) {
	doc := matchDoc{MapName: report.MapName()}
	for _, ev := range report.MatchEvents() {
		doc.MatchEvents = append(doc.MatchEvents, encodeEvent(ev))
	}
	for _, round := range report.RoundReports() {
		rd := roundDoc{
			CT:         encodePlayers(round.CTComposition()),
			Terrorists: encodePlayers(round.TerroristComposition()),
		}
		if winner, ok := round.Winner(); ok {
			rd.Winner = winner.String()
		}
		for _, ev := range round.Events() {
			rd.Events = append(rd.Events, encodeEvent(ev))
		}
		doc.Rounds = append(doc.Rounds, rd)
	}
	return json.Marshal(doc)
}

func decodeReport(blob []byte) (*model.MatchReport, error) {
	var doc matchDoc
	if err := json.Unmarshal(blob, &doc); err != nil {
		return nil, err
	}

	var matchEvents []model.Event
	for _, ed := range doc.MatchEvents {
		ev, err := decodeEvent(ed)
		if err != nil {
			return nil, err
		}
		matchEvents = append(matchEvents, ev)
	}

	var rounds []model.RoundReport
	for _, rd := range doc.Rounds {
		var events []model.Event
		for _, ed := range rd.Events {
			ev, err := decodeEvent(ed)
			if err != nil {
				return nil, err
			}
			events = append(events, ev)
		}
		composition := map[model.Team][]model.Player{
			model.TeamCT:        decodePlayers(rd.CT),
			model.TeamTerrorist: decodePlayers(rd.Terrorists),
		}
		winner := model.TeamUnknown
		if rd.Winner != "" {
			winner, _ = model.ParseTeam(rd.Winner)
		}
		rounds = append(rounds, model.NewRoundReport(events, composition, winner))
	}
	return model.NewMatchReport(doc.MapName, matchEvents, rounds), nil
}

func encodeEvent(ev model.Event) eventDoc {
	doc := eventDoc{Time: ev.Timestamp()}
	switch e := ev.(type) {
	case model.MapLoading:
		doc.Kind = kindMapLoading
		doc.MapName = e.MapName
	case model.RoundStart:
		doc.Kind = kindRoundStart
	case model.RoundEnd:
		doc.Kind = kindRoundEnd
	case model.Attack:
		doc.Kind = kindAttack
		doc.Attacker = playerRef(e.Attacker)
		doc.Victim = playerRef(e.Victim)
		doc.Weapon = string(e.Weapon)
		doc.Damage = e.Damage
		doc.DamageArmor = e.DamageArmor
		doc.Health = e.Health
		doc.Armor = e.Armor
	case model.Kill:
		doc.Kind = kindKill
		doc.Attacker = playerRef(e.Attacker)
		doc.Victim = playerRef(e.Victim)
		doc.Weapon = string(e.Weapon)
	case model.MatchStarted:
		doc.Kind = kindMatchStarted
	case model.MatchEnded:
		doc.Kind = kindMatchEnded
	case model.PlayerJoinedTeam:
		doc.Kind = kindPlayerJoinedTeam
		doc.Player = playerRef(e.Player)
		doc.Team = e.Team.String()
	case model.PlayerDisconnected:
		doc.Kind = kindPlayerDisconnected
		doc.Player = playerRef(e.Player)
	case model.TeamWin:
		doc.Kind = kindTeamWin
		doc.Team = e.Team.String()
	case model.ServerNotice:
		doc.Kind = kindServerNotice
	}
	return doc
}

func decodeEvent(doc eventDoc) (model.Event, error) {
	base := model.Base{Time: doc.Time}
	switch doc.Kind {
	case kindMapLoading:
		return model.MapLoading{Base: base, MapName: doc.MapName}, nil
	case kindRoundStart:
		return model.RoundStart{Base: base}, nil
	case kindRoundEnd:
		return model.RoundEnd{Base: base}, nil
	case kindAttack:
		return model.Attack{
			Base:        base,
			Attacker:    playerVal(doc.Attacker),
			Victim:      playerVal(doc.Victim),
			Weapon:      model.Weapon(doc.Weapon),
			Damage:      doc.Damage,
			DamageArmor: doc.DamageArmor,
			Health:      doc.Health,
			Armor:       doc.Armor,
		}, nil
	case kindKill:
		return model.Kill{
			Base:     base,
			Attacker: playerVal(doc.Attacker),
			Victim:   playerVal(doc.Victim),
			Weapon:   model.Weapon(doc.Weapon),
		}, nil
	case kindMatchStarted:
		return model.MatchStarted{Base: base}, nil
	case kindMatchEnded:
		return model.MatchEnded{Base: base}, nil
	case kindPlayerJoinedTeam:
		team, _ := model.ParseTeam(doc.Team)
		return model.PlayerJoinedTeam{Base: base, Player: playerVal(doc.Player), Team: team}, nil
	case kindPlayerDisconnected:
		return model.PlayerDisconnected{Base: base, Player: playerVal(doc.Player)}, nil
	case kindTeamWin:
		team, _ := model.ParseTeam(doc.Team)
		return model.TeamWin{Base: base, Team: team}, nil
	case kindServerNotice:
		return model.ServerNotice{Base: base}, nil
	}
	return nil, fmt.Errorf("unknown event kind %q", doc.Kind)
}

func playerRef(p model.Player) *playerDoc {
	return &playerDoc{Nickname: p.Nickname, SteamID: p.SteamID}
}

func playerVal(doc *playerDoc) model.Player {
	if doc == nil {
		return model.Player{}
	}
	return model.Player{Nickname: doc.Nickname, SteamID: doc.SteamID}
}

func encodePlayers(players []model.Player) []playerDoc {
	docs := make([]playerDoc, 0, len(players))
	for _, p := range players {
		docs = append(docs, playerDoc{Nickname: p.Nickname, SteamID: p.SteamID})
	}
	return docs
}

func decodePlayers(docs []playerDoc) []model.Player {
	players := make([]model.Player, 0, len(docs))
	for _, d := range docs {
		players = append(players, model.Player{Nickname: d.Nickname, SteamID: d.SteamID})
	}
	return players
}
