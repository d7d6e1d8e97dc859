package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Laski/counter-strike-docker/internal/model"
)

var (
	// ErrUnrecognizedLine is returned for lines that match no event pattern.
	// The parse loop skips these; most log lines are unrelated chatter.
	ErrUnrecognizedLine = errors.New("line matches no event pattern")

	// ErrMissingTimestamp is returned when a recognized line lacks the
	// mandatory timestamp preamble.
	ErrMissingTimestamp = errors.New("no timestamp in line")
)

const timestampLayout = "01/02/2006 - 15:04:05"

// decodeEntry ties an event pattern to its payload constructor.
type decodeEntry struct {
	rx    *regexp.Regexp
	build func(base model.Base, caps map[string]string) (model.Event, error)
}

type attackFields struct {
	Attacker    model.Player `mapstructure:"attacker"`
	Victim      model.Player `mapstructure:"victim"`
	Weapon      model.Weapon `mapstructure:"weapon"`
	Damage      int          `mapstructure:"damage"`
	DamageArmor int          `mapstructure:"damage_armor"`
	Health      int          `mapstructure:"health"`
	Armor       int          `mapstructure:"armor"`
}

type killFields struct {
	Attacker model.Player `mapstructure:"attacker"`
	Victim   model.Player `mapstructure:"victim"`
	Weapon   model.Weapon `mapstructure:"weapon"`
}

type joinedTeamFields struct {
	Player model.Player `mapstructure:"player"`
	Team   model.Team   `mapstructure:"team"`
}

type disconnectedFields struct {
	Player model.Player `mapstructure:"player"`
}

type teamWinFields struct {
	Team model.Team `mapstructure:"team"`
}

type mapLoadingFields struct {
	MapName string `mapstructure:"map_name"`
}

// decodeTable lists every event kind in a fixed order. The server catch-all
// must stay last.
var decodeTable = []decodeEntry{
	{rxMapLoading, func(base model.Base, caps map[string]string) (model.Event, error) {
		f, err := decodeFields[mapLoadingFields](caps)
		if err != nil {
			return nil, err
		}
		return model.MapLoading{Base: base, MapName: f.MapName}, nil
	}},
	{rxRoundStart, func(base model.Base, _ map[string]string) (model.Event, error) {
		return model.RoundStart{Base: base}, nil
	}},
	{rxRoundEnd, func(base model.Base, _ map[string]string) (model.Event, error) {
		return model.RoundEnd{Base: base}, nil
	}},
	{rxAttack, func(base model.Base, caps map[string]string) (model.Event, error) {
		f, err := decodeFields[attackFields](caps)
		if err != nil {
			return nil, err
		}
		return model.Attack{
			Base:        base,
			Attacker:    f.Attacker,
			Victim:      f.Victim,
			Weapon:      f.Weapon,
			Damage:      f.Damage,
			DamageArmor: f.DamageArmor,
			Health:      f.Health,
			Armor:       f.Armor,
		}, nil
	}},
	{rxKill, func(base model.Base, caps map[string]string) (model.Event, error) {
		f, err := decodeFields[killFields](caps)
		if err != nil {
			return nil, err
		}
		return model.Kill{Base: base, Attacker: f.Attacker, Victim: f.Victim, Weapon: f.Weapon}, nil
	}},
	{rxMatchStarted, func(base model.Base, _ map[string]string) (model.Event, error) {
		return model.MatchStarted{Base: base}, nil
	}},
	{rxMatchEnded, func(base model.Base, _ map[string]string) (model.Event, error) {
		return model.MatchEnded{Base: base}, nil
	}},
	{rxJoinedTeam, func(base model.Base, caps map[string]string) (model.Event, error) {
		f, err := decodeFields[joinedTeamFields](caps)
		if err != nil {
			return nil, err
		}
		return model.PlayerJoinedTeam{Base: base, Player: f.Player, Team: f.Team}, nil
	}},
	{rxDisconnected, func(base model.Base, caps map[string]string) (model.Event, error) {
		f, err := decodeFields[disconnectedFields](caps)
		if err != nil {
			return nil, err
		}
		return model.PlayerDisconnected{Base: base, Player: f.Player}, nil
	}},
	{rxTeamWin, func(base model.Base, caps map[string]string) (model.Event, error) {
		f, err := decodeFields[teamWinFields](caps)
		if err != nil {
			return nil, err
		}
		return model.TeamWin{Base: base, Team: f.Team}, nil
	}},
	{rxServer, func(base model.Base, _ map[string]string) (model.Event, error) {
		return model.ServerNotice{Base: base}, nil
	}},
}

// DecodeLine maps one raw log line to a typed event. Lines matching no
// pattern fail with ErrUnrecognizedLine; recognized lines without the
// timestamp preamble fail with ErrMissingTimestamp.
func DecodeLine(line string) (model.Event, error) {
	for _, entry := range decodeTable {
		caps := captures(entry.rx, line)
		if caps == nil {
			continue
		}
		ts, err := timestampOf(line)
		if err != nil {
			return nil, err
		}
		return entry.build(model.Base{Time: ts}, caps)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnrecognizedLine, strings.TrimSpace(line))
}

func timestampOf(line string) (time.Time, error) {
	m := rxTimestamp.FindStringSubmatch(line)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMissingTimestamp, strings.TrimSpace(line))
	}
	ts, err := time.Parse(timestampLayout, m[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMissingTimestamp, strings.TrimSpace(line))
	}
	return ts, nil
}
