package parser

import (
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"

	"github.com/Laski/counter-strike-docker/internal/model"
)

// resolveEntity interprets a captured sub-string as a typed value. Entity
// patterns are tried first; the fallback coerces to integer, then keeps the
// raw string. Downstream code relies on this exact order: numeric fields
// (damage, health, armor) come out as ints and identity fields as entities.
func resolveEntity(raw string) any {
	if caps := captures(rxPlayer, raw); caps != nil {
		steamID, _ := strconv.ParseUint(caps["steam_id"], 10, 64)
		return model.Player{Nickname: caps["nickname"], SteamID: steamID}
	}
	if caps := captures(rxWeapon, raw); caps != nil {
		return model.Weapon(caps["name"])
	}
	if caps := captures(rxTeam, raw); caps != nil {
		team, _ := model.ParseTeam(caps["name"])
		return team
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	return raw
}

// decodeFields resolves every captured group and maps the result onto the
// event's payload struct.
func decodeFields[T any](caps map[string]string) (T, error) {
	fields := make(map[string]any, len(caps))
	for name, raw := range caps {
		fields[name] = resolveEntity(raw)
	}

	var payload T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &payload,
		DecodeHook: unknownTeamHook(),
	})
	if err != nil {
		return payload, err
	}
	return payload, dec.Decode(fields)
}

// unknownTeamHook turns a team capture outside the known set (e.g. the empty
// `<>` team) into TeamUnknown instead of failing the decode.
func unknownTeamHook() mapstructure.DecodeHookFunc {
	teamType := reflect.TypeOf(model.TeamUnknown)
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to == teamType && from.Kind() == reflect.String {
			return model.TeamUnknown, nil
		}
		return data, nil
	}
}
