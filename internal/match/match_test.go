package match

import (
	"errors"
	"testing"
	"time"

	"github.com/Laski/counter-strike-docker/internal/model"
)

var (
	rubi   = model.Player{Nickname: "Rubi", SteamID: 111}
	payvon = model.Player{Nickname: "Payvon", SteamID: 222}
	mcd    = model.Player{Nickname: "Mcd.", SteamID: 333}
)

func at(t *testing.T, sec int) model.Base {
	t.Helper()
	base := time.Date(2020, 4, 9, 20, 48, 0, 0, time.UTC)
	return model.Base{Time: base.Add(time.Duration(sec) * time.Second)}
}

// fullRound returns the events of one complete round won by team.
func fullRound(t *testing.T, offset int, winner model.Team) []model.Event {
	t.Helper()
	return []model.Event{
		model.RoundStart{Base: at(t, offset)},
		model.TeamWin{Base: at(t, offset+20), Team: winner},
		model.RoundEnd{Base: at(t, offset+21)},
	}
}

func TestReplayFullMatch(t *testing.T) {
	events := []model.Event{
		model.MapLoading{Base: at(t, 0), MapName: "de_dust2"},
		model.PlayerJoinedTeam{Base: at(t, 1), Player: payvon, Team: model.TeamCT},
		model.PlayerJoinedTeam{Base: at(t, 2), Player: rubi, Team: model.TeamTerrorist},
	}
	events = append(events, fullRound(t, 10, model.TeamCT)...)
	events = append(events, fullRound(t, 40, model.TeamTerrorist)...)
	events = append(events, fullRound(t, 70, model.TeamCT)...)
	events = append(events, model.MatchEnded{Base: at(t, 100)})

	report, err := Replay(events)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if report.MapName() != "de_dust2" {
		t.Errorf("expected map de_dust2, got %q", report.MapName())
	}
	if got := len(report.RoundReports()); got != 3 {
		t.Fatalf("expected 3 rounds, got %d", got)
	}
	if ct, tt := report.TeamScore(model.TeamCT), report.TeamScore(model.TeamTerrorist); ct != 2 || tt != 1 {
		t.Errorf("expected score 2-1, got %d-%d", ct, tt)
	}
}

func TestReplayWithoutMatchEnd(t *testing.T) {
	events := fullRound(t, 0, model.TeamCT)

	_, err := Replay(events)
	if !errors.Is(err, ErrMatchNotEnded) {
		t.Fatalf("expected ErrMatchNotEnded, got %v", err)
	}

	rounds, err := ReplayRounds(events)
	if err != nil {
		t.Fatalf("ReplayRounds: %v", err)
	}
	if len(rounds) != 1 {
		t.Errorf("expected 1 salvaged round, got %d", len(rounds))
	}
}

func TestDoubleRoundStart(t *testing.T) {
	events := []model.Event{
		model.RoundStart{Base: at(t, 0)},
		model.RoundStart{Base: at(t, 5)},
	}
	_, err := ReplayRounds(events)
	if !errors.Is(err, ErrRoundStillOpen) {
		t.Fatalf("expected ErrRoundStillOpen, got %v", err)
	}
}

func TestRoundEventWithNoOpenRound(t *testing.T) {
	events := []model.Event{
		model.Kill{Base: at(t, 0), Attacker: payvon, Victim: rubi, Weapon: "awp"},
	}
	_, err := ReplayRounds(events)
	if !errors.Is(err, ErrNoOpenRound) {
		t.Fatalf("expected ErrNoOpenRound, got %v", err)
	}

	events = []model.Event{
		model.RoundEnd{Base: at(t, 0)},
	}
	if _, err := ReplayRounds(events); !errors.Is(err, ErrNoOpenRound) {
		t.Fatalf("expected ErrNoOpenRound for stray round end, got %v", err)
	}
}

func TestRosterSnapshotAtRoundStart(t *testing.T) {
	events := []model.Event{
		model.PlayerJoinedTeam{Base: at(t, 0), Player: payvon, Team: model.TeamCT},
		model.RoundStart{Base: at(t, 10)},
		// joins mid-round, so only the next round sees them
		model.PlayerJoinedTeam{Base: at(t, 15), Player: rubi, Team: model.TeamTerrorist},
		model.RoundEnd{Base: at(t, 20)},
		model.RoundStart{Base: at(t, 30)},
		model.RoundEnd{Base: at(t, 40)},
	}

	rounds, err := ReplayRounds(events)
	if err != nil {
		t.Fatalf("ReplayRounds: %v", err)
	}
	if len(rounds[0].TerroristComposition()) != 0 {
		t.Error("round one should not include a mid-round joiner")
	}
	if got := rounds[1].TerroristComposition(); len(got) != 1 || !got[0].Equal(rubi) {
		t.Errorf("round two should include the joiner, got %v", got)
	}
}

func TestDisconnectLeavesRoster(t *testing.T) {
	events := []model.Event{
		model.PlayerJoinedTeam{Base: at(t, 0), Player: payvon, Team: model.TeamCT},
		model.PlayerJoinedTeam{Base: at(t, 1), Player: mcd, Team: model.TeamCT},
		model.RoundStart{Base: at(t, 10)},
		model.RoundEnd{Base: at(t, 20)},
		model.PlayerDisconnected{Base: at(t, 25), Player: payvon},
		model.RoundStart{Base: at(t, 30)},
		model.RoundEnd{Base: at(t, 40)},
	}

	rounds, err := ReplayRounds(events)
	if err != nil {
		t.Fatalf("ReplayRounds: %v", err)
	}
	if got := len(rounds[0].CTComposition()); got != 2 {
		t.Errorf("expected 2 CTs before the disconnect, got %d", got)
	}
	ct := rounds[1].CTComposition()
	if len(ct) != 1 || !ct[0].Equal(mcd) {
		t.Errorf("expected only Mcd. after the disconnect, got %v", ct)
	}
}

func TestSwitchingTeams(t *testing.T) {
	events := []model.Event{
		model.PlayerJoinedTeam{Base: at(t, 0), Player: payvon, Team: model.TeamCT},
		model.PlayerJoinedTeam{Base: at(t, 1), Player: payvon, Team: model.TeamTerrorist},
		model.RoundStart{Base: at(t, 10)},
		model.RoundEnd{Base: at(t, 20)},
	}

	rounds, err := ReplayRounds(events)
	if err != nil {
		t.Fatalf("ReplayRounds: %v", err)
	}
	if got := rounds[0].CTComposition(); len(got) != 0 {
		t.Errorf("expected empty CT roster, got %v", got)
	}
	if got := rounds[0].TerroristComposition(); len(got) != 1 || !got[0].Equal(payvon) {
		t.Errorf("expected Payvon on the terrorist roster, got %v", got)
	}
}

func TestSpectatorsAreNotTracked(t *testing.T) {
	events := []model.Event{
		model.PlayerJoinedTeam{Base: at(t, 0), Player: payvon, Team: model.TeamCT},
		model.PlayerJoinedTeam{Base: at(t, 1), Player: rubi, Team: model.TeamSpectator},
		model.RoundStart{Base: at(t, 10)},
		model.RoundEnd{Base: at(t, 20)},
	}

	rounds, err := ReplayRounds(events)
	if err != nil {
		t.Fatalf("ReplayRounds: %v", err)
	}
	players := rounds[0].AllPlayers()
	if len(players) != 1 || !players[0].Equal(payvon) {
		t.Errorf("expected spectators off the rosters, got %v", players)
	}
}

func TestRoundWithoutWinner(t *testing.T) {
	events := []model.Event{
		model.RoundStart{Base: at(t, 0)},
		model.RoundEnd{Base: at(t, 10)},
	}

	rounds, err := ReplayRounds(events)
	if err != nil {
		t.Fatalf("ReplayRounds: %v", err)
	}
	if winner, ok := rounds[0].Winner(); ok {
		t.Errorf("expected no winner, got %v", winner)
	}
}
