package storage

import (
	"testing"
	"time"

	"github.com/Laski/counter-strike-docker/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

var (
	mcd   = model.Player{Nickname: "Mcd.", SteamID: 333}
	rocho = model.Player{Nickname: "Rocho", SteamID: 444}
)

func at(day, sec int) model.Base {
	base := time.Date(2020, 4, day, 20, 48, 0, 0, time.UTC)
	return model.Base{Time: base.Add(time.Duration(sec) * time.Second)}
}

func sampleReport(t *testing.T, day int) *model.MatchReport {
	t.Helper()
	matchEvents := []model.Event{
		model.MapLoading{Base: at(day, -60), MapName: "awp_india"},
		model.PlayerJoinedTeam{Base: at(day, -30), Player: mcd, Team: model.TeamCT},
		model.MatchEnded{Base: at(day, 100)},
	}
	roundEvents := []model.Event{
		model.RoundStart{Base: at(day, 0)},
		model.Attack{Base: at(day, 5), Attacker: mcd, Victim: rocho, Weapon: "awp", Damage: 106, DamageArmor: 2, Health: -6, Armor: 98},
		model.Kill{Base: at(day, 6), Attacker: mcd, Victim: rocho, Weapon: "awp"},
		model.TeamWin{Base: at(day, 20), Team: model.TeamCT},
		model.RoundEnd{Base: at(day, 21)},
	}
	composition := map[model.Team][]model.Player{
		model.TeamCT:        {mcd},
		model.TeamTerrorist: {rocho},
	}
	round := model.NewRoundReport(roundEvents, composition, model.TeamCT)
	return model.NewMatchReport("awp_india", matchEvents, []model.RoundReport{round})
}

func TestPutAndGetReport(t *testing.T) {
	db := openMemDB(t)
	report := sampleReport(t, 9)

	if err := db.PutReport("hash1", "match1.log", report); err != nil {
		t.Fatalf("PutReport: %v", err)
	}

	loaded, err := db.GetReport("hash1")
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected a cached report")
	}

	if loaded.MapName() != report.MapName() {
		t.Errorf("map name mismatch: %q vs %q", loaded.MapName(), report.MapName())
	}
	if !loaded.StartTime().Equal(report.StartTime()) || !loaded.EndTime().Equal(report.EndTime()) {
		t.Errorf("time mismatch: %v-%v vs %v-%v",
			loaded.StartTime(), loaded.EndTime(), report.StartTime(), report.EndTime())
	}
	if got := len(loaded.RoundReports()); got != 1 {
		t.Fatalf("expected 1 round, got %d", got)
	}

	round := loaded.RoundReports()[0]
	if winner, ok := round.Winner(); !ok || winner != model.TeamCT {
		t.Errorf("expected CT round win, got %v (%v)", winner, ok)
	}
	if ct := round.CTComposition(); len(ct) != 1 || ct[0] != mcd {
		t.Errorf("CT composition mismatch: %v", ct)
	}

	kill, err := loaded.FirstKill()
	if err != nil {
		t.Fatalf("FirstKill: %v", err)
	}
	if k := kill.(model.Kill); !k.Attacker.Equal(mcd) || k.Weapon != "awp" {
		t.Errorf("kill mismatch: %+v", k)
	}

	attack, err := loaded.FirstAttack()
	if err != nil {
		t.Fatalf("FirstAttack: %v", err)
	}
	if a := attack.(model.Attack); a.Damage != 106 || a.Health != -6 {
		t.Errorf("attack mismatch: %+v", a)
	}
}

func TestGetReportAbsent(t *testing.T) {
	db := openMemDB(t)

	report, err := db.GetReport("missing")
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if report != nil {
		t.Error("expected nil for an uncached hash")
	}
}

func TestMatchExists(t *testing.T) {
	db := openMemDB(t)

	exists, err := db.MatchExists("hash1")
	if err != nil {
		t.Fatalf("MatchExists: %v", err)
	}
	if exists {
		t.Error("expected no match before insert")
	}

	if err := db.PutReport("hash1", "match1.log", sampleReport(t, 9)); err != nil {
		t.Fatalf("PutReport: %v", err)
	}

	exists, err = db.MatchExists("hash1")
	if err != nil {
		t.Fatalf("MatchExists: %v", err)
	}
	if !exists {
		t.Error("expected match after insert")
	}
}

func TestPutReportIsIdempotent(t *testing.T) {
	db := openMemDB(t)
	report := sampleReport(t, 9)

	if err := db.PutReport("hash1", "match1.log", report); err != nil {
		t.Fatalf("PutReport: %v", err)
	}
	if err := db.PutReport("hash1", "match1.log", report); err != nil {
		t.Fatalf("second PutReport: %v", err)
	}

	summaries, err := db.ListMatches()
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	if len(summaries) != 1 {
		t.Errorf("expected one row after re-insert, got %d", len(summaries))
	}
}

func TestListMatchesOldestFirst(t *testing.T) {
	db := openMemDB(t)

	// insert out of chronological order
	if err := db.PutReport("later", "b.log", sampleReport(t, 10)); err != nil {
		t.Fatalf("PutReport: %v", err)
	}
	if err := db.PutReport("earlier", "a.log", sampleReport(t, 9)); err != nil {
		t.Fatalf("PutReport: %v", err)
	}

	summaries, err := db.ListMatches()
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(summaries))
	}
	if summaries[0].Hash != "earlier" || summaries[1].Hash != "later" {
		t.Errorf("expected chronological order, got %s then %s", summaries[0].Hash, summaries[1].Hash)
	}

	s := summaries[0]
	if s.FileName != "a.log" || s.MapName != "awp_india" || s.CTScore != 1 || s.TScore != 0 {
		t.Errorf("unexpected summary: %+v", s)
	}
	if !s.EndTime.After(s.StartTime) {
		t.Errorf("summary times out of order: %v / %v", s.StartTime, s.EndTime)
	}
}
