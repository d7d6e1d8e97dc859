// Package match folds an ordered event stream into immutable match and round
// reports. All transition effects live here, switched on the event type, so
// every state change is auditable in one place.
package match

import (
	"errors"
	"fmt"

	"github.com/Laski/counter-strike-docker/internal/model"
)

var (
	// ErrRoundStillOpen means a round started while the previous one never
	// closed. The log is malformed and no report can be trusted.
	ErrRoundStillOpen = errors.New("round started while the previous round is still open")

	// ErrNoOpenRound means a round-scoped event arrived with no round in
	// progress.
	ErrNoOpenRound = errors.New("round event with no round in progress")

	// ErrMatchNotEnded means a match report was requested before the match
	// ended. Partial results are available through ReplayRounds.
	ErrMatchNotEnded = errors.New("match has not ended")
)

// Replay folds the event stream into a finished match report. The stream must
// contain a match end; use ReplayRounds to salvage rounds from a truncated
// log.
func Replay(events []model.Event) (*model.MatchReport, error) {
	m := newMatchInProgress()
	for _, ev := range events {
		if err := m.apply(ev); err != nil {
			return nil, err
		}
	}
	return m.report()
}

// ReplayRounds folds the event stream and returns every round that closed,
// whether or not the match itself ended. This is the supported way to extract
// partial results from a log with a corrupt or missing tail.
func ReplayRounds(events []model.Event) ([]model.RoundReport, error) {
	m := newMatchInProgress()
	for _, ev := range events {
		if err := m.apply(ev); err != nil {
			return nil, err
		}
	}
	return m.rounds, nil
}

// roundInProgress is the transient state of the round currently being
// replayed. It is never exposed outside this package.
type roundInProgress struct {
	events      []model.Event
	ended       bool
	composition map[model.Team][]model.Player
	winner      model.Team
}

func (r *roundInProgress) record(ev model.Event) {
	r.events = append(r.events, ev)
}

// matchInProgress is the transient match state, discarded once the report is
// frozen.
type matchInProgress struct {
	mapName     string
	matchEvents []model.Event
	rounds      []model.RoundReport
	rosters     map[model.Team][]model.Player
	current     *roundInProgress
	started     bool
	ended       bool
}

func newMatchInProgress() *matchInProgress {
	return &matchInProgress{
		rosters: map[model.Team][]model.Player{
			model.TeamCT:        nil,
			model.TeamTerrorist: nil,
		},
	}
}

func (m *matchInProgress) apply(ev model.Event) error {
	switch e := ev.(type) {
	case model.MapLoading:
		m.mapName = e.MapName
		m.matchEvents = append(m.matchEvents, ev)

	case model.RoundStart:
		if err := m.startNewRound(); err != nil {
			return fmt.Errorf("at %s: %w", ev.Timestamp(), err)
		}
		m.current.record(ev)

	case model.RoundEnd:
		if m.current == nil || m.current.ended {
			return fmt.Errorf("at %s: %w", ev.Timestamp(), ErrNoOpenRound)
		}
		m.current.record(ev)
		m.closeCurrentRound()

	case model.Attack, model.Kill:
		if err := m.recordRoundEvent(ev); err != nil {
			return err
		}

	case model.TeamWin:
		if err := m.recordRoundEvent(ev); err != nil {
			return err
		}
		m.current.winner = e.Team

	case model.PlayerJoinedTeam:
		m.matchEvents = append(m.matchEvents, ev)
		m.moveToTeam(e.Player, e.Team)

	case model.PlayerDisconnected:
		m.removeFromAllRosters(e.Player)

	case model.MatchStarted:
		m.matchEvents = append(m.matchEvents, ev)
		m.started = true

	case model.MatchEnded:
		m.matchEvents = append(m.matchEvents, ev)
		m.ended = true

	case model.ServerNotice:
		// chatter, ignored
	}
	return nil
}

// startNewRound opens a round with a snapshot of the current rosters. The
// previous round, if any, must already have closed.
func (m *matchInProgress) startNewRound() error {
	if m.current != nil && !m.current.ended {
		return ErrRoundStillOpen
	}
	composition := make(map[model.Team][]model.Player, len(m.rosters))
	for team, players := range m.rosters {
		composition[team] = append([]model.Player(nil), players...)
	}
	m.current = &roundInProgress{composition: composition}
	return nil
}

// closeCurrentRound freezes the round into a report and appends it to the
// finished rounds.
func (m *matchInProgress) closeCurrentRound() {
	m.current.ended = true
	report := model.NewRoundReport(m.current.events, m.current.composition, m.current.winner)
	m.rounds = append(m.rounds, report)
}

func (m *matchInProgress) recordRoundEvent(ev model.Event) error {
	if m.current == nil || m.current.ended {
		return fmt.Errorf("at %s: %w", ev.Timestamp(), ErrNoOpenRound)
	}
	m.current.record(ev)
	return nil
}

// moveToTeam takes the player off any roster they occupy and adds them to the
// named one. Only CT and TERRORIST rosters are tracked; joining any other
// team just removes the player from play.
func (m *matchInProgress) moveToTeam(player model.Player, team model.Team) {
	m.removeFromAllRosters(player)
	if team == model.TeamCT || team == model.TeamTerrorist {
		m.rosters[team] = append(m.rosters[team], player)
	}
}

func (m *matchInProgress) removeFromAllRosters(player model.Player) {
	for team, players := range m.rosters {
		kept := players[:0]
		for _, p := range players {
			if !p.Equal(player) {
				kept = append(kept, p)
			}
		}
		m.rosters[team] = kept
	}
}

func (m *matchInProgress) report() (*model.MatchReport, error) {
	if !m.ended {
		return nil, ErrMatchNotEnded
	}
	return model.NewMatchReport(m.mapName, m.matchEvents, m.rounds), nil
}
