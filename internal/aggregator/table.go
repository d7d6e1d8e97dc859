package aggregator

import "github.com/Laski/counter-strike-docker/internal/model"

// Table accumulates stats for every player discovered across one or many
// match reports. Entries are keyed by steam ID, so captures of the same
// player under different nicknames merge onto one row; the latest nickname
// wins for display.
type Table struct {
	stats map[uint64]*model.PlayerStats
	names map[uint64]string
	order []uint64
}

func NewTable() *Table {
	return &Table{
		stats: make(map[uint64]*model.PlayerStats),
		names: make(map[uint64]string),
	}
}

// Get returns the player's accumulator, creating a zero-valued one on first
// sight.
func (t *Table) Get(player model.Player) *model.PlayerStats {
	stats, ok := t.stats[player.SteamID]
	if !ok {
		stats = model.NewPlayerStats()
		t.stats[player.SteamID] = stats
		t.order = append(t.order, player.SteamID)
	}
	if player.Nickname != "" {
		t.names[player.SteamID] = player.Nickname
	}
	return stats
}

// Lookup returns the accumulator for a steam ID, if the player was seen.
func (t *Table) Lookup(steamID uint64) (*model.PlayerStats, bool) {
	stats, ok := t.stats[steamID]
	return stats, ok
}

// Name returns the display nickname for a steam ID.
func (t *Table) Name(steamID uint64) string {
	return t.names[steamID]
}

// Players returns every seen player in first-appearance order, carrying the
// latest observed nickname.
func (t *Table) Players() []model.Player {
	players := make([]model.Player, 0, len(t.order))
	for _, id := range t.order {
		players = append(players, model.Player{Nickname: t.names[id], SteamID: id})
	}
	return players
}

func (t *Table) Len() int { return len(t.stats) }

// AddReport folds one match into the table for every player that appeared in
// it. The player set comes from the report itself, so incremental
// accumulation across many matches needs no external bookkeeping.
func (t *Table) AddReport(report *model.MatchReport) {
	for _, player := range report.AllPlayers() {
		AddMatch(report, player, t.Get(player))
	}
}

// Collect builds a stats table over a batch of match reports.
func Collect(reports []*model.MatchReport) *Table {
	table := NewTable()
	for _, report := range reports {
		table.AddReport(report)
	}
	return table
}
