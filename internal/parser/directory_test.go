package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Laski/counter-strike-docker/internal/storage"
)

const logA = `L 04/09/2020 - 20:47:30: Loading map "awp_india"
L 04/09/2020 - 20:48:29: World triggered "Round_Start"
L 04/09/2020 - 20:48:40: Team "CT" triggered "CTs_Win" (CT "1") (T "0")
L 04/09/2020 - 20:48:41: World triggered "Round_End"
L 04/09/2020 - 21:07:51: Log file closed
`

const logB = `L 04/10/2020 - 20:47:30: Loading map "de_dust2"
L 04/10/2020 - 20:48:29: World triggered "Round_Start"
L 04/10/2020 - 20:48:40: Team "TERRORIST" triggered "Terrorists_Win" (CT "0") (T "1")
L 04/10/2020 - 20:48:41: World triggered "Round_End"
L 04/10/2020 - 21:07:51: Log file closed
`

func writeLogs(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{
		"2020-04-09.log": logA,
		"2020-04-10.log": logB,
		"notes.txt":      "not a log",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestDirectoryParsesLogsInNameOrder(t *testing.T) {
	dir := writeLogs(t)

	reports, err := NewDirectory(dir, nil).MatchReports()
	if err != nil {
		t.Fatalf("MatchReports: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if reports[0].MapName() != "awp_india" || reports[1].MapName() != "de_dust2" {
		t.Errorf("unexpected order: %s, %s", reports[0].MapName(), reports[1].MapName())
	}
}

func TestDirectoryUsesCache(t *testing.T) {
	dir := writeLogs(t)

	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer db.Close()

	d := NewDirectory(dir, db)
	first, err := d.MatchReports()
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}

	cached, err := db.ListMatches()
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	if len(cached) != 2 {
		t.Fatalf("expected 2 cached matches, got %d", len(cached))
	}

	// second pass must serve the frozen reports from the cache
	second, err := d.MatchReports()
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if len(second) != len(first) {
		t.Fatalf("cache changed the report count: %d vs %d", len(second), len(first))
	}
	for i := range second {
		if second[i].MapName() != first[i].MapName() {
			t.Errorf("report %d map mismatch: %q vs %q", i, second[i].MapName(), first[i].MapName())
		}
		if !second[i].StartTime().Equal(first[i].StartTime()) {
			t.Errorf("report %d start mismatch: %v vs %v", i, second[i].StartTime(), first[i].StartTime())
		}
	}
}
