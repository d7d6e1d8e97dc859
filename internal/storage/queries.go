package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Laski/counter-strike-docker/internal/model"
)

const timeFormat = time.RFC3339

// MatchExists returns true if a report for the given log hash is cached.
func (db *DB) MatchExists(hash string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE hash = ?", hash).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// PutReport caches a match report under the log hash. Uses INSERT OR REPLACE
// for idempotency.
func (db *DB) PutReport(hash, fileName string, report *model.MatchReport) error {
	blob, err := encodeReport(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	_, err = db.conn.Exec(`
		INSERT OR REPLACE INTO matches(hash, file_name, map_name, start_time, end_time, ct_score, t_score, report)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		hash, fileName, report.MapName(),
		report.StartTime().Format(timeFormat), report.EndTime().Format(timeFormat),
		report.TeamScore(model.TeamCT), report.TeamScore(model.TeamTerrorist),
		blob,
	)
	return err
}

// GetReport loads the cached report for a log hash, or nil if absent.
func (db *DB) GetReport(hash string) (*model.MatchReport, error) {
	var blob []byte
	err := db.conn.QueryRow("SELECT report FROM matches WHERE hash = ?", hash).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	report, err := decodeReport(blob)
	if err != nil {
		return nil, fmt.Errorf("decode cached report %s: %w", hash, err)
	}
	return report, nil
}

// ListMatches returns summaries of every cached match, oldest first.
func (db *DB) ListMatches() ([]model.MatchSummary, error) {
	rows, err := db.conn.Query(`
		SELECT hash, file_name, map_name, start_time, end_time, ct_score, t_score
		FROM matches ORDER BY start_time ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []model.MatchSummary
	for rows.Next() {
		var s model.MatchSummary
		var start, end string
		if err := rows.Scan(&s.Hash, &s.FileName, &s.MapName, &start, &end, &s.CTScore, &s.TScore); err != nil {
			return nil, err
		}
		if s.StartTime, err = time.Parse(timeFormat, start); err != nil {
			return nil, fmt.Errorf("bad start_time for %s: %w", s.Hash, err)
		}
		if s.EndTime, err = time.Parse(timeFormat, end); err != nil {
			return nil, fmt.Errorf("bad end_time for %s: %w", s.Hash, err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
