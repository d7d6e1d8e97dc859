package parser

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Laski/counter-strike-docker/internal/model"
	"github.com/Laski/counter-strike-docker/internal/storage"
)

// Directory parses an entire directory of logs, one match per .log file.
// With a cache attached, already-seen files (keyed by content hash) load
// their frozen report instead of being re-parsed.
type Directory struct {
	path  string
	cache *storage.DB
}

// NewDirectory builds a directory parser. The cache may be nil.
func NewDirectory(path string, cache *storage.DB) *Directory {
	return &Directory{path: path, cache: cache}
}

// MatchReports parses or loads every log in the directory. Files are visited
// in name order, which for server logs is chronological match order; the
// rating scorer depends on that.
func (d *Directory) MatchReports() ([]*model.MatchReport, error) {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		return nil, fmt.Errorf("read log directory: %w", err)
	}

	var reports []*model.MatchReport
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}
		report, err := d.loadOrParse(filepath.Join(d.path, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (d *Directory) loadOrParse(path string) (*model.MatchReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	hash := fmt.Sprintf("%x", sha256.Sum256(data))

	if d.cache != nil {
		cached, err := d.cache.GetReport(hash)
		if err != nil {
			return nil, err
		}
		if cached != nil {
			log.Debugf("loaded %s from cache", filepath.Base(path))
			return cached, nil
		}
	}

	log.Infof("parsing %s", filepath.Base(path))
	report, err := FromText(string(data)).MatchReport()
	if err != nil {
		return nil, err
	}

	if d.cache != nil {
		if err := d.cache.PutReport(hash, filepath.Base(path), report); err != nil {
			return nil, fmt.Errorf("cache report: %w", err)
		}
	}
	return report, nil
}
