// Package parser turns plain-text game-server logs into typed events and,
// through the match package, into immutable match reports. One log file holds
// exactly one match.
package parser

import (
	"errors"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/Laski/counter-strike-docker/internal/match"
	"github.com/Laski/counter-strike-docker/internal/model"
)

// LogParser decodes one log file worth of lines.
type LogParser struct {
	lines []string
}

// FromText builds a parser over raw log text.
func FromText(text string) *LogParser {
	return &LogParser{lines: strings.Split(text, "\n")}
}

// FromFile builds a parser over the contents of a log file.
func FromFile(path string) (*LogParser, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return FromText(string(data)), nil
}

// Events decodes every line, in order. Unrecognized lines are skipped; that
// is the expected case for most log noise. Any other decode failure aborts.
func (p *LogParser) Events() ([]model.Event, error) {
	var events []model.Event
	for _, line := range p.lines {
		ev, err := DecodeLine(line)
		if err != nil {
			if errors.Is(err, ErrUnrecognizedLine) {
				log.Debugf("ignoring line: %s", strings.TrimSpace(line))
				continue
			}
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// MatchReport replays the decoded events into a finished match report. The
// log must contain a match end.
func (p *LogParser) MatchReport() (*model.MatchReport, error) {
	events, err := p.Events()
	if err != nil {
		return nil, err
	}
	return match.Replay(events)
}

// RoundReports replays the decoded events and returns the rounds that
// closed, for logs whose match never ended.
func (p *LogParser) RoundReports() ([]model.RoundReport, error) {
	events, err := p.Events()
	if err != nil {
		return nil, err
	}
	return match.ReplayRounds(events)
}
