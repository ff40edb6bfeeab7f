package memory

import (
	"fmt"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/dimashiii/EzySubs-App/internal/domain/lineup"
	"github.com/dimashiii/EzySubs-App/internal/domain/player"
)

// RosterFile is the on-disk team sheet used to seed the roster, today's
// selection and an optional lineup.
type RosterFile struct {
	Players  []player.Player `json:"players"`
	Selected []string        `json:"selected"`
	Lineup   *struct {
		Starters []string `json:"starters"`
		Bench    []string `json:"bench"`
	} `json:"lineup,omitempty"`
}

// LineupHint returns the file's lineup, if any.
func (f RosterFile) LineupHint() (lineup.Lineup, bool) {
	if f.Lineup == nil {
		return lineup.Lineup{}, false
	}
	return lineup.Lineup{
		StarterIDs: append([]string(nil), f.Lineup.Starters...),
		BenchIDs:   append([]string(nil), f.Lineup.Bench...),
	}, true
}

// LoadRosterFile reads and validates a roster file.
func LoadRosterFile(path string) (RosterFile, error) {
	raw, err := os.ReadFile(strings.TrimSpace(path))
	if err != nil {
		return RosterFile{}, fmt.Errorf("read roster file: %w", err)
	}

	var out RosterFile
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return RosterFile{}, fmt.Errorf("decode roster file: %w", err)
	}
	for i, p := range out.Players {
		if err := p.Validate(); err != nil {
			return RosterFile{}, fmt.Errorf("roster file player %d: %w", i, err)
		}
	}
	return out, nil
}

// SeedPlayers is the roster used when no roster file is configured.
func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "p-01", Name: "Maya Okafor"},
		{ID: "p-02", Name: "Jordan Reyes"},
		{ID: "p-03", Name: "Sam Whitaker"},
		{ID: "p-04", Name: "Leah Tanaka"},
		{ID: "p-05", Name: "Chris Ndiaye"},
		{ID: "p-06", Name: "Riley Costa"},
		{ID: "p-07", Name: "Avery Lindqvist"},
		{ID: "p-08", Name: "Noor Haddad"},
		{ID: "p-09", Name: "Elliot Brandt"},
	}
}
