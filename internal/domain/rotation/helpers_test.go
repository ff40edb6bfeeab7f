package rotation

import (
	"fmt"
	"testing"
	"time"

	"github.com/dimashiii/EzySubs-App/internal/domain/player"
	"github.com/dimashiii/EzySubs-App/internal/domain/settings"
)

var gameStart = time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

func testRoster(n int) []player.Player {
	out := make([]player.Player, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, player.Player{ID: fmt.Sprintf("p%d", i), Name: fmt.Sprintf("Player %d", i)})
	}
	return out
}

func testSettings(half, interval, warning, quarter int) settings.Settings {
	return settings.Settings{
		HalfLengthSeconds:   half,
		SubIntervalSeconds:  interval,
		SubWarningSeconds:   warning,
		QuarterBreakSeconds: quarter,
		QuarterBreakEnabled: quarter > 0,
	}
}

// runSeconds ticks once per simulated second and stops early when the machine pauses.
func runSeconds(t *testing.T, m *Machine, now *time.Time, n int) []TickResult {
	t.Helper()

	var results []TickResult
	for i := 0; i < n; i++ {
		*now = now.Add(time.Second)
		res := m.Tick(*now)
		results = append(results, res)
		if m.Paused() {
			break
		}
	}
	return results
}

func countSubs(results []TickResult) int {
	n := 0
	for _, r := range results {
		if r.Substitution != nil {
			n++
		}
	}
	return n
}

func idSet(p Partition) map[string]struct{} {
	out := make(map[string]struct{}, p.Len())
	for _, pl := range p.Starters {
		out[pl.ID] = struct{}{}
	}
	for _, pl := range p.Bench {
		out[pl.ID] = struct{}{}
	}
	return out
}

func starterIDs(m *Machine) []string {
	return player.IDs(m.Partition().Starters)
}

func benchIDs(m *Machine) []string {
	return player.IDs(m.Partition().Bench)
}
