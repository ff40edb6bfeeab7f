package lineup

import "time"

// Lineup is an optional starters/bench ordering hint saved before a game.
type Lineup struct {
	StarterIDs []string
	BenchIDs   []string
	UpdatedAt  time.Time
}

// Order returns the hinted ordering: starters first, then bench.
func (l Lineup) Order() []string {
	out := make([]string, 0, len(l.StarterIDs)+len(l.BenchIDs))
	out = append(out, l.StarterIDs...)
	out = append(out, l.BenchIDs...)
	return out
}
