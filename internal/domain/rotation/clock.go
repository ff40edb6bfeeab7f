package rotation

import "time"

// Flush converts the wall-clock time since the last anchor into whole seconds,
// counts both clocks down by that amount and credits every current starter.
// The anchor advances by exactly the consumed seconds so sub-second remainders
// carry over to the next call. While paused or ended the anchor is only moved
// to now. Flush returns the number of seconds consumed.
func (m *Machine) Flush(now time.Time) int {
	if m.paused || m.ended || now.Before(m.lastTick) {
		m.lastTick = now
		return 0
	}

	elapsed := int(now.Sub(m.lastTick) / time.Second)
	if elapsed < 1 {
		return 0
	}

	m.clock.GameClock = max(0, m.clock.GameClock-elapsed)
	m.clock.SubWindowClock = max(0, m.clock.SubWindowClock-elapsed)
	for _, p := range m.partition.Starters {
		m.ledger.addSeconds(p.ID, elapsed)
	}
	m.lastTick = m.lastTick.Add(time.Duration(elapsed) * time.Second)

	return elapsed
}

// LastTick is the current clock anchor.
func (m *Machine) LastTick() time.Time {
	return m.lastTick
}
