package rotation

import (
	"fmt"
	"time"

	"github.com/dimashiii/EzySubs-App/internal/domain/player"
	"github.com/dimashiii/EzySubs-App/internal/domain/settings"
)

// SnapshotVersion is bumped whenever the persisted field set changes shape.
// Snapshots carrying any other version are discarded.
const SnapshotVersion = 1

// Snapshot is the persisted form of a Machine, used to resume an interrupted game.
// Timestamps are unix milliseconds.
type Snapshot struct {
	Version            int               `json:"version"`
	Starters           []player.Player   `json:"starters"`
	Bench              []player.Player   `json:"bench"`
	Roster             []player.Player   `json:"roster"`
	CourtSeconds       map[string]int    `json:"courtSeconds"`
	SubCounts          map[string]int    `json:"subCounts"`
	GameClock          int               `json:"gameClock"`
	SubWindowClock     int               `json:"subWindowClock"`
	PendingSwap        *Swap             `json:"pendingSwap"`
	Paused             bool              `json:"paused"`
	PauseReason        PauseReason       `json:"pauseReason"`
	Quarter            int               `json:"quarter"`
	Half               int               `json:"half"`
	QuarterTriggered   bool              `json:"quarterTriggered"`
	LastBreakLabel     string            `json:"lastBreakLabel"`
	Settings           settings.Settings `json:"settings"`
	PracticeDate       string            `json:"practiceDate"`
	GameStartedAt      int64             `json:"gameStartedAt"`
	GameEnded          bool              `json:"gameEnded"`
	LastArchivedGameID string            `json:"lastArchivedGameId"`
	SavedAt            int64             `json:"savedAt"`
}

// Snapshot flushes elapsed time and captures the full state at now.
func (m *Machine) Snapshot(now time.Time) Snapshot {
	m.Flush(now)

	return Snapshot{
		Version:            SnapshotVersion,
		Starters:           append([]player.Player{}, m.partition.Starters...),
		Bench:              append([]player.Player{}, m.partition.Bench...),
		Roster:             append([]player.Player{}, m.roster...),
		CourtSeconds:       m.ledger.secondsMap(),
		SubCounts:          m.ledger.subsMap(),
		GameClock:          m.clock.GameClock,
		SubWindowClock:     m.clock.SubWindowClock,
		PendingSwap:        cloneSwap(m.pending),
		Paused:             m.paused,
		PauseReason:        m.pauseReason,
		Quarter:            m.quarter,
		Half:               m.half,
		QuarterTriggered:   m.quarterTriggered,
		LastBreakLabel:     m.lastBreakLabel,
		Settings:           m.settings,
		PracticeDate:       m.practiceDate,
		GameStartedAt:      toMillis(m.startedAt),
		GameEnded:          m.ended,
		LastArchivedGameID: m.lastArchivedGameID,
		SavedAt:            toMillis(now),
	}
}

// Restore rebuilds a Machine from a snapshot. Stored settings are normalized
// the same way New does it. When the snapshot was taken while
// the clock was running, the time between SavedAt and now is applied at once so
// time spent with the process closed is neither dropped nor counted twice.
func Restore(snap Snapshot, now time.Time) (*Machine, TickResult, error) {
	if snap.Version != SnapshotVersion {
		return nil, TickResult{}, fmt.Errorf("%w: got %d, want %d", ErrIncompatibleSnapshot, snap.Version, SnapshotVersion)
	}
	if snap.GameEnded || snap.PauseReason == PauseGameEnded {
		return nil, TickResult{}, ErrSnapshotEnded
	}
	if len(snap.Starters) > MaxStarters {
		return nil, TickResult{}, fmt.Errorf("%w: %d starters", ErrInvalidSnapshot, len(snap.Starters))
	}
	if snap.GameClock < 0 || snap.SubWindowClock < 0 {
		return nil, TickResult{}, fmt.Errorf("%w: negative clock", ErrInvalidSnapshot)
	}

	roster := snap.Roster
	if len(roster) == 0 {
		roster = append(append([]player.Player{}, snap.Starters...), snap.Bench...)
	}

	pauseReason := snap.PauseReason
	if pauseReason == "" {
		pauseReason = PauseNone
	}

	m := &Machine{
		settings: settings.Normalize(snap.Settings),
		roster:   dedupePlayers(roster),
		partition: Partition{
			Starters: append([]player.Player{}, snap.Starters...),
			Bench:    append([]player.Player{}, snap.Bench...),
		},
		ledger: Ledger{
			seconds: copyCounts(snap.CourtSeconds),
			subs:    copyCounts(snap.SubCounts),
		},
		clock: ClockState{
			GameClock:      snap.GameClock,
			SubWindowClock: snap.SubWindowClock,
		},
		pending:            cloneSwap(snap.PendingSwap),
		manual:             ManualIdle{},
		paused:             snap.Paused,
		pauseReason:        pauseReason,
		quarter:            max(1, snap.Quarter),
		half:               max(1, snap.Half),
		quarterTriggered:   snap.QuarterTriggered,
		lastBreakLabel:     snap.LastBreakLabel,
		startedAt:          fromMillis(snap.GameStartedAt),
		practiceDate:       snap.PracticeDate,
		lastArchivedGameID: snap.LastArchivedGameID,
	}
	for _, p := range m.roster {
		m.ledger.ensure(p.ID)
	}
	if m.practiceDate == "" {
		m.practiceDate = m.startedAt.Format(practiceDateLayout)
	}

	if m.paused {
		m.lastTick = now
		return m, TickResult{}, nil
	}

	m.lastTick = fromMillis(snap.SavedAt)
	if m.lastTick.IsZero() {
		m.lastTick = now
	}
	return m, m.Tick(now), nil
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
