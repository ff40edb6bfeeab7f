package rotation

import (
	"errors"

	"github.com/dimashiii/EzySubs-App/internal/domain/player"
)

// MaxStarters is the number of on-court slots.
const MaxStarters = 5

var (
	ErrIncompatibleSnapshot = errors.New("incompatible snapshot version")
	ErrSnapshotEnded        = errors.New("snapshot belongs to an ended game")
	ErrInvalidSnapshot      = errors.New("invalid snapshot")
)

// Side identifies one half of the roster partition.
type Side string

const (
	SideCourt Side = "court"
	SideBench Side = "bench"
)

func (s Side) Valid() bool {
	return s == SideCourt || s == SideBench
}

func (s Side) Opposite() Side {
	if s == SideCourt {
		return SideBench
	}
	return SideCourt
}

// PauseReason tags why the clock is stopped. PauseNone with a paused machine is a
// manual pause. PauseGameEnded is terminal.
type PauseReason string

const (
	PauseNone         PauseReason = "none"
	PauseQuarterBreak PauseReason = "quarter-break"
	PauseHalfBreak    PauseReason = "half-break"
	PauseGameEnded    PauseReason = "game-ended"
)

func (r PauseReason) IsBreak() bool {
	return r == PauseQuarterBreak || r == PauseHalfBreak
}

// Swap pairs a bench player entering with a starter leaving. Either side may be
// nil when no proposal can be made.
type Swap struct {
	Incoming *player.Player `json:"incoming"`
	Outgoing *player.Player `json:"outgoing"`
}

// Complete reports whether both sides are present.
func (s Swap) Complete() bool {
	return s.Incoming != nil && s.Outgoing != nil
}

func cloneSwap(s *Swap) *Swap {
	if s == nil {
		return nil
	}
	out := &Swap{}
	if s.Incoming != nil {
		in := *s.Incoming
		out.Incoming = &in
	}
	if s.Outgoing != nil {
		o := *s.Outgoing
		out.Outgoing = &o
	}
	return out
}

// ClockState holds the two countdowns in whole seconds.
type ClockState struct {
	GameClock      int `json:"gameClock"`
	SubWindowClock int `json:"subWindowClock"`
}

// TickResult describes what a clock advance caused.
type TickResult struct {
	Elapsed      int
	Substitution *Swap
	EnteredBreak PauseReason
	Finalized    bool
}
