package rotation

import (
	"fmt"
	"strings"
	"time"

	"github.com/dimashiii/EzySubs-App/internal/domain/player"
	"github.com/dimashiii/EzySubs-App/internal/domain/settings"
)

const practiceDateLayout = "2006-01-02"

// Machine is the rotation state of one game.
type Machine struct {
	settings  settings.Settings
	roster    []player.Player
	partition Partition
	ledger    Ledger
	clock     ClockState
	pending   *Swap
	manual    ManualState

	paused           bool
	pauseReason      PauseReason
	quarter          int
	half             int
	quarterTriggered bool
	lastBreakLabel   string

	startedAt          time.Time
	practiceDate       string
	ended              bool
	endedAt            time.Time
	lastArchivedGameID string
	lastTick           time.Time
}

// New starts a fresh game at now with both clocks at their configured lengths.
func New(roster []player.Player, lineupHint []string, s settings.Settings, now time.Time) *Machine {
	s = settings.Normalize(s)
	partition := NewPartition(roster, lineupHint)
	full := append(append([]player.Player{}, partition.Starters...), partition.Bench...)

	return &Machine{
		settings:  s,
		roster:    dedupePlayers(roster),
		partition: partition,
		ledger:    NewLedger(player.IDs(full)),
		clock: ClockState{
			GameClock:      s.HalfLengthSeconds,
			SubWindowClock: s.SubIntervalSeconds,
		},
		manual:       ManualIdle{},
		pauseReason:  PauseNone,
		quarter:      1,
		half:         1,
		startedAt:    now,
		practiceDate: now.Format(practiceDateLayout),
		lastTick:     now,
	}
}

// Tick flushes elapsed time and then evaluates, in order: end of half, quarter
// break, and the substitution window.
func (m *Machine) Tick(now time.Time) TickResult {
	if m.ended {
		m.lastTick = now
		return TickResult{}
	}

	res := TickResult{Elapsed: m.Flush(now)}
	m.evaluate(now, &res)
	return res
}

func (m *Machine) evaluate(now time.Time, res *TickResult) {
	if m.paused || m.ended {
		return
	}

	if m.clock.GameClock == 0 {
		m.endHalf(now, res)
		return
	}

	if m.settings.QuarterBreakSeconds > 0 && !m.quarterTriggered && m.clock.GameClock <= m.settings.QuarterBreakSeconds {
		m.enterQuarterBreak(res)
		return
	}

	interval := m.settings.SubIntervalSeconds
	if interval <= 0 {
		return
	}

	if draftActive(m.manual) {
		if m.clock.SubWindowClock == 0 {
			m.clock.SubWindowClock = interval
		}
		return
	}

	if m.clock.SubWindowClock > 0 && m.clock.SubWindowClock <= m.settings.SubWarningSeconds {
		m.pending = m.planPtr()
	}

	if m.clock.SubWindowClock == 0 {
		swap := m.plan()
		if m.performSub(swap.Incoming, swap.Outgoing) {
			res.Substitution = cloneSwap(&swap)
		}
		m.pending = nil
		m.clock.SubWindowClock = interval
	}
}

func (m *Machine) endHalf(now time.Time, res *TickResult) {
	m.paused = true
	if m.half >= 2 {
		res.Finalized = m.Finalize(now)
		return
	}

	m.pauseReason = PauseHalfBreak
	m.lastBreakLabel = halfBreakLabel(m.half)
	m.pending = m.planPtr()
	m.clock.SubWindowClock = m.settings.SubIntervalSeconds
	m.half++
	m.quarter++
	m.quarterTriggered = false
	res.EnteredBreak = PauseHalfBreak
}

func (m *Machine) enterQuarterBreak(res *TickResult) {
	m.paused = true
	m.pauseReason = PauseQuarterBreak
	m.quarterTriggered = true
	m.lastBreakLabel = fmt.Sprintf("End of Q%d", m.quarter)
	m.quarter++
	m.clock.SubWindowClock = m.settings.SubIntervalSeconds
	m.pending = m.planPtr()
	res.EnteredBreak = PauseQuarterBreak
}

func halfBreakLabel(half int) string {
	if half == 1 {
		return "Halftime"
	}
	return fmt.Sprintf("End of H%d", half)
}

func (m *Machine) plan() Swap {
	return Plan(m.partition.Starters, m.partition.Bench, m.ledger.Seconds)
}

func (m *Machine) planPtr() *Swap {
	if draftActive(m.manual) {
		return nil
	}
	swap := m.plan()
	if !swap.Complete() {
		return nil
	}
	return &swap
}

// performSub applies a substitution. Both players gain one substitution. Court
// time is not touched; it only accrues through Flush.
func (m *Machine) performSub(incoming, outgoing *player.Player) bool {
	if incoming == nil || outgoing == nil {
		return false
	}
	if !m.partition.swap(incoming.ID, outgoing.ID) {
		return false
	}
	m.ledger.incSubs(incoming.ID)
	m.ledger.incSubs(outgoing.ID)
	return true
}

// PerformSub substitutes by id. It is a no-op after the game ended or when
// either id is not on its expected side.
func (m *Machine) PerformSub(incomingID, outgoingID string) bool {
	if m.ended {
		return false
	}
	in, ok := m.partition.On(SideBench, incomingID)
	if !ok {
		return false
	}
	out, ok := m.partition.On(SideCourt, outgoingID)
	if !ok {
		return false
	}
	return m.performSub(&in, &out)
}

// TogglePause resumes a paused game or pauses a running one. Resuming after the
// game clock reached zero starts the next half. A pause requested while running
// first flushes, and if that flush lands on a break or the end of the game the
// automatic pause is kept instead. It reports false once the game has ended.
func (m *Machine) TogglePause(now time.Time) (TickResult, bool) {
	if m.ended {
		return TickResult{}, false
	}

	if m.paused {
		if m.clock.GameClock == 0 {
			m.clock.GameClock = m.settings.HalfLengthSeconds
			m.clock.SubWindowClock = m.settings.SubIntervalSeconds
			m.quarterTriggered = false
		}
		m.paused = false
		m.pauseReason = PauseNone
		m.lastBreakLabel = ""
		m.pending = nil
		m.lastTick = now
		return TickResult{}, true
	}

	res := m.Tick(now)
	if m.paused || m.ended {
		return res, true
	}
	m.paused = true
	m.pauseReason = PauseNone
	m.lastTick = now
	return res, true
}

// Finalize ends the game. It is idempotent and reports whether this call ended it.
func (m *Machine) Finalize(now time.Time) bool {
	if m.ended {
		return false
	}

	m.Flush(now)
	m.ended = true
	m.paused = true
	m.pauseReason = PauseGameEnded
	m.lastBreakLabel = "Final"
	m.pending = nil
	m.manual = ManualIdle{}
	m.clock.SubWindowClock = m.settings.SubIntervalSeconds
	m.endedAt = now
	m.lastTick = now
	return true
}

// ApplyPendingSwap accepts the proposal shown during a quarter or half break.
func (m *Machine) ApplyPendingSwap() bool {
	if m.ended || !m.paused || !m.pauseReason.IsBreak() || m.pending == nil {
		return false
	}
	if _, idle := m.manual.(ManualIdle); !idle {
		return false
	}

	swap := *m.pending
	if !m.performSub(swap.Incoming, swap.Outgoing) {
		return false
	}
	m.pending = nil
	return true
}

// RequestReason records that the coach tapped a player and is being asked why.
func (m *Machine) RequestReason(playerID string, side Side) bool {
	if m.ended || !side.Valid() {
		return false
	}
	switch m.manual.(type) {
	case ManualIdle, ReasonPrompt:
	default:
		return false
	}
	if _, ok := m.partition.On(side, playerID); !ok {
		return false
	}

	m.manual = ReasonPrompt{PlayerID: playerID, Side: side}
	return true
}

// StartDraft opens a manual substitution with one side filled. Automatic
// proposals are cleared while the draft exists. A second draft is refused until
// the current one is confirmed or cancelled.
func (m *Machine) StartDraft(playerID, reason string, side Side) bool {
	reason = strings.TrimSpace(reason)
	if m.ended || !side.Valid() || reason == "" {
		return false
	}
	if draftActive(m.manual) {
		return false
	}
	if _, ok := m.partition.On(side, playerID); !ok {
		return false
	}

	m.manual = PartialDraft{Side: side, PlayerID: playerID, Reason: reason}
	m.pending = nil
	return true
}

// Pick handles a tap while a draft is open. A tap on the side already filled
// replaces that player; a tap on the other side completes the draft.
func (m *Machine) Pick(playerID string, side Side) bool {
	if m.ended || !side.Valid() {
		return false
	}
	if _, ok := m.partition.On(side, playerID); !ok {
		return false
	}

	switch d := m.manual.(type) {
	case PartialDraft:
		if side == d.Side {
			d.PlayerID = playerID
			m.manual = d
			return true
		}
		c := ConfirmPending{Reason: d.Reason}
		if d.Side == SideCourt {
			c.OutgoingID, c.IncomingID = d.PlayerID, playerID
		} else {
			c.IncomingID, c.OutgoingID = d.PlayerID, playerID
		}
		m.manual = c
		return true
	case ConfirmPending:
		if side == SideCourt {
			d.OutgoingID = playerID
		} else {
			d.IncomingID = playerID
		}
		m.manual = d
		return true
	default:
		return false
	}
}

// ConfirmDraft applies a complete draft and clears it. The substitution window
// restarts so the next automatic proposal is a full interval away.
func (m *Machine) ConfirmDraft() bool {
	if m.ended {
		return false
	}
	c, ok := m.manual.(ConfirmPending)
	if !ok {
		return false
	}

	m.manual = ManualIdle{}
	if !m.PerformSub(c.IncomingID, c.OutgoingID) {
		return false
	}
	m.pending = nil
	if m.settings.SubIntervalSeconds > 0 {
		m.clock.SubWindowClock = m.settings.SubIntervalSeconds
	}
	return true
}

// CancelDraft drops any prompt or draft. It always succeeds.
func (m *Machine) CancelDraft() {
	m.manual = ManualIdle{}
}

func (m *Machine) Settings() settings.Settings { return m.settings }
func (m *Machine) Clock() ClockState           { return m.clock }
func (m *Machine) Partition() Partition        { return m.partition.Clone() }
func (m *Machine) Seconds(id string) int       { return m.ledger.Seconds(id) }
func (m *Machine) Subs(id string) int          { return m.ledger.Subs(id) }
func (m *Machine) PendingSwap() *Swap          { return cloneSwap(m.pending) }
func (m *Machine) Manual() ManualState         { return m.manual }
func (m *Machine) Paused() bool                { return m.paused }
func (m *Machine) PauseReason() PauseReason    { return m.pauseReason }
func (m *Machine) Quarter() int                { return m.quarter }
func (m *Machine) Half() int                   { return m.half }
func (m *Machine) LastBreakLabel() string      { return m.lastBreakLabel }
func (m *Machine) StartedAt() time.Time        { return m.startedAt }
func (m *Machine) EndedAt() time.Time          { return m.endedAt }
func (m *Machine) Ended() bool                 { return m.ended }
func (m *Machine) LastArchivedGameID() string  { return m.lastArchivedGameID }

// Roster is the full participating roster in its original order.
func (m *Machine) Roster() []player.Player {
	return append([]player.Player{}, m.roster...)
}

// MarkArchived records the id under which the finished game was archived.
func (m *Machine) MarkArchived(id string) {
	m.lastArchivedGameID = id
}

// Phase is the coarse lifecycle of a game.
type Phase string

const (
	PhaseActive Phase = "active"
	PhaseEnded  Phase = "ended"
)

func (m *Machine) Phase() Phase {
	if m.ended {
		return PhaseEnded
	}
	return PhaseActive
}

// End is the coach-initiated finalize.
func (m *Machine) End(now time.Time) bool {
	return m.Finalize(now)
}
