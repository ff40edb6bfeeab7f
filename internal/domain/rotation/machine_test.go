package rotation

import (
	"slices"
	"testing"
	"time"

	"github.com/dimashiii/EzySubs-App/internal/domain/player"
)

func TestNew_SplitsByLineupHint(t *testing.T) {
	m := New(testRoster(7), []string{"p7", "p3", "ghost", "p3"}, testSettings(600, 240, 30, 0), gameStart)

	if got, want := starterIDs(m), []string{"p7", "p3", "p1", "p2", "p4"}; !slices.Equal(got, want) {
		t.Fatalf("unexpected starters: got=%v want=%v", got, want)
	}
	if got, want := benchIDs(m), []string{"p5", "p6"}; !slices.Equal(got, want) {
		t.Fatalf("unexpected bench: got=%v want=%v", got, want)
	}
	if c := m.Clock(); c.GameClock != 600 || c.SubWindowClock != 240 {
		t.Fatalf("unexpected initial clocks: %+v", c)
	}
	for _, p := range m.Roster() {
		if m.Seconds(p.ID) != 0 || m.Subs(p.ID) != 0 {
			t.Fatalf("ledger not zeroed for %s", p.ID)
		}
	}
}

func TestNew_SmallRosterHasNoBench(t *testing.T) {
	m := New(testRoster(3), nil, testSettings(600, 60, 30, 0), gameStart)
	now := gameStart

	results := runSeconds(t, m, &now, 180)
	if n := countSubs(results); n != 0 {
		t.Fatalf("expected no substitutions without a bench, got %d", n)
	}
	if m.PendingSwap() != nil {
		t.Fatalf("expected no pending swap without a bench")
	}
	if got := m.Clock().GameClock; got != 420 {
		t.Fatalf("clock kept running incorrectly: %d", got)
	}
}

func TestScenario_BasicAutoSub(t *testing.T) {
	m := New(testRoster(6), nil, testSettings(600, 60, 30, 0), gameStart)
	now := gameStart

	results := runSeconds(t, m, &now, 60)

	if n := countSubs(results); n != 1 {
		t.Fatalf("expected exactly one substitution, got %d", n)
	}
	if got, want := benchIDs(m), []string{"p1"}; !slices.Equal(got, want) {
		t.Fatalf("unexpected bench after sub: %v", got)
	}
	if got, want := starterIDs(m), []string{"p2", "p3", "p4", "p5", "p6"}; !slices.Equal(got, want) {
		t.Fatalf("unexpected starters after sub: %v", got)
	}
	if m.Subs("p1") != 1 || m.Subs("p6") != 1 {
		t.Fatalf("unexpected sub counts: p1=%d p6=%d", m.Subs("p1"), m.Subs("p6"))
	}
	if m.Seconds("p1") != 60 || m.Seconds("p6") != 0 {
		t.Fatalf("unexpected court time: p1=%d p6=%d", m.Seconds("p1"), m.Seconds("p6"))
	}
	if m.PendingSwap() != nil {
		t.Fatalf("pending swap should be cleared after execution")
	}
	if got := m.Clock().SubWindowClock; got != 60 {
		t.Fatalf("sub window not reset: %d", got)
	}
}

func TestScenario_BasicAutoSubInSingleFlush(t *testing.T) {
	m := New(testRoster(6), nil, testSettings(600, 60, 30, 0), gameStart)

	res := m.Tick(gameStart.Add(60 * time.Second))

	if res.Substitution == nil {
		t.Fatalf("expected a substitution when the window expires inside one flush")
	}
	if res.Substitution.Incoming.ID != "p6" || res.Substitution.Outgoing.ID != "p1" {
		t.Fatalf("unexpected swap: %+v", res.Substitution)
	}
}

func TestWarningWindowKeepsProposalCurrent(t *testing.T) {
	m := New(testRoster(6), nil, testSettings(600, 60, 30, 0), gameStart)
	now := gameStart

	runSeconds(t, m, &now, 29)
	if m.PendingSwap() != nil {
		t.Fatalf("no proposal expected before the warning window")
	}

	runSeconds(t, m, &now, 1)
	pending := m.PendingSwap()
	if pending == nil {
		t.Fatalf("expected a proposal at the start of the warning window")
	}
	if pending.Incoming.ID != "p6" || pending.Outgoing.ID != "p1" {
		t.Fatalf("unexpected proposal: in=%s out=%s", pending.Incoming.ID, pending.Outgoing.ID)
	}
	if !m.View().InWarningWindow {
		t.Fatalf("view should report the warning window")
	}
}

func TestScenario_QuarterHalfEnd(t *testing.T) {
	m := New(testRoster(6), nil, testSettings(480, 240, 30, 240), gameStart)
	now := gameStart

	runSeconds(t, m, &now, 1000)
	if m.PauseReason() != PauseQuarterBreak {
		t.Fatalf("expected quarter break, got %s", m.PauseReason())
	}
	if got := m.Clock().GameClock; got != 240 {
		t.Fatalf("quarter break fired at %d", got)
	}
	if m.Quarter() != 2 {
		t.Fatalf("quarter counter %d, want 2", m.Quarter())
	}
	if m.PendingSwap() == nil {
		t.Fatalf("expected a break proposal")
	}
	if m.LastBreakLabel() != "End of Q1" {
		t.Fatalf("unexpected label %q", m.LastBreakLabel())
	}

	if _, ok := m.TogglePause(now); !ok {
		t.Fatalf("resume refused")
	}
	if m.PendingSwap() != nil || m.LastBreakLabel() != "" {
		t.Fatalf("break state not cleared on resume")
	}

	runSeconds(t, m, &now, 1000)
	if m.PauseReason() != PauseHalfBreak {
		t.Fatalf("expected half break, got %s", m.PauseReason())
	}
	if m.Half() != 2 || m.Ended() {
		t.Fatalf("first half end must not finalize: half=%d ended=%v", m.Half(), m.Ended())
	}

	if _, ok := m.TogglePause(now); !ok {
		t.Fatalf("resume refused")
	}
	if c := m.Clock(); c.GameClock != 480 || c.SubWindowClock != 240 {
		t.Fatalf("clocks not reset for second half: %+v", c)
	}

	runSeconds(t, m, &now, 1000)
	if m.PauseReason() != PauseQuarterBreak || m.Quarter() != 4 {
		t.Fatalf("expected second-half quarter break, got %s quarter=%d", m.PauseReason(), m.Quarter())
	}
	m.TogglePause(now)

	results := runSeconds(t, m, &now, 1000)
	if !m.Ended() || m.PauseReason() != PauseGameEnded {
		t.Fatalf("expected game to end, reason=%s", m.PauseReason())
	}
	if !results[len(results)-1].Finalized {
		t.Fatalf("last tick should report finalization")
	}

	game := m.Archive("g1", m.EndedAt())
	if game.TotalGameSeconds != 960 {
		t.Fatalf("total game seconds %d, want 960", game.TotalGameSeconds)
	}
}

func TestQuarterBreakFiresOncePerHalf(t *testing.T) {
	m := New(testRoster(6), nil, testSettings(480, 600, 30, 240), gameStart)
	now := gameStart

	runSeconds(t, m, &now, 240)
	m.TogglePause(now)
	runSeconds(t, m, &now, 10)

	if m.Paused() {
		t.Fatalf("quarter break fired twice in one half")
	}
}

func TestScenario_ManualSwapOverridesAutoPlan(t *testing.T) {
	m := New(testRoster(6), nil, testSettings(600, 60, 30, 0), gameStart)
	now := gameStart

	runSeconds(t, m, &now, 35)
	if m.PendingSwap() == nil {
		t.Fatalf("expected an auto proposal inside the warning window")
	}

	if !m.RequestReason("p3", SideCourt) {
		t.Fatalf("reason prompt refused")
	}
	if !m.StartDraft("p3", "Injury", SideCourt) {
		t.Fatalf("draft refused")
	}
	if m.PendingSwap() != nil {
		t.Fatalf("starting a draft must clear the auto proposal")
	}
	if !m.Pick("p6", SideBench) {
		t.Fatalf("pick refused")
	}
	c, ok := m.Manual().(ConfirmPending)
	if !ok {
		t.Fatalf("expected confirm stage, got %s", m.Manual().Stage())
	}
	if c.IncomingID != "p6" || c.OutgoingID != "p3" || c.Reason != "Injury" {
		t.Fatalf("unexpected confirm: %+v", c)
	}

	if !m.ConfirmDraft() {
		t.Fatalf("confirm refused")
	}
	if m.ConfirmDraft() {
		t.Fatalf("second confirm must be a no-op")
	}

	if m.Subs("p3") != 1 || m.Subs("p6") != 1 {
		t.Fatalf("substitution not applied exactly once: p3=%d p6=%d", m.Subs("p3"), m.Subs("p6"))
	}
	if got, want := benchIDs(m), []string{"p3"}; !slices.Equal(got, want) {
		t.Fatalf("unexpected bench: %v", got)
	}
	if m.PendingSwap() != nil {
		t.Fatalf("auto proposal must stay empty right after a manual swap")
	}
	if _, idle := m.Manual().(ManualIdle); !idle {
		t.Fatalf("draft not cleared")
	}
	if got := m.Clock().SubWindowClock; got != 60 {
		t.Fatalf("sub window not restarted: %d", got)
	}
}

func TestDraft_SameSideReplacesCandidate(t *testing.T) {
	m := New(testRoster(7), nil, testSettings(600, 240, 30, 0), gameStart)

	m.StartDraft("p1", "Tired", SideCourt)
	if !m.Pick("p2", SideCourt) {
		t.Fatalf("same-side pick refused")
	}
	d, ok := m.Manual().(PartialDraft)
	if !ok || d.PlayerID != "p2" || d.Side != SideCourt {
		t.Fatalf("expected outgoing candidate replaced, got %+v", m.Manual())
	}

	m.Pick("p6", SideBench)
	m.Pick("p7", SideBench)
	c := m.Manual().(ConfirmPending)
	if c.IncomingID != "p7" || c.OutgoingID != "p2" {
		t.Fatalf("unexpected confirm after replacement: %+v", c)
	}
}

func TestDraft_StartedFromBench(t *testing.T) {
	m := New(testRoster(6), nil, testSettings(600, 240, 30, 0), gameStart)

	m.StartDraft("p6", "Matchup", SideBench)
	m.Pick("p4", SideCourt)

	c := m.Manual().(ConfirmPending)
	if c.IncomingID != "p6" || c.OutgoingID != "p4" {
		t.Fatalf("unexpected confirm: %+v", c)
	}
}

func TestDraft_OverlappingStartIgnored(t *testing.T) {
	m := New(testRoster(7), nil, testSettings(600, 240, 30, 0), gameStart)

	if !m.StartDraft("p1", "Foul trouble", SideCourt) {
		t.Fatalf("first draft refused")
	}
	if m.StartDraft("p2", "Rest", SideCourt) {
		t.Fatalf("overlapping draft must be refused")
	}
	if m.RequestReason("p2", SideCourt) {
		t.Fatalf("reason prompt must be refused while a draft exists")
	}
	d := m.Manual().(PartialDraft)
	if d.PlayerID != "p1" || d.Reason != "Foul trouble" {
		t.Fatalf("existing draft was changed: %+v", d)
	}
}

func TestDraft_InvalidTargetsIgnored(t *testing.T) {
	m := New(testRoster(6), nil, testSettings(600, 240, 30, 0), gameStart)

	if m.StartDraft("p6", "Rest", SideCourt) {
		t.Fatalf("bench player accepted as court side")
	}
	if m.StartDraft("p1", "   ", SideCourt) {
		t.Fatalf("blank reason accepted")
	}
	if m.Pick("p6", SideBench) {
		t.Fatalf("pick accepted without a draft")
	}
	if m.StartDraft("nobody", "Rest", SideBench) {
		t.Fatalf("unknown player accepted")
	}
}

func TestDraft_CancelLeavesRosterUntouched(t *testing.T) {
	m := New(testRoster(6), nil, testSettings(600, 240, 30, 0), gameStart)
	before := m.Partition()

	m.StartDraft("p1", "Injury", SideCourt)
	m.Pick("p6", SideBench)
	m.CancelDraft()

	if _, idle := m.Manual().(ManualIdle); !idle {
		t.Fatalf("draft not cleared")
	}
	if !slices.Equal(starterIDs(m), player.IDs(before.Starters)) || m.Subs("p1") != 0 {
		t.Fatalf("cancel mutated the roster")
	}
}

func TestDraft_SuppressesAutoSub(t *testing.T) {
	m := New(testRoster(6), nil, testSettings(600, 60, 30, 0), gameStart)
	now := gameStart

	m.StartDraft("p2", "Rest", SideCourt)
	results := runSeconds(t, m, &now, 60)

	if n := countSubs(results); n != 0 {
		t.Fatalf("auto sub ran during a draft")
	}
	if m.PendingSwap() != nil {
		t.Fatalf("auto proposal computed during a draft")
	}
	if got := m.Clock().SubWindowClock; got != 60 {
		t.Fatalf("expired window not reset during draft: %d", got)
	}
}

func TestRosterConservationAcrossManySubs(t *testing.T) {
	m := New(testRoster(9), nil, testSettings(3600, 60, 30, 0), gameStart)
	want := idSet(m.Partition())
	now := gameStart

	for i := 0; i < 25; i++ {
		runSeconds(t, m, &now, 60)
		p := m.Partition()
		if len(p.Starters) > MaxStarters {
			t.Fatalf("starters exceeded bound: %d", len(p.Starters))
		}
		if p.Len() != len(want) {
			t.Fatalf("player count changed: %d", p.Len())
		}
		got := idSet(p)
		for id := range want {
			if _, ok := got[id]; !ok {
				t.Fatalf("player %s lost", id)
			}
		}
	}

	totalSubs := 0
	for _, pl := range m.Roster() {
		totalSubs += m.Subs(pl.ID)
	}
	if totalSubs != 50 {
		t.Fatalf("expected 25 substitutions (50 counts), got %d counts", totalSubs)
	}
}

func TestTogglePause_ManualPauseDoesNotConsumeTime(t *testing.T) {
	m := New(testRoster(6), nil, testSettings(600, 240, 30, 0), gameStart)
	now := gameStart.Add(10 * time.Second)

	m.TogglePause(now)
	if !m.Paused() || m.PauseReason() != PauseNone {
		t.Fatalf("expected manual pause without reason, got paused=%v reason=%s", m.Paused(), m.PauseReason())
	}

	now = now.Add(5 * time.Minute)
	m.Tick(now)
	m.TogglePause(now)
	m.Tick(now.Add(2 * time.Second))

	if got := m.Clock().GameClock; got != 588 {
		t.Fatalf("game clock %d, want 588", got)
	}
}

func TestFinalize_IdempotentAndTerminal(t *testing.T) {
	m := New(testRoster(6), nil, testSettings(600, 240, 30, 0), gameStart)
	now := gameStart.Add(90 * time.Second)

	if !m.Finalize(now) {
		t.Fatalf("first finalize refused")
	}
	if m.Finalize(now.Add(time.Minute)) {
		t.Fatalf("second finalize must be a no-op")
	}
	if !m.EndedAt().Equal(now) {
		t.Fatalf("end time moved on second finalize")
	}
	if m.Seconds("p1") != 90 {
		t.Fatalf("final flush missing: %d", m.Seconds("p1"))
	}

	if _, ok := m.TogglePause(now); ok {
		t.Fatalf("toggle accepted after end")
	}
	if m.PerformSub("p6", "p1") {
		t.Fatalf("substitution accepted after end")
	}
	if m.StartDraft("p1", "Injury", SideCourt) {
		t.Fatalf("draft accepted after end")
	}
	m.Tick(now.Add(time.Hour))
	if m.Seconds("p1") != 90 || m.PauseReason() != PauseGameEnded {
		t.Fatalf("ended game changed state")
	}
}

func TestApplyPendingSwapDuringBreak(t *testing.T) {
	m := New(testRoster(6), nil, testSettings(480, 600, 30, 240), gameStart)
	now := gameStart

	if m.ApplyPendingSwap() {
		t.Fatalf("proposal applied while running")
	}

	runSeconds(t, m, &now, 240)
	if m.PauseReason() != PauseQuarterBreak {
		t.Fatalf("expected quarter break")
	}
	if !m.ApplyPendingSwap() {
		t.Fatalf("break proposal refused")
	}
	if m.Subs("p6") != 1 || m.Subs("p1") != 1 {
		t.Fatalf("break swap not applied")
	}
	if m.PendingSwap() != nil || m.ApplyPendingSwap() {
		t.Fatalf("proposal should be consumed")
	}
}

func TestArchive_TotalSecondsAtLeastOne(t *testing.T) {
	m := New(testRoster(2), nil, testSettings(600, 240, 30, 0), gameStart)

	game := m.Archive("g", gameStart.Add(200*time.Millisecond))
	if game.TotalGameSeconds != 1 {
		t.Fatalf("total %d, want 1", game.TotalGameSeconds)
	}
	if len(game.Players) != 2 || game.Players[0].ID != "p1" {
		t.Fatalf("unexpected player lines: %+v", game.Players)
	}
	if game.PracticeDate != "2026-03-14" {
		t.Fatalf("unexpected practice date %q", game.PracticeDate)
	}
}
