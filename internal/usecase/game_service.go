package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dimashiii/EzySubs-App/internal/domain/history"
	"github.com/dimashiii/EzySubs-App/internal/domain/lineup"
	"github.com/dimashiii/EzySubs-App/internal/domain/player"
	"github.com/dimashiii/EzySubs-App/internal/domain/rotation"
	"github.com/dimashiii/EzySubs-App/internal/domain/settings"
	"github.com/dimashiii/EzySubs-App/internal/platform/id"
	"github.com/dimashiii/EzySubs-App/internal/platform/logging"
	"github.com/dimashiii/EzySubs-App/internal/platform/resilience"
	"github.com/sourcegraph/conc/pool"
)

type GameServiceConfig struct {
	DefaultSettings  settings.Settings
	FinalizeOnLoad   bool
	TickInterval     time.Duration
	SnapshotInterval time.Duration
	SnapshotWorkers  int
	HistoryListLimit int
	StoreCircuit     resilience.CircuitBreakerConfig
}

// GameService owns the single live game of this process. Every operation on the
// rotation machine runs under one mutex, which makes the service the only
// execution context that can mutate game state.
type GameService struct {
	players      player.Repository
	lineups      lineup.Repository
	settingsRepo settings.Repository
	snapshots    rotation.SnapshotRepository
	history      history.Repository
	ids          id.Generator
	writer       *snapshotWriter
	logger       *logging.Logger
	cfg          GameServiceConfig
	now          func() time.Time

	mu        sync.Mutex
	machine   *rotation.Machine
	suspended bool
	archiveID string
	archived  *history.ArchivedGame
}

func NewGameService(
	players player.Repository,
	lineups lineup.Repository,
	settingsRepo settings.Repository,
	snapshots rotation.SnapshotRepository,
	historyRepo history.Repository,
	ids id.Generator,
	cfg GameServiceConfig,
	logger *logging.Logger,
) (*GameService, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 500 * time.Millisecond
	}
	if cfg.SnapshotInterval <= 0 {
		cfg.SnapshotInterval = 5 * time.Second
	}
	cfg.DefaultSettings = settings.Normalize(cfg.DefaultSettings)

	logger = logger.Named("game")
	writer, err := newSnapshotWriter(
		snapshots,
		cfg.SnapshotWorkers,
		resilience.NewCircuitBreakerFromConfig(cfg.StoreCircuit),
		logger.Named("snapshot"),
	)
	if err != nil {
		return nil, err
	}

	return &GameService{
		players:      players,
		lineups:      lineups,
		settingsRepo: settingsRepo,
		snapshots:    snapshots,
		history:      historyRepo,
		ids:          ids,
		writer:       writer,
		logger:       logger,
		cfg:          cfg,
		now:          time.Now,
	}, nil
}

// Start resumes the ongoing game when a usable snapshot exists and otherwise
// starts a fresh one from the selected roster. Calling Start again returns the
// current game unchanged.
func (s *GameService) Start(ctx context.Context) (rotation.View, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Start")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.machine != nil {
		return s.machine.View(), nil
	}

	now := s.now()
	m, res, ok, err := s.resume(ctx, now)
	if err != nil {
		return rotation.View{}, err
	}
	if ok {
		s.machine = m
		s.logger.InfoContext(ctx, "game resumed",
			"elapsed_while_closed", res.Elapsed,
			"game_clock", m.Clock().GameClock,
			"paused", m.Paused(),
		)
		s.afterTickLocked(ctx, res)

		if s.cfg.FinalizeOnLoad && m.Finalize(now) {
			s.logger.InfoContext(ctx, "finalizing resumed game on load")
			if err := s.archiveLocked(ctx); err != nil {
				s.logger.ErrorContext(ctx, "archive resumed game failed", "error", err)
			}
		} else {
			s.persistLocked()
		}
		return m.View(), nil
	}

	m, err = s.fresh(ctx, now)
	if err != nil {
		return rotation.View{}, err
	}
	s.machine = m
	s.persistLocked()
	return m.View(), nil
}

// resume loads the ongoing snapshot. A read failure is returned as is so the
// caller never starts a fresh game over a record it could not see.
func (s *GameService) resume(ctx context.Context, now time.Time) (*rotation.Machine, rotation.TickResult, bool, error) {
	snap, ok, err := s.snapshots.GetOngoing(ctx)
	switch {
	case errors.Is(err, rotation.ErrInvalidSnapshot):
		s.logger.WarnContext(ctx, "discarding unreadable snapshot", "error", err)
		s.discardOngoing(ctx)
		return nil, rotation.TickResult{}, false, nil
	case err != nil:
		s.logger.ErrorContext(ctx, "ongoing snapshot unavailable", "error", err)
		return nil, rotation.TickResult{}, false, fmt.Errorf("%w: read ongoing snapshot: %v", ErrDependencyUnavailable, err)
	case !ok:
		return nil, rotation.TickResult{}, false, nil
	}

	m, res, err := rotation.Restore(snap, now)
	if err != nil {
		s.logger.WarnContext(ctx, "discarding stale snapshot", "error", err, "version", snap.Version)
		s.discardOngoing(ctx)
		return nil, rotation.TickResult{}, false, nil
	}
	return m, res, true, nil
}

func (s *GameService) fresh(ctx context.Context, now time.Time) (*rotation.Machine, error) {
	roster, err := s.players.ListSelected(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list selected players: %v", ErrDependencyUnavailable, err)
	}

	var hint []string
	lu, ok, err := s.lineups.Get(ctx)
	switch {
	case err != nil:
		s.logger.WarnContext(ctx, "lineup unavailable, using selection order", "error", err)
	case ok:
		hint = lu.Order()
	}

	cfg := s.cfg.DefaultSettings
	stored, ok, err := s.settingsRepo.Get(ctx)
	switch {
	case err != nil:
		s.logger.WarnContext(ctx, "settings unavailable, using defaults", "error", err)
	case ok:
		cfg = stored
	}

	m := rotation.New(roster, hint, cfg, now)
	s.logger.InfoContext(ctx, "game started",
		"players", len(roster),
		"starters", player.IDs(m.Partition().Starters),
		"half_length_seconds", m.Settings().HalfLengthSeconds,
		"sub_interval_seconds", m.Settings().SubIntervalSeconds,
	)
	return m, nil
}

// Tick advances the game to the current wall-clock time. It does nothing while
// the client is backgrounded.
func (s *GameService) Tick(ctx context.Context) (rotation.TickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.machine == nil {
		return rotation.TickResult{}, ErrGameNotStarted
	}
	if s.suspended {
		return rotation.TickResult{}, nil
	}

	res := s.machine.Tick(s.now())
	s.afterTickLocked(ctx, res)
	return res, nil
}

// Run drives the tick and snapshot cadence until ctx is cancelled, then writes
// one final snapshot synchronously.
func (s *GameService) Run(ctx context.Context) error {
	tick := time.NewTicker(s.cfg.TickInterval)
	defer tick.Stop()
	persist := time.NewTicker(s.cfg.SnapshotInterval)
	defer persist.Stop()

	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultSnapshotWriteTimeout)
			err := s.Flush(flushCtx)
			cancel()
			if err != nil && !errors.Is(err, ErrGameNotStarted) {
				s.logger.Warn("final snapshot failed", "error", err)
			}
			return nil
		case <-tick.C:
			if _, err := s.Tick(ctx); err != nil && !errors.Is(err, ErrGameNotStarted) {
				s.logger.Warn("tick failed", "error", err)
			}
		case <-persist.C:
			s.periodic(ctx)
		}
	}
}

func (s *GameService) periodic(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.machine == nil || s.suspended {
		return
	}
	if s.machine.Ended() {
		if s.archived == nil {
			if err := s.archiveLocked(ctx); err != nil {
				s.logger.WarnContext(ctx, "archive retry failed", "error", err)
			}
		}
		return
	}
	s.persistLocked()
}

// Persist queues a snapshot of the current state. Once the game has ended
// there is no ongoing record to write.
func (s *GameService) Persist(ctx context.Context) error {
	_, span := startUsecaseSpan(ctx, "usecase.GameService.Persist")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.machine == nil {
		return ErrGameNotStarted
	}
	s.persistLocked()
	return nil
}

// Flush writes a snapshot synchronously.
func (s *GameService) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.machine == nil {
		s.mu.Unlock()
		return ErrGameNotStarted
	}
	if s.machine.Ended() {
		s.mu.Unlock()
		return nil
	}
	snap := s.machine.Snapshot(s.now())
	s.mu.Unlock()

	return s.writer.WriteNow(ctx, snap)
}

func (s *GameService) persistLocked() {
	if s.machine == nil || s.machine.Ended() {
		return
	}
	s.writer.Submit(s.machine.Snapshot(s.now()))
}

// Background records that the client app went to the background: elapsed time
// is flushed, a snapshot is queued and ticking stops until Foreground.
func (s *GameService) Background(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Background")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.machine == nil {
		return ErrGameNotStarted
	}
	s.machine.Flush(s.now())
	s.suspended = true
	s.persistLocked()
	s.logger.InfoContext(ctx, "game backgrounded", "game_clock", s.machine.Clock().GameClock)
	return nil
}

// Foreground resumes ticking and applies everything that became due while the
// client was away in one step.
func (s *GameService) Foreground(ctx context.Context) (rotation.TickResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Foreground")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.machine == nil {
		return rotation.TickResult{}, ErrGameNotStarted
	}
	s.suspended = false
	res := s.machine.Tick(s.now())
	s.afterTickLocked(ctx, res)
	s.logger.InfoContext(ctx, "game foregrounded", "elapsed", res.Elapsed)
	return res, nil
}

// Leave is called when the coach navigates away from the live game screen.
func (s *GameService) Leave(ctx context.Context) error {
	return s.Persist(ctx)
}

func (s *GameService) TogglePause(ctx context.Context) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.TogglePause")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.machine == nil {
		return false, ErrGameNotStarted
	}
	res, ok := s.machine.TogglePause(s.now())
	s.afterTickLocked(ctx, res)
	if ok {
		s.logger.InfoContext(ctx, "pause toggled", "paused", s.machine.Paused(), "reason", string(s.machine.PauseReason()))
		s.persistLocked()
	}
	return ok, nil
}

func (s *GameService) RequestReason(ctx context.Context, playerID string, side rotation.Side) (bool, error) {
	return s.apply(ctx, "RequestReason", false, func(m *rotation.Machine) bool {
		return m.RequestReason(strings.TrimSpace(playerID), side)
	})
}

func (s *GameService) StartDraft(ctx context.Context, playerID string, side rotation.Side, reason string) (bool, error) {
	return s.apply(ctx, "StartDraft", false, func(m *rotation.Machine) bool {
		return m.StartDraft(strings.TrimSpace(playerID), reason, side)
	})
}

func (s *GameService) Pick(ctx context.Context, playerID string, side rotation.Side) (bool, error) {
	return s.apply(ctx, "Pick", false, func(m *rotation.Machine) bool {
		return m.Pick(strings.TrimSpace(playerID), side)
	})
}

func (s *GameService) ConfirmDraft(ctx context.Context) (bool, error) {
	return s.apply(ctx, "ConfirmDraft", true, func(m *rotation.Machine) bool {
		draft, ok := m.Manual().(rotation.ConfirmPending)
		if !ok || !m.ConfirmDraft() {
			return false
		}
		s.logger.InfoContext(ctx, "manual substitution",
			"incoming", draft.IncomingID,
			"outgoing", draft.OutgoingID,
			"reason", draft.Reason,
		)
		return true
	})
}

func (s *GameService) CancelDraft(ctx context.Context) (bool, error) {
	return s.apply(ctx, "CancelDraft", false, func(m *rotation.Machine) bool {
		m.CancelDraft()
		return true
	})
}

// ApplyPendingSwap accepts the substitution proposed for the current break.
func (s *GameService) ApplyPendingSwap(ctx context.Context) (bool, error) {
	return s.apply(ctx, "ApplyPendingSwap", true, func(m *rotation.Machine) bool {
		swap := m.PendingSwap()
		if swap == nil || !m.ApplyPendingSwap() {
			return false
		}
		s.logger.InfoContext(ctx, "break substitution",
			"incoming", swap.Incoming.ID,
			"outgoing", swap.Outgoing.ID,
		)
		return true
	})
}

func (s *GameService) apply(ctx context.Context, name string, persist bool, fn func(*rotation.Machine) bool) (bool, error) {
	_, span := startUsecaseSpan(ctx, "usecase.GameService."+name)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.machine == nil {
		return false, ErrGameNotStarted
	}
	applied := fn(s.machine)
	if applied && persist {
		s.persistLocked()
	}
	return applied, nil
}

// EndGame finalizes on the coach's request and returns the archived game.
// Calling it again returns the same archive.
func (s *GameService) EndGame(ctx context.Context) (history.ArchivedGame, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.EndGame")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.machine == nil {
		return history.ArchivedGame{}, ErrGameNotStarted
	}
	if s.machine.End(s.now()) {
		s.logger.InfoContext(ctx, "game ended by coach")
	}
	if err := s.archiveLocked(ctx); err != nil {
		return history.ArchivedGame{}, err
	}
	return history.Clone(*s.archived), nil
}

// LivePreview builds and stores the in-progress record without finalizing.
// After the game ended it returns the archived game.
func (s *GameService) LivePreview(ctx context.Context) (history.ArchivedGame, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.LivePreview")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.machine == nil {
		return history.ArchivedGame{}, ErrGameNotStarted
	}
	if s.machine.Ended() {
		if s.archived != nil {
			return history.Clone(*s.archived), nil
		}
		return history.ArchivedGame{}, ErrGameEnded
	}

	now := s.now()
	s.machine.Flush(now)
	game := s.machine.Archive(history.LiveGameID, now)
	if err := s.snapshots.SaveLive(ctx, game); err != nil {
		s.logger.WarnContext(ctx, "save live preview failed", "error", err)
	}
	return game, nil
}

func (s *GameService) History(ctx context.Context, limit int) ([]history.ArchivedGame, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.History")
	defer span.End()

	if limit <= 0 {
		limit = s.cfg.HistoryListLimit
	}
	games, err := s.history.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return games, nil
}

func (s *GameService) View(_ context.Context) (rotation.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.machine == nil {
		return rotation.View{}, ErrGameNotStarted
	}
	return s.machine.View(), nil
}

// Close writes a last snapshot and stops the background writer.
func (s *GameService) Close(ctx context.Context) error {
	err := s.Flush(ctx)
	s.writer.Close()
	if errors.Is(err, ErrGameNotStarted) {
		return nil
	}
	return err
}

func (s *GameService) afterTickLocked(ctx context.Context, res rotation.TickResult) {
	if swap := res.Substitution; swap != nil && swap.Complete() {
		s.logger.InfoContext(ctx, "automatic substitution",
			"incoming", swap.Incoming.ID,
			"outgoing", swap.Outgoing.ID,
			"game_clock", s.machine.Clock().GameClock,
		)
	}
	if res.EnteredBreak != "" {
		s.logger.InfoContext(ctx, "break started",
			"reason", string(res.EnteredBreak),
			"label", s.machine.LastBreakLabel(),
			"half", s.machine.Half(),
			"quarter", s.machine.Quarter(),
		)
		s.persistLocked()
	}
	if res.Finalized {
		s.logger.InfoContext(ctx, "game finalized at end of final half")
		if err := s.archiveLocked(ctx); err != nil {
			s.logger.ErrorContext(ctx, "archive game failed", "error", err)
		}
	}
}

// archiveLocked stores the finished game in history once, then removes the
// ongoing and live records. A failed history write is retried by the
// snapshot cadence with the same id.
func (s *GameService) archiveLocked(ctx context.Context) error {
	if s.archived != nil {
		return nil
	}
	m := s.machine
	if !m.Ended() {
		return errors.New("game has not ended")
	}

	if s.archiveID == "" {
		gameID, err := s.ids.NewID()
		if err != nil {
			return fmt.Errorf("generate archive id: %w", err)
		}
		s.archiveID = gameID
	}
	s.writer.Seal()

	game := m.Archive(s.archiveID, m.EndedAt())
	if err := s.history.Prepend(ctx, game); err != nil {
		return fmt.Errorf("%w: prepend archived game: %v", ErrDependencyUnavailable, err)
	}
	m.MarkArchived(game.ID)
	s.archived = &game

	cleanup := pool.New().WithErrors().WithContext(ctx)
	cleanup.Go(func(ctx context.Context) error {
		if err := s.snapshots.DeleteOngoing(ctx); err != nil {
			return fmt.Errorf("delete ongoing snapshot: %w", err)
		}
		return nil
	})
	cleanup.Go(func(ctx context.Context) error {
		if err := s.snapshots.DeleteLive(ctx); err != nil {
			return fmt.Errorf("delete live preview: %w", err)
		}
		return nil
	})
	if err := cleanup.Wait(); err != nil {
		s.logger.WarnContext(ctx, "archive cleanup incomplete", "error", err)
	}

	s.logger.InfoContext(ctx, "game archived",
		"game_id", game.ID,
		"total_game_seconds", game.TotalGameSeconds,
		"players", len(game.Players),
	)
	return nil
}

func (s *GameService) discardOngoing(ctx context.Context) {
	if err := s.snapshots.DeleteOngoing(ctx); err != nil {
		s.logger.WarnContext(ctx, "delete stale snapshot failed", "error", err)
	}
}
