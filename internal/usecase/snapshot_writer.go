package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dimashiii/EzySubs-App/internal/domain/rotation"
	"github.com/dimashiii/EzySubs-App/internal/platform/logging"
	"github.com/dimashiii/EzySubs-App/internal/platform/resilience"
	"github.com/panjf2000/ants/v2"
)

const defaultSnapshotWriteTimeout = 3 * time.Second

// snapshotWriter persists ongoing-game snapshots off the game loop. Only the
// newest submitted snapshot is kept; writes are serialized so an older snapshot
// never lands after a newer one. Failures are logged and the next submit retries.
type snapshotWriter struct {
	repo    rotation.SnapshotRepository
	pool    *ants.Pool
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
	timeout time.Duration

	latest   atomic.Pointer[rotation.Snapshot]
	writeMu  sync.Mutex
	sealed   atomic.Bool
	inFlight sync.WaitGroup
}

func newSnapshotWriter(
	repo rotation.SnapshotRepository,
	workers int,
	breaker *resilience.CircuitBreaker,
	logger *logging.Logger,
) (*snapshotWriter, error) {
	if workers < 1 {
		workers = 1
	}
	pool, err := ants.NewPool(workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("create snapshot worker pool: %w", err)
	}
	if logger == nil {
		logger = logging.Default()
	}

	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("snapshot store circuit changed", "from", string(from), "to", string(to))
	})

	return &snapshotWriter{
		repo:    repo,
		pool:    pool,
		breaker: breaker,
		logger:  logger,
		timeout: defaultSnapshotWriteTimeout,
	}, nil
}

// Submit queues snap for an asynchronous write. It never blocks on I/O.
func (w *snapshotWriter) Submit(snap rotation.Snapshot) {
	if w.sealed.Load() {
		return
	}
	w.latest.Store(&snap)

	w.inFlight.Add(1)
	if err := w.pool.Submit(func() {
		defer w.inFlight.Done()
		w.drain()
	}); err != nil {
		w.inFlight.Done()
		// The snapshot stays in the slot for the worker that is already draining.
		if !errors.Is(err, ants.ErrPoolOverload) {
			w.logger.Warn("snapshot write not scheduled", "error", err)
		}
	}
}

// WriteNow writes snap synchronously, superseding anything still queued.
func (w *snapshotWriter) WriteNow(ctx context.Context, snap rotation.Snapshot) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	if w.sealed.Load() {
		return nil
	}
	w.latest.Store(nil)
	return w.write(ctx, snap)
}

// Seal drops any queued snapshot, refuses later submits and waits for a write
// already in progress. After Seal returns nothing will touch the ongoing record.
func (w *snapshotWriter) Seal() {
	w.sealed.Store(true)
	w.latest.Store(nil)

	w.writeMu.Lock()
	defer w.writeMu.Unlock()
}

// Close waits for scheduled writes and releases the pool.
func (w *snapshotWriter) Close() {
	w.inFlight.Wait()
	w.pool.Release()
}

// drain keeps writing until the slot is empty, so a snapshot that arrived while
// the pool was saturated still goes out.
func (w *snapshotWriter) drain() {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	for {
		snap := w.latest.Swap(nil)
		if snap == nil || w.sealed.Load() {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
		err := w.write(ctx, *snap)
		cancel()
		if err != nil {
			w.logger.Warn("snapshot write failed", "error", err, "saved_at", snap.SavedAt)
			return
		}
	}
}

func (w *snapshotWriter) write(ctx context.Context, snap rotation.Snapshot) error {
	err := w.breaker.Execute(ctx, func(ctx context.Context) error {
		return w.repo.SaveOngoing(ctx, snap)
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return fmt.Errorf("%w: %v", ErrDependencyUnavailable, err)
	}
	if err != nil {
		return fmt.Errorf("save ongoing snapshot: %w", err)
	}
	return nil
}
