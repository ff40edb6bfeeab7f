package redis

import (
	"context"
	"errors"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/dimashiii/EzySubs-App/internal/domain/history"
	"github.com/dimashiii/EzySubs-App/internal/domain/rotation"
	goredis "github.com/redis/go-redis/v9"
)

// SnapshotRepository stores the ongoing snapshot without expiry and the live
// preview with liveTTL.
type SnapshotRepository struct {
	client  goredis.Cmdable
	keys    keys
	liveTTL time.Duration
}

func NewSnapshotRepository(client goredis.Cmdable, prefix string, liveTTL time.Duration) *SnapshotRepository {
	return &SnapshotRepository{
		client:  client,
		keys:    newKeys(prefix),
		liveTTL: liveTTL,
	}
}

func (r *SnapshotRepository) GetOngoing(ctx context.Context) (rotation.Snapshot, bool, error) {
	raw, err := r.client.Get(ctx, r.keys.ongoing).Bytes()
	if errors.Is(err, goredis.Nil) {
		return rotation.Snapshot{}, false, nil
	}
	if err != nil {
		return rotation.Snapshot{}, false, crerr.Wrap(err, "get ongoing snapshot")
	}

	snap, err := decodeSnapshot(raw)
	if err != nil {
		return rotation.Snapshot{}, false, err
	}
	return snap, true, nil
}

func (r *SnapshotRepository) SaveOngoing(ctx context.Context, snap rotation.Snapshot) error {
	payload, err := encode(snap)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.keys.ongoing, payload, 0).Err(); err != nil {
		return crerr.Wrap(err, "save ongoing snapshot")
	}
	return nil
}

func (r *SnapshotRepository) DeleteOngoing(ctx context.Context) error {
	if err := r.client.Del(ctx, r.keys.ongoing).Err(); err != nil {
		return crerr.Wrap(err, "delete ongoing snapshot")
	}
	return nil
}

func (r *SnapshotRepository) GetLive(ctx context.Context) (history.ArchivedGame, bool, error) {
	raw, err := r.client.Get(ctx, r.keys.live).Bytes()
	if errors.Is(err, goredis.Nil) {
		return history.ArchivedGame{}, false, nil
	}
	if err != nil {
		return history.ArchivedGame{}, false, crerr.Wrap(err, "get live preview")
	}

	game, err := decodeGame(raw)
	if err != nil {
		return history.ArchivedGame{}, false, err
	}
	return game, true, nil
}

func (r *SnapshotRepository) SaveLive(ctx context.Context, game history.ArchivedGame) error {
	payload, err := encode(game)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.keys.live, payload, r.liveTTL).Err(); err != nil {
		return crerr.Wrap(err, "save live preview")
	}
	return nil
}

func (r *SnapshotRepository) DeleteLive(ctx context.Context) error {
	if err := r.client.Del(ctx, r.keys.live).Err(); err != nil {
		return crerr.Wrap(err, "delete live preview")
	}
	return nil
}
