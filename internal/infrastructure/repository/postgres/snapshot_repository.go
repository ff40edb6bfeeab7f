package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/dimashiii/EzySubs-App/internal/domain/history"
	"github.com/dimashiii/EzySubs-App/internal/domain/rotation"
	qb "github.com/dimashiii/EzySubs-App/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

// SnapshotRepository keeps the ongoing snapshot and the live preview as two
// rows of game_snapshots keyed by slot.
type SnapshotRepository struct {
	db      *sqlx.DB
	liveTTL time.Duration
	now     func() time.Time
}

func NewSnapshotRepository(db *sqlx.DB, liveTTL time.Duration) *SnapshotRepository {
	return &SnapshotRepository{db: db, liveTTL: liveTTL, now: time.Now}
}

func (r *SnapshotRepository) GetOngoing(ctx context.Context) (rotation.Snapshot, bool, error) {
	row, ok, err := r.getSlot(ctx, slotOngoing)
	if err != nil || !ok {
		return rotation.Snapshot{}, false, err
	}

	var snap rotation.Snapshot
	if err := sonic.Unmarshal(row.Payload, &snap); err != nil {
		return rotation.Snapshot{}, false, fmt.Errorf("%w: decode ongoing snapshot: %v", rotation.ErrInvalidSnapshot, err)
	}
	return snap, true, nil
}

func (r *SnapshotRepository) SaveOngoing(ctx context.Context, snap rotation.Snapshot) error {
	savedAt := time.UnixMilli(snap.SavedAt).UTC()
	if snap.SavedAt == 0 {
		savedAt = r.now().UTC()
	}
	return r.putSlot(ctx, slotOngoing, snap, savedAt, nil)
}

func (r *SnapshotRepository) DeleteOngoing(ctx context.Context) error {
	return r.deleteSlot(ctx, slotOngoing)
}

func (r *SnapshotRepository) GetLive(ctx context.Context) (history.ArchivedGame, bool, error) {
	row, ok, err := r.getSlot(ctx, slotLive)
	if err != nil || !ok {
		return history.ArchivedGame{}, false, err
	}
	if row.ExpiresAt != nil && !row.ExpiresAt.After(r.now()) {
		return history.ArchivedGame{}, false, nil
	}

	var game history.ArchivedGame
	if err := sonic.Unmarshal(row.Payload, &game); err != nil {
		return history.ArchivedGame{}, false, fmt.Errorf("decode live preview: %w", err)
	}
	return game, true, nil
}

func (r *SnapshotRepository) SaveLive(ctx context.Context, game history.ArchivedGame) error {
	now := r.now().UTC()
	var expiresAt *time.Time
	if r.liveTTL > 0 {
		at := now.Add(r.liveTTL)
		expiresAt = &at
	}
	return r.putSlot(ctx, slotLive, game, now, expiresAt)
}

func (r *SnapshotRepository) DeleteLive(ctx context.Context) error {
	return r.deleteSlot(ctx, slotLive)
}

func (r *SnapshotRepository) getSlot(ctx context.Context, slot string) (snapshotTableModel, bool, error) {
	query, args, err := qb.Select(qb.Columns(snapshotTableModel{})...).From("game_snapshots").
		Where(qb.Eq("slot", slot)).
		ToSQL()
	if err != nil {
		return snapshotTableModel{}, false, fmt.Errorf("build get %s snapshot query: %w", slot, err)
	}

	var row snapshotTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return snapshotTableModel{}, false, nil
		}
		return snapshotTableModel{}, false, fmt.Errorf("get %s snapshot: %w", slot, err)
	}
	return row, true, nil
}

func (r *SnapshotRepository) putSlot(ctx context.Context, slot string, v any, savedAt time.Time, expiresAt *time.Time) error {
	payload, err := jsonParam(v)
	if err != nil {
		return fmt.Errorf("encode %s snapshot: %w", slot, err)
	}

	query, args, err := qb.UpsertModel("game_snapshots", snapshotUpsertModel{
		Slot:      slot,
		Payload:   payload,
		SavedAt:   savedAt,
		ExpiresAt: expiresAt,
	}, "slot")
	if err != nil {
		return fmt.Errorf("build upsert %s snapshot query: %w", slot, err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert %s snapshot: %w", slot, err)
	}
	return nil
}

func (r *SnapshotRepository) deleteSlot(ctx context.Context, slot string) error {
	query, args, err := qb.DeleteFrom("game_snapshots").Where(qb.Eq("slot", slot)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete %s snapshot query: %w", slot, err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %s snapshot: %w", slot, err)
	}
	return nil
}
