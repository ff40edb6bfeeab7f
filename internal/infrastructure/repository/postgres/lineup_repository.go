package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dimashiii/EzySubs-App/internal/domain/lineup"
	qb "github.com/dimashiii/EzySubs-App/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// LineupRepository keeps the single saved lineup hint.
type LineupRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db, now: time.Now}
}

func (r *LineupRepository) Get(ctx context.Context) (lineup.Lineup, bool, error) {
	query, args, err := qb.Select(qb.Columns(lineupTableModel{})...).From("lineup").
		Where(qb.Eq("id", singletonRowID)).
		ToSQL()
	if err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("build get lineup query: %w", err)
	}

	var row lineupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return lineup.Lineup{}, false, nil
		}
		return lineup.Lineup{}, false, fmt.Errorf("get lineup: %w", err)
	}

	return lineup.Lineup{
		StarterIDs: append([]string(nil), row.StarterIDs...),
		BenchIDs:   append([]string(nil), row.BenchIDs...),
		UpdatedAt:  row.UpdatedAt,
	}, true, nil
}

func (r *LineupRepository) Save(ctx context.Context, item lineup.Lineup) error {
	updatedAt := item.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = r.now().UTC()
	}

	query, args, err := qb.UpsertModel("lineup", lineupTableModel{
		ID:         singletonRowID,
		StarterIDs: pq.StringArray(item.StarterIDs),
		BenchIDs:   pq.StringArray(item.BenchIDs),
		UpdatedAt:  updatedAt,
	}, "id")
	if err != nil {
		return fmt.Errorf("build upsert lineup query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert lineup: %w", err)
	}
	return nil
}
