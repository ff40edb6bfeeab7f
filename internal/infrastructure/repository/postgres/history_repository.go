package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/dimashiii/EzySubs-App/internal/domain/history"
	qb "github.com/dimashiii/EzySubs-App/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type HistoryRepository struct {
	db *sqlx.DB
}

func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Prepend inserts the game. Repeating it with the same id rewrites that row in
// place, so a retried archive never duplicates an entry or changes its order.
func (r *HistoryRepository) Prepend(ctx context.Context, game history.ArchivedGame) error {
	query, args, err := buildHistoryInsert(game)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert archived game %s: %w", game.ID, err)
	}
	return nil
}

func (r *HistoryRepository) List(ctx context.Context, limit int) ([]history.ArchivedGame, error) {
	query, args, err := qb.Select(qb.Columns(historyTableModel{})...).From("game_history").
		OrderBy("created_at DESC", "ended_at DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list history query: %w", err)
	}

	var rows []historyTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	out := make([]history.ArchivedGame, 0, len(rows))
	for _, row := range rows {
		game := history.ArchivedGame{
			ID:               row.ID,
			PracticeDate:     row.PracticeDate,
			StartedAt:        row.StartedAt,
			EndedAt:          row.EndedAt,
			TotalGameSeconds: row.TotalGameSeconds,
		}
		if err := sonic.Unmarshal(row.Players, &game.Players); err != nil {
			return nil, fmt.Errorf("decode players of archived game %s: %w", row.ID, err)
		}
		out = append(out, game)
	}
	return out, nil
}

func buildHistoryInsert(game history.ArchivedGame) (string, []any, error) {
	players := game.Players
	if players == nil {
		players = []history.PlayerLine{}
	}
	payload, err := jsonParam(players)
	if err != nil {
		return "", nil, fmt.Errorf("encode players of archived game %s: %w", game.ID, err)
	}

	query, args, err := qb.UpsertModel("game_history", historyInsertModel{
		ID:               game.ID,
		PracticeDate:     game.PracticeDate,
		StartedAt:        game.StartedAt.UTC(),
		EndedAt:          game.EndedAt.UTC(),
		TotalGameSeconds: game.TotalGameSeconds,
		Players:          payload,
	}, "id")
	if err != nil {
		return "", nil, fmt.Errorf("build insert archived game query: %w", err)
	}
	return query, args, nil
}
