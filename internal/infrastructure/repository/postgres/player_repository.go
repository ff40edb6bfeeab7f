package postgres

import (
	"context"
	"fmt"

	"github.com/dimashiii/EzySubs-App/internal/domain/player"
	qb "github.com/dimashiii/EzySubs-App/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = qb.Columns(playerTableModel{})

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		OrderBy("sort_order", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}
	return r.selectPlayers(ctx, query, args)
}

func (r *PlayerRepository) ListSelected(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("selected", true)).
		OrderBy("selection_order", "sort_order", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select selected players query: %w", err)
	}
	return r.selectPlayers(ctx, query, args)
}

func (r *PlayerRepository) selectPlayers(ctx context.Context, query string, args []any) ([]player.Player, error) {
	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Player{ID: row.ID, Name: row.Name})
	}
	return out, nil
}
