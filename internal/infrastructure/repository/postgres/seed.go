package postgres

import (
	"context"
	"fmt"

	"github.com/dimashiii/EzySubs-App/internal/domain/player"
	"github.com/jmoiron/sqlx"
)

// BootstrapSeed inserts players when the table is empty. Every seeded player
// is selected, in roster order.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, players []player.Player) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM players`); err != nil {
		return fmt.Errorf("count players for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, p := range players {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("seed player %d: %w", i, err)
		}
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO players (id, name, selected, selection_order, sort_order)
VALUES (:id, :name, TRUE, :position, :position)
ON CONFLICT (id) DO NOTHING`, map[string]any{
			"id":       p.ID,
			"name":     p.Name,
			"position": i,
		})
		if err != nil {
			return fmt.Errorf("bind seed player %s query: %w", p.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
