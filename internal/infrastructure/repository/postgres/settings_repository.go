package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/dimashiii/EzySubs-App/internal/domain/settings"
	qb "github.com/dimashiii/EzySubs-App/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

// SettingsRepository stores settings as one jsonb document so legacy minute
// fields survive until they are normalized on read.
type SettingsRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db, now: time.Now}
}

func (r *SettingsRepository) Get(ctx context.Context) (settings.Settings, bool, error) {
	query, args, err := qb.Select(qb.Columns(settingsTableModel{})...).From("game_settings").
		Where(qb.Eq("id", singletonRowID)).
		ToSQL()
	if err != nil {
		return settings.Settings{}, false, fmt.Errorf("build get settings query: %w", err)
	}

	var row settingsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return settings.Settings{}, false, nil
		}
		return settings.Settings{}, false, fmt.Errorf("get settings: %w", err)
	}

	var out settings.Settings
	if err := sonic.Unmarshal(row.Payload, &out); err != nil {
		return settings.Settings{}, false, fmt.Errorf("decode settings: %w", err)
	}
	return settings.Normalize(out), true, nil
}

func (r *SettingsRepository) Save(ctx context.Context, s settings.Settings) error {
	payload, err := jsonParam(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	query, args, err := qb.UpsertModel("game_settings", settingsUpsertModel{
		ID:        singletonRowID,
		Payload:   payload,
		UpdatedAt: r.now().UTC(),
	}, "id")
	if err != nil {
		return fmt.Errorf("build upsert settings query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}
