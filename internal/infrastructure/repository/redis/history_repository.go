package redis

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/dimashiii/EzySubs-App/internal/domain/history"
	"github.com/dimashiii/EzySubs-App/internal/platform/logging"
	goredis "github.com/redis/go-redis/v9"
)

// HistoryRepository keeps archived games in a list, newest at the head.
type HistoryRepository struct {
	client goredis.Cmdable
	keys   keys
	logger *logging.Logger
}

func NewHistoryRepository(client goredis.Cmdable, prefix string, logger *logging.Logger) *HistoryRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &HistoryRepository{client: client, keys: newKeys(prefix), logger: logger}
}

func (r *HistoryRepository) Prepend(ctx context.Context, game history.ArchivedGame) error {
	payload, err := encode(game)
	if err != nil {
		return err
	}
	if err := r.client.LPush(ctx, r.keys.history, payload).Err(); err != nil {
		return crerr.Wrapf(err, "prepend archived game %s", game.ID)
	}
	return nil
}

// List skips entries that no longer decode instead of failing the whole page.
func (r *HistoryRepository) List(ctx context.Context, limit int) ([]history.ArchivedGame, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	rows, err := r.client.LRange(ctx, r.keys.history, 0, stop).Result()
	if err != nil {
		return nil, crerr.Wrap(err, "list archived games")
	}

	out := make([]history.ArchivedGame, 0, len(rows))
	for i, row := range rows {
		game, err := decodeGame([]byte(row))
		if err != nil {
			r.logger.WarnContext(ctx, "skip unreadable archived game", "index", i, "error", err)
			continue
		}
		out = append(out, game)
	}
	return out, nil
}
