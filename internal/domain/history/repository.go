package history

import "context"

// Repository is the completed-game archive, kept most-recent-first.
type Repository interface {
	Prepend(ctx context.Context, game ArchivedGame) error
	// List returns up to limit games, newest first. A limit <= 0 means no limit.
	List(ctx context.Context, limit int) ([]ArchivedGame, error)
}
