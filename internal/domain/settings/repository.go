package settings

import "context"

// Repository is the settings store. Get reports false when nothing was saved.
type Repository interface {
	Get(ctx context.Context) (Settings, bool, error)
	Save(ctx context.Context, s Settings) error
}
