package lineup

import "context"

// Repository exposes the stored lineup ordering.
type Repository interface {
	Get(ctx context.Context) (Lineup, bool, error)
	Save(ctx context.Context, lineup Lineup) error
}
