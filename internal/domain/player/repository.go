package player

import "context"

// Repository is the roster store consumed by the rotation engine.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	// ListSelected returns today's selected players in selection order.
	ListSelected(ctx context.Context) ([]Player, error)
}
