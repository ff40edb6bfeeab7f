package rotation

import (
	"context"

	"github.com/dimashiii/EzySubs-App/internal/domain/history"
	"github.com/dimashiii/EzySubs-App/internal/domain/player"
)

// SnapshotRepository stores the single ongoing-game record and the live preview.
type SnapshotRepository interface {
	GetOngoing(ctx context.Context) (Snapshot, bool, error)
	SaveOngoing(ctx context.Context, snap Snapshot) error
	DeleteOngoing(ctx context.Context) error
	GetLive(ctx context.Context) (history.ArchivedGame, bool, error)
	SaveLive(ctx context.Context, game history.ArchivedGame) error
	DeleteLive(ctx context.Context) error
}

// Clone deep-copies a snapshot so stores never share maps or slices with callers.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Starters = append([]player.Player(nil), s.Starters...)
	out.Bench = append([]player.Player(nil), s.Bench...)
	out.Roster = append([]player.Player(nil), s.Roster...)
	out.CourtSeconds = copyCounts(s.CourtSeconds)
	out.SubCounts = copyCounts(s.SubCounts)
	out.PendingSwap = cloneSwap(s.PendingSwap)
	return out
}
