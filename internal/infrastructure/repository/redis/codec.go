package redis

import (
	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/dimashiii/EzySubs-App/internal/domain/history"
	"github.com/dimashiii/EzySubs-App/internal/domain/rotation"
	"github.com/valyala/bytebufferpool"
)

// encode marshals v through a pooled buffer. The returned slice is owned by
// the caller.
func encode(v any) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(v); err != nil {
		return nil, crerr.Wrap(err, "encode value")
	}
	out := make([]byte, len(buf.B))
	copy(out, buf.B)
	return out, nil
}

func decodeSnapshot(raw []byte) (rotation.Snapshot, error) {
	var snap rotation.Snapshot
	if err := sonic.Unmarshal(raw, &snap); err != nil {
		return rotation.Snapshot{}, crerr.Mark(crerr.Wrap(err, "decode ongoing snapshot"), rotation.ErrInvalidSnapshot)
	}
	return snap, nil
}

func decodeGame(raw []byte) (history.ArchivedGame, error) {
	var game history.ArchivedGame
	if err := sonic.Unmarshal(raw, &game); err != nil {
		return history.ArchivedGame{}, crerr.Wrap(err, "decode archived game")
	}
	return game, nil
}
