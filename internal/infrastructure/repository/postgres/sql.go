package postgres

import (
	"database/sql"
	"errors"

	"github.com/bytedance/sonic"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// jsonParam encodes v for a jsonb column. lib/pq sends strings as text, which
// postgres casts to jsonb; a []byte would go out as bytea.
func jsonParam(v any) (string, error) {
	raw, err := sonic.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
