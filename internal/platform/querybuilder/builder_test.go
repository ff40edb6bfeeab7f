package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "name").
		From("players").
		Where(Eq("selected", true), Expr("sort_order >= ?", 0)).
		OrderBy("sort_order", "id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name FROM players WHERE selected = $1 AND sort_order >= $2 ORDER BY sort_order, id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != true || args[1] != 0 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_Upsert(t *testing.T) {
	query, args, err := InsertInto("game_snapshots").
		Columns("slot", "payload", "saved_at").
		Values("ongoing", []byte("{}"), int64(42)).
		Upsert("slot").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO game_snapshots (slot, payload, saved_at) VALUES ($1, $2, $3) " +
		"ON CONFLICT (slot) DO UPDATE SET payload = EXCLUDED.payload, saved_at = EXCLUDED.saved_at"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "ongoing" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_ValueCountMismatch(t *testing.T) {
	_, _, err := InsertInto("players").Columns("id", "name").Values("p1").ToSQL()
	require.Error(t, err)
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("game_snapshots").Where(Eq("slot", "live")).ToSQL()
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM game_snapshots WHERE slot = $1", query)
	assert.Equal(t, []any{"live"}, args)

	_, _, err = DeleteFrom("game_snapshots").ToSQL()
	require.Error(t, err)
}

func TestUpsertModel(t *testing.T) {
	type row struct {
		ID       string `db:"id"`
		Name     string `db:"name"`
		internal string
		Skipped  int `db:"-"`
	}

	query, args, err := UpsertModel("players", row{ID: "p1", Name: "Ada", internal: "x"}, "id")
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO players (id, name) VALUES ($1, $2) ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name", query)
	assert.Equal(t, []any{"p1", "Ada"}, args)
	assert.Equal(t, []string{"id", "name"}, Columns(row{}))
}
