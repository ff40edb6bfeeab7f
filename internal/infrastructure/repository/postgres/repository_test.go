package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/dimashiii/EzySubs-App/internal/domain/history"
	"github.com/dimashiii/EzySubs-App/internal/domain/lineup"
	"github.com/dimashiii/EzySubs-App/internal/domain/player"
	"github.com/dimashiii/EzySubs-App/internal/domain/rotation"
	"github.com/dimashiii/EzySubs-App/internal/domain/settings"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// openTestDB connects to a migrated database named by POSTGRES_TEST_URL and
// clears the game tables.
func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("POSTGRES_TEST_URL")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_URL not set")
	}
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	for _, table := range []string{"game_history", "game_snapshots", "game_settings", "lineup", "players"} {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Fatalf("clear %s: %v", table, err)
		}
	}
	return db
}

func TestRepositories_Postgres(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	roster := []player.Player{{ID: "a", Name: "Ada"}, {ID: "b", Name: "Bo"}}
	if err := BootstrapSeed(ctx, db, roster); err != nil {
		t.Fatalf("seed: %v", err)
	}
	selected, err := NewPlayerRepository(db).ListSelected(ctx)
	if err != nil {
		t.Fatalf("list selected: %v", err)
	}
	if len(selected) != 2 || selected[0].ID != "a" {
		t.Fatalf("unexpected selection: %+v", selected)
	}

	lineups := NewLineupRepository(db)
	if err := lineups.Save(ctx, lineup.Lineup{StarterIDs: []string{"b"}, BenchIDs: []string{"a"}}); err != nil {
		t.Fatalf("save lineup: %v", err)
	}
	lu, ok, err := lineups.Get(ctx)
	if err != nil || !ok || lu.StarterIDs[0] != "b" {
		t.Fatalf("unexpected lineup: %+v ok=%v err=%v", lu, ok, err)
	}

	settingsRepo := NewSettingsRepository(db)
	if err := settingsRepo.Save(ctx, settings.Settings{HalfLengthMinutes: 10}); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	s, ok, err := settingsRepo.Get(ctx)
	if err != nil || !ok || s.HalfLengthSeconds != 600 {
		t.Fatalf("unexpected settings: %+v ok=%v err=%v", s, ok, err)
	}

	snapshots := NewSnapshotRepository(db, time.Hour)
	snap := rotation.Snapshot{Version: rotation.SnapshotVersion, GameClock: 30, SavedAt: time.Now().UnixMilli()}
	if err := snapshots.SaveOngoing(ctx, snap); err != nil {
		t.Fatalf("save ongoing: %v", err)
	}
	got, ok, err := snapshots.GetOngoing(ctx)
	if err != nil || !ok || got.GameClock != 30 {
		t.Fatalf("unexpected ongoing: %+v ok=%v err=%v", got, ok, err)
	}
	if err := snapshots.DeleteOngoing(ctx); err != nil {
		t.Fatalf("delete ongoing: %v", err)
	}
	if _, ok, _ := snapshots.GetOngoing(ctx); ok {
		t.Fatalf("expected ongoing record to be gone")
	}

	games := NewHistoryRepository(db)
	first := history.ArchivedGame{ID: "g1", PracticeDate: "2026-03-14", TotalGameSeconds: 10}
	if err := games.Prepend(ctx, first); err != nil {
		t.Fatalf("prepend: %v", err)
	}
	if err := games.Prepend(ctx, first); err != nil {
		t.Fatalf("repeat prepend: %v", err)
	}
	list, err := games.List(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != "g1" {
		t.Fatalf("expected exactly one archived game, got %+v", list)
	}
}
