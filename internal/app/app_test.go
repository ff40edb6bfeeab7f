package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dimashiii/EzySubs-App/internal/config"
	"github.com/dimashiii/EzySubs-App/internal/platform/logging"
	"github.com/dimashiii/EzySubs-App/internal/platform/resilience"
)

func TestBuildStores_MemoryFromRosterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.json")
	raw := `{
  "players": [
    {"id": "a", "name": "Ana"},
    {"id": "b", "name": "Bo"},
    {"id": "c", "name": "Cy"}
  ],
  "selected": ["c", "a"],
  "lineup": {"starters": ["a"], "bench": ["c"]}
}`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write roster file: %v", err)
	}

	ctx := context.Background()
	st, err := buildStores(ctx, config.Config{StoreBackend: config.StoreMemory, RosterFile: path}, logging.NewNop())
	if err != nil {
		t.Fatalf("build stores: %v", err)
	}
	defer func() { _ = st.close() }()

	selected, err := st.players.ListSelected(ctx)
	if err != nil {
		t.Fatalf("list selected: %v", err)
	}
	if len(selected) != 2 || selected[0].ID != "c" || selected[1].ID != "a" {
		t.Fatalf("unexpected selection: %+v", selected)
	}

	hint, ok, err := st.lineups.Get(ctx)
	if err != nil || !ok {
		t.Fatalf("expected lineup hint, ok=%v err=%v", ok, err)
	}
	if len(hint.StarterIDs) != 1 || hint.StarterIDs[0] != "a" {
		t.Fatalf("unexpected lineup hint: %+v", hint)
	}
}

func TestBuildStores_MissingRosterFile(t *testing.T) {
	_, err := buildStores(context.Background(), config.Config{
		StoreBackend: config.StoreMemory,
		RosterFile:   filepath.Join(t.TempDir(), "missing.json"),
	}, logging.NewNop())
	if err == nil {
		t.Fatalf("expected error for missing roster file")
	}
}

func TestGameServiceConfig(t *testing.T) {
	cfg := config.Config{
		FinalizeOnLoad:   true,
		TickInterval:     250 * time.Millisecond,
		SnapshotInterval: 3 * time.Second,
		SnapshotWorkers:  2,
		HistoryListLimit: 20,
		StoreCircuit:     resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 4},
	}
	cfg.GameSettings.HalfLengthSeconds = 900

	got := gameServiceConfig(cfg)
	if !got.FinalizeOnLoad || got.TickInterval != cfg.TickInterval || got.SnapshotInterval != cfg.SnapshotInterval {
		t.Fatalf("unexpected game service config: %+v", got)
	}
	if got.SnapshotWorkers != 2 || got.HistoryListLimit != 20 || got.StoreCircuit.FailureThreshold != 4 {
		t.Fatalf("unexpected game service config: %+v", got)
	}
	if got.DefaultSettings.HalfLengthSeconds != 900 {
		t.Fatalf("expected half length 900, got %d", got.DefaultSettings.HalfLengthSeconds)
	}
}

func TestNew_RejectsEmptyAddr(t *testing.T) {
	if _, err := New(context.Background(), config.Config{StoreBackend: config.StoreMemory}, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty http addr")
	}
}
