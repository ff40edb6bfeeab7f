package postgres

import (
	"time"

	"github.com/lib/pq"
)

const (
	singletonRowID = 1

	slotOngoing = "ongoing"
	slotLive    = "live"
)

type playerTableModel struct {
	ID             string `db:"id"`
	Name           string `db:"name"`
	Selected       bool   `db:"selected"`
	SelectionOrder int    `db:"selection_order"`
	SortOrder      int    `db:"sort_order"`
}

type lineupTableModel struct {
	ID         int            `db:"id"`
	StarterIDs pq.StringArray `db:"starter_ids"`
	BenchIDs   pq.StringArray `db:"bench_ids"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

type settingsTableModel struct {
	ID        int       `db:"id"`
	Payload   []byte    `db:"payload"`
	UpdatedAt time.Time `db:"updated_at"`
}

type settingsUpsertModel struct {
	ID        int       `db:"id"`
	Payload   string    `db:"payload"`
	UpdatedAt time.Time `db:"updated_at"`
}

type snapshotTableModel struct {
	Slot      string     `db:"slot"`
	Payload   []byte     `db:"payload"`
	SavedAt   time.Time  `db:"saved_at"`
	ExpiresAt *time.Time `db:"expires_at"`
}

type snapshotUpsertModel struct {
	Slot      string     `db:"slot"`
	Payload   string     `db:"payload"`
	SavedAt   time.Time  `db:"saved_at"`
	ExpiresAt *time.Time `db:"expires_at"`
}

type historyTableModel struct {
	ID               string    `db:"id"`
	PracticeDate     string    `db:"practice_date"`
	StartedAt        time.Time `db:"started_at"`
	EndedAt          time.Time `db:"ended_at"`
	TotalGameSeconds int       `db:"total_game_seconds"`
	Players          []byte    `db:"players"`
	CreatedAt        time.Time `db:"created_at"`
}

type historyInsertModel struct {
	ID               string    `db:"id"`
	PracticeDate     string    `db:"practice_date"`
	StartedAt        time.Time `db:"started_at"`
	EndedAt          time.Time `db:"ended_at"`
	TotalGameSeconds int       `db:"total_game_seconds"`
	Players          string    `db:"players"`
}
