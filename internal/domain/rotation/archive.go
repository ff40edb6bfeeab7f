package rotation

import (
	"math"
	"time"

	"github.com/dimashiii/EzySubs-App/internal/domain/history"
)

// Archive builds the history record of the game as of endedAt, with players in
// original roster order. Total game seconds is wall-clock time since the start,
// rounded, and never less than one.
func (m *Machine) Archive(id string, endedAt time.Time) history.ArchivedGame {
	total := int(math.Round(endedAt.Sub(m.startedAt).Seconds()))
	if total < 1 {
		total = 1
	}

	lines := make([]history.PlayerLine, 0, len(m.roster))
	for _, p := range m.roster {
		lines = append(lines, history.PlayerLine{
			ID:      p.ID,
			Name:    p.Name,
			Seconds: m.ledger.Seconds(p.ID),
			Subs:    m.ledger.Subs(p.ID),
		})
	}

	return history.ArchivedGame{
		ID:               id,
		PracticeDate:     m.practiceDate,
		StartedAt:        m.startedAt,
		EndedAt:          endedAt,
		TotalGameSeconds: total,
		Players:          lines,
	}
}
