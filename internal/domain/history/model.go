package history

import "time"

// LiveGameID is the id carried by an on-demand preview of a game still in progress.
const LiveGameID = "live"

// ArchivedGame is the immutable record of a finished game.
type ArchivedGame struct {
	ID               string       `json:"id"`
	PracticeDate     string       `json:"practiceDate"`
	StartedAt        time.Time    `json:"startedAt"`
	EndedAt          time.Time    `json:"endedAt"`
	TotalGameSeconds int          `json:"totalGameSeconds"`
	Players          []PlayerLine `json:"players"`
}

// PlayerLine is one player's final court time and substitution count.
type PlayerLine struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Seconds int    `json:"seconds"`
	Subs    int    `json:"subs"`
}

func (g ArchivedGame) IsLive() bool {
	return g.ID == LiveGameID
}

func Clone(g ArchivedGame) ArchivedGame {
	copied := g
	copied.Players = append([]PlayerLine(nil), g.Players...)
	return copied
}
