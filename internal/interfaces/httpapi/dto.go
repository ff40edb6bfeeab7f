package httpapi

import (
	"time"

	"github.com/dimashiii/EzySubs-App/internal/domain/history"
	"github.com/dimashiii/EzySubs-App/internal/domain/rotation"
)

type playerSideRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
	Side     string `json:"side" validate:"required,oneof=court bench"`
}

type subDraftRequest struct {
	PlayerID string `json:"playerId" validate:"required"`
	Side     string `json:"side" validate:"required,oneof=court bench"`
	Reason   string `json:"reason" validate:"required,max=64"`
}

type actionDTO struct {
	Applied bool          `json:"applied"`
	Game    rotation.View `json:"game"`
}

type tickDTO struct {
	Elapsed      int            `json:"elapsed"`
	Substitution *rotation.Swap `json:"substitution,omitempty"`
	EnteredBreak string         `json:"enteredBreak,omitempty"`
	Finalized    bool           `json:"finalized"`
	Game         rotation.View  `json:"game"`
}

type archivedGameDTO struct {
	ID               string          `json:"id"`
	Live             bool            `json:"live"`
	PracticeDate     string          `json:"practiceDate"`
	StartedAt        time.Time       `json:"startedAt"`
	EndedAt          time.Time       `json:"endedAt"`
	TotalGameSeconds int             `json:"totalGameSeconds"`
	Players          []playerLineDTO `json:"players"`
}

type playerLineDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Seconds int    `json:"seconds"`
	Subs    int    `json:"subs"`
}

func archivedGameToDTO(g history.ArchivedGame) archivedGameDTO {
	players := make([]playerLineDTO, 0, len(g.Players))
	for _, p := range g.Players {
		players = append(players, playerLineDTO{ID: p.ID, Name: p.Name, Seconds: p.Seconds, Subs: p.Subs})
	}
	return archivedGameDTO{
		ID:               g.ID,
		Live:             g.IsLive(),
		PracticeDate:     g.PracticeDate,
		StartedAt:        g.StartedAt,
		EndedAt:          g.EndedAt,
		TotalGameSeconds: g.TotalGameSeconds,
		Players:          players,
	}
}

func tickToDTO(res rotation.TickResult, view rotation.View) tickDTO {
	return tickDTO{
		Elapsed:      res.Elapsed,
		Substitution: res.Substitution,
		EnteredBreak: string(res.EnteredBreak),
		Finalized:    res.Finalized,
		Game:         view,
	}
}
