package player

import (
	"fmt"
	"strings"
)

// Player is a roster member that can be selected for a game.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}

	return nil
}

// IDs returns the ids of players in list order.
func IDs(players []Player) []string {
	out := make([]string, 0, len(players))
	for _, p := range players {
		out = append(out, p.ID)
	}
	return out
}
