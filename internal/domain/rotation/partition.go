package rotation

import (
	"strings"

	"github.com/dimashiii/EzySubs-App/internal/domain/player"
)

// Partition splits the game roster into starters and bench, both ordered.
type Partition struct {
	Starters []player.Player `json:"starters"`
	Bench    []player.Player `json:"bench"`
}

// NewPartition orders roster by the lineup hint (hinted ids first, in hint order,
// then the rest in roster order) and puts the first MaxStarters on court.
// Duplicate and blank ids are dropped.
func NewPartition(roster []player.Player, hint []string) Partition {
	roster = dedupePlayers(roster)
	byID := make(map[string]player.Player, len(roster))
	for _, p := range roster {
		byID[p.ID] = p
	}

	ordered := make([]player.Player, 0, len(roster))
	placed := make(map[string]struct{}, len(roster))
	for _, id := range hint {
		id = strings.TrimSpace(id)
		p, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := placed[id]; dup {
			continue
		}
		placed[id] = struct{}{}
		ordered = append(ordered, p)
	}
	for _, p := range roster {
		if _, ok := placed[p.ID]; ok {
			continue
		}
		ordered = append(ordered, p)
	}

	n := min(MaxStarters, len(ordered))
	return Partition{
		Starters: append([]player.Player{}, ordered[:n]...),
		Bench:    append([]player.Player{}, ordered[n:]...),
	}
}

func (p Partition) Clone() Partition {
	return Partition{
		Starters: append([]player.Player{}, p.Starters...),
		Bench:    append([]player.Player{}, p.Bench...),
	}
}

// Find reports which side a player is on.
func (p Partition) Find(id string) (player.Player, Side, bool) {
	if i := indexOf(p.Starters, id); i >= 0 {
		return p.Starters[i], SideCourt, true
	}
	if i := indexOf(p.Bench, id); i >= 0 {
		return p.Bench[i], SideBench, true
	}
	return player.Player{}, "", false
}

func (p Partition) On(side Side, id string) (player.Player, bool) {
	found, s, ok := p.Find(id)
	if !ok || s != side {
		return player.Player{}, false
	}
	return found, true
}

// Len is the total number of players across both sides.
func (p Partition) Len() int {
	return len(p.Starters) + len(p.Bench)
}

// swap moves outgoingID to the end of the bench and incomingID to the end of
// the starters. It reports false and leaves the partition untouched when either
// id is not on its expected side.
func (p *Partition) swap(incomingID, outgoingID string) bool {
	oi := indexOf(p.Starters, outgoingID)
	ii := indexOf(p.Bench, incomingID)
	if oi < 0 || ii < 0 {
		return false
	}

	outgoing := p.Starters[oi]
	incoming := p.Bench[ii]

	starters := make([]player.Player, 0, len(p.Starters))
	starters = append(starters, p.Starters[:oi]...)
	starters = append(starters, p.Starters[oi+1:]...)
	starters = append(starters, incoming)

	bench := make([]player.Player, 0, len(p.Bench))
	bench = append(bench, p.Bench[:ii]...)
	bench = append(bench, p.Bench[ii+1:]...)
	bench = append(bench, outgoing)

	p.Starters = starters
	p.Bench = bench
	return true
}

func indexOf(players []player.Player, id string) int {
	for i, p := range players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func dedupePlayers(in []player.Player) []player.Player {
	seen := make(map[string]struct{}, len(in))
	out := make([]player.Player, 0, len(in))
	for _, p := range in {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		p.ID = id
		out = append(out, p)
	}
	return out
}
