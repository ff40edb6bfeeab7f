package rotation

import "github.com/dimashiii/EzySubs-App/internal/domain/player"

// Plan proposes the next substitution: the bench player with the least court
// time comes in and the starter with the most court time goes out. Ties go to
// whoever is earlier in the list. Plan returns an empty Swap when either list is
// empty and never mutates its inputs.
func Plan(onCourt, bench []player.Player, seconds func(id string) int) Swap {
	if len(onCourt) == 0 || len(bench) == 0 || seconds == nil {
		return Swap{}
	}

	in := bench[0]
	inSeconds := seconds(in.ID)
	for _, p := range bench[1:] {
		if s := seconds(p.ID); s < inSeconds {
			in, inSeconds = p, s
		}
	}

	out := onCourt[0]
	outSeconds := seconds(out.ID)
	for _, p := range onCourt[1:] {
		if s := seconds(p.ID); s > outSeconds {
			out, outSeconds = p, s
		}
	}

	return Swap{Incoming: &in, Outgoing: &out}
}
