package rotation

// Ledger accumulates court seconds and substitution counts per player id.
// Unknown ids are added on first write.
type Ledger struct {
	seconds map[string]int
	subs    map[string]int
}

func NewLedger(ids []string) Ledger {
	l := Ledger{
		seconds: make(map[string]int, len(ids)),
		subs:    make(map[string]int, len(ids)),
	}
	for _, id := range ids {
		l.ensure(id)
	}
	return l
}

func (l *Ledger) ensure(id string) {
	if l.seconds == nil {
		l.seconds = make(map[string]int)
	}
	if l.subs == nil {
		l.subs = make(map[string]int)
	}
	if _, ok := l.seconds[id]; !ok {
		l.seconds[id] = 0
	}
	if _, ok := l.subs[id]; !ok {
		l.subs[id] = 0
	}
}

func (l Ledger) Seconds(id string) int {
	return l.seconds[id]
}

func (l Ledger) Subs(id string) int {
	return l.subs[id]
}

func (l *Ledger) addSeconds(id string, n int) {
	if n <= 0 {
		return
	}
	l.ensure(id)
	l.seconds[id] += n
}

func (l *Ledger) incSubs(id string) {
	l.ensure(id)
	l.subs[id]++
}

func (l Ledger) secondsMap() map[string]int {
	return copyCounts(l.seconds)
}

func (l Ledger) subsMap() map[string]int {
	return copyCounts(l.subs)
}

func copyCounts(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
