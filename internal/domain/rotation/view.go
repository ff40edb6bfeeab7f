package rotation

import "time"

// View is a read model of the machine for clients.
type View struct {
	Phase              Phase        `json:"phase"`
	Ended              bool         `json:"ended"`
	Paused             bool         `json:"paused"`
	PauseReason        PauseReason  `json:"pauseReason"`
	GameClock          int          `json:"gameClock"`
	SubWindowClock     int          `json:"subWindowClock"`
	InWarningWindow    bool         `json:"inWarningWindow"`
	Quarter            int          `json:"quarter"`
	Half               int          `json:"half"`
	LastBreakLabel     string       `json:"lastBreakLabel,omitempty"`
	Starters           []PlayerView `json:"starters"`
	Bench              []PlayerView `json:"bench"`
	PendingSwap        *Swap        `json:"pendingSwap,omitempty"`
	Manual             ManualView   `json:"manual"`
	StartedAt          time.Time    `json:"startedAt"`
	LastArchivedGameID string       `json:"lastArchivedGameId,omitempty"`
}

type PlayerView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Seconds int    `json:"seconds"`
	Subs    int    `json:"subs"`
}

type ManualView struct {
	Stage      string `json:"stage"`
	PlayerID   string `json:"playerId,omitempty"`
	Side       Side   `json:"side,omitempty"`
	Reason     string `json:"reason,omitempty"`
	IncomingID string `json:"incomingId,omitempty"`
	OutgoingID string `json:"outgoingId,omitempty"`
}

func (m *Machine) View() View {
	v := View{
		Phase:              m.Phase(),
		Ended:              m.ended,
		Paused:             m.paused,
		PauseReason:        m.pauseReason,
		GameClock:          m.clock.GameClock,
		SubWindowClock:     m.clock.SubWindowClock,
		Quarter:            m.quarter,
		Half:               m.half,
		LastBreakLabel:     m.lastBreakLabel,
		PendingSwap:        cloneSwap(m.pending),
		StartedAt:          m.startedAt,
		LastArchivedGameID: m.lastArchivedGameID,
		Manual:             manualView(m.manual),
	}
	v.InWarningWindow = !m.paused && m.clock.SubWindowClock > 0 && m.clock.SubWindowClock <= m.settings.SubWarningSeconds

	v.Starters = make([]PlayerView, 0, len(m.partition.Starters))
	for _, p := range m.partition.Starters {
		v.Starters = append(v.Starters, PlayerView{ID: p.ID, Name: p.Name, Seconds: m.ledger.Seconds(p.ID), Subs: m.ledger.Subs(p.ID)})
	}
	v.Bench = make([]PlayerView, 0, len(m.partition.Bench))
	for _, p := range m.partition.Bench {
		v.Bench = append(v.Bench, PlayerView{ID: p.ID, Name: p.Name, Seconds: m.ledger.Seconds(p.ID), Subs: m.ledger.Subs(p.ID)})
	}

	return v
}

func manualView(s ManualState) ManualView {
	switch d := s.(type) {
	case ReasonPrompt:
		return ManualView{Stage: d.Stage(), PlayerID: d.PlayerID, Side: d.Side}
	case PartialDraft:
		return ManualView{Stage: d.Stage(), PlayerID: d.PlayerID, Side: d.Side, Reason: d.Reason}
	case ConfirmPending:
		return ManualView{Stage: d.Stage(), IncomingID: d.IncomingID, OutgoingID: d.OutgoingID, Reason: d.Reason}
	default:
		return ManualView{Stage: ManualIdle{}.Stage()}
	}
}
