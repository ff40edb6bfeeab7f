package rotation

// ManualState is the manual substitution workflow. Exactly one of ManualIdle,
// ReasonPrompt, PartialDraft or ConfirmPending is current at any time.
type ManualState interface {
	Stage() string
	manualState()
}

// ManualIdle means no manual substitution is in progress.
type ManualIdle struct{}

// ReasonPrompt waits for the coach to give a reason for moving PlayerID.
type ReasonPrompt struct {
	PlayerID string
	Side     Side
}

// PartialDraft has one side chosen and waits for a player from the other side.
type PartialDraft struct {
	Side     Side
	PlayerID string
	Reason   string
}

// ConfirmPending has both sides chosen and waits for confirm or cancel.
type ConfirmPending struct {
	IncomingID string
	OutgoingID string
	Reason     string
}

func (ManualIdle) Stage() string     { return "idle" }
func (ReasonPrompt) Stage() string   { return "reason" }
func (PartialDraft) Stage() string   { return "draft" }
func (ConfirmPending) Stage() string { return "confirm" }

func (ManualIdle) manualState()     {}
func (ReasonPrompt) manualState()   {}
func (PartialDraft) manualState()   {}
func (ConfirmPending) manualState() {}

// draftActive is true once a draft exists, i.e. auto suggestions are suppressed.
func draftActive(s ManualState) bool {
	switch s.(type) {
	case PartialDraft, ConfirmPending:
		return true
	default:
		return false
	}
}
