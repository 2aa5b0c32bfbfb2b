package session

// State is the lifecycle position of an edit session.
type State int

const (
	StateLoading State = iota
	StateReady
	StateSubmitting
	StateError
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSubmitting:
		return "submitting"
	case StateError:
		return "error"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Outcome tells the caller what a Submit did.
type Outcome int

const (
	// OutcomeSaved means the remote accepted the record.
	OutcomeSaved Outcome = iota + 1
	// OutcomeBlocked means local validation stopped the submission; no call was made.
	OutcomeBlocked
	// OutcomeRejected means the remote reported field or duplicate errors.
	OutcomeRejected
	// OutcomeDeferred means the remote reported an update conflict; nothing changed.
	OutcomeDeferred
	// OutcomeUnchanged means a persisted record had no edits; no call was made.
	OutcomeUnchanged
	// OutcomeDiscarded means the response arrived after the session closed.
	OutcomeDiscarded
	// OutcomeFailed means the remote call failed outside the domain taxonomy.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSaved:
		return "saved"
	case OutcomeBlocked:
		return "blocked"
	case OutcomeRejected:
		return "rejected"
	case OutcomeDeferred:
		return "deferred"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeDiscarded:
		return "discarded"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result reports a Submit. Errors is a copy of the session's error tree after
// the submission was applied.
type Result struct {
	Outcome  Outcome
	RecordID string
	Errors   ErrorTree
}
