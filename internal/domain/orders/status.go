package orders

// Status is the order lifecycle state. Orders are created pending and move
// only through webhook-driven (or reconciler-driven) transitions.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
	StatusRefunded  Status = "refunded"
)

// transitions is the full set of allowed moves. Anything absent here is
// rejected, so a late duplicate or out-of-order event can never regress a
// terminal state.
var transitions = map[Status][]Status{
	StatusPending:   {StatusSucceeded, StatusFailed, StatusCanceled},
	StatusSucceeded: {StatusRefunded},
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions leave s.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}
