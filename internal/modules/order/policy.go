package order

// validTransitions defines the allowed status state machine: a strictly
// linear flow with picked_up terminal.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusPreparing},
	StatusPreparing: {StatusReady},
	StatusReady:     {StatusPickedUp},
	StatusPickedUp:  {},
}

// IsValidTransition reports whether an order may move from current to next.
// Same-state updates are not in the table and therefore invalid.
func IsValidTransition(current, next Status) bool {
	for _, allowed := range validTransitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}
