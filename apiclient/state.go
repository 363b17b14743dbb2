package apiclient

// State is a request's position in its lifecycle. A request moves forward only;
// no state is ever revisited.
type State int

const (
	StatePending          State = iota // built, not yet dispatched
	StateSent                          // first attempt dispatched
	StateSucceeded                     // first attempt returned 2xx
	StateFailed                        // terminal failure without recovery
	StateExpired                       // first attempt returned 401, not yet retried
	StateRefreshingToken               // refresh call in flight
	StateRetriedSucceeded              // replay after refresh returned 2xx
	StateRetriedFailed                 // refresh or replay failed
)

var stateNames = map[State]string{
	StatePending:          "pending",
	StateSent:             "sent",
	StateSucceeded:        "succeeded",
	StateFailed:           "failed",
	StateExpired:          "failed_401",
	StateRefreshingToken:  "refreshing_token",
	StateRetriedSucceeded: "retried_succeeded",
	StateRetriedFailed:    "retried_failed",
}

var transitions = map[State][]State{
	StatePending:         {StateSent},
	StateSent:            {StateSucceeded, StateFailed, StateExpired},
	StateExpired:         {StateRefreshingToken},
	StateRefreshingToken: {StateRetriedSucceeded, StateRetriedFailed},
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return len(transitions[s]) == 0
}

func (s State) canMoveTo(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
