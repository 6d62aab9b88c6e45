package processor

import "fmt"

// State is the position of a page in the processing state machine.
type State string

const (
	StatePending     State = "pending"
	StateResolving   State = "resolving"
	StateSummarizing State = "summarizing"
	StateWriting     State = "writing"
	StateRetry       State = "retry"
	StateDone        State = "done"
	StateFailed      State = "failed"
	StateSkipped     State = "skipped"
)

// Terminal reports whether no further transition is allowed.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed || s == StateSkipped
}

// pageRun tracks one Process call.
type pageRun struct {
	state   State
	history []State
}

func newPageRun() *pageRun {
	return &pageRun{state: StatePending, history: []State{StatePending}}
}

// transition validates and applies a state change.
func (r *pageRun) transition(to State) error {
	if !isValidTransition(r.state, to) {
		return fmt.Errorf("invalid transition: %s -> %s", r.state, to)
	}
	r.state = to
	r.history = append(r.history, to)
	return nil
}

// isValidTransition enforces the allowed page state machine edges.
func isValidTransition(from, to State) bool {
	switch from {
	case StatePending:
		return to == StateResolving
	case StateResolving:
		return to == StateSummarizing || to == StateSkipped || to == StateRetry || to == StateFailed
	case StateSummarizing:
		return to == StateWriting || to == StateRetry || to == StateFailed
	case StateWriting:
		return to == StateDone || to == StateRetry || to == StateFailed
	case StateRetry:
		return to == StateResolving || to == StateFailed
	default:
		return false
	}
}
