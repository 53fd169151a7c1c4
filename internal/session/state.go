package session

import "fmt"

// State is the session machine state. Submitted and Advancing are pass-through
// states: a submission resolves synchronously into feedback and an
// acknowledge resolves into the next question, so callers only ever observe
// the states around them.
type State string

const (
	StateLoading           State = "loading"
	StatePresenting        State = "presenting"
	StateSubmitted         State = "submitted"
	StateFeedbackCorrect   State = "feedback_correct"
	StateFeedbackIncorrect State = "feedback_incorrect"
	StateAdvancing         State = "advancing"
	StateCompleted         State = "completed"
	StateFailed            State = "failed"
	StateAborted           State = "aborted"
)

// Terminal reports whether no further events are accepted in s.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed || s == StateAborted
}

// EventType names the caller-driven events.
type EventType string

const (
	EventSubmit      EventType = "submit"
	EventRetry       EventType = "retry"
	EventAcknowledge EventType = "acknowledge"
	EventAbort       EventType = "abort"

	// EventHint is controller-level (never passed to Transition); named here
	// so protocol errors can report it like any other event.
	EventHint EventType = "hint"
)

// Event is one input to Transition. Answer is set for submit events;
// TimeTakenSeconds is stamped by the controller from its clock.
type Event struct {
	Type             EventType
	Answer           any
	TimeTakenSeconds int64
}

// ProtocolError reports an event that is not valid in the current state. The
// session is left exactly as it was.
type ProtocolError struct {
	State State
	Event EventType
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("event %q not valid in state %q", e.Event, e.State)
}
