// Package session drives one learner's run through an ordered list of
// canonical exercise definitions: a state machine over an immutable Session
// value, plus a Controller that owns the mutable handle, the clock, and
// persistence of finished runs.
package session

import (
	"github.com/lexiquest/exercise-engine/internal/schema"
	"github.com/lexiquest/exercise-engine/internal/validate"
)

// HistoryEntry is one per-question outcome, appended on every submission.
type HistoryEntry struct {
	DefinitionID     string `json:"definition_id"`
	Answer           any    `json:"answer"`
	Correct          bool   `json:"correct"`
	TimeTakenSeconds int64  `json:"time_taken_seconds"`
}

// Session is the state of one run. Values are immutable: Transition returns a
// new Session and never mutates its input, so the only mutable reference is
// the one the Controller holds.
type Session struct {
	ID             string              `json:"id"`
	Definitions    []schema.Definition `json:"definitions"`
	CurrentIndex   int                 `json:"current_index"`
	ElapsedSeconds int64               `json:"elapsed_seconds"`
	Score          float64             `json:"score"`
	History        []HistoryEntry      `json:"history"`
	State          State               `json:"state"`

	// RetriesUsed counts retries of the current question; reset on advance.
	RetriesUsed int `json:"retries_used"`
}

// New builds a session over already-normalized definitions, applying the
// default weight distribution. An empty definition list completes
// immediately rather than presenting nothing.
func New(id string, defs []schema.Definition) Session {
	defs = distributeWeights(defs)
	s := Session{ID: id, Definitions: defs, State: StatePresenting}
	if len(defs) == 0 {
		s.State = StateCompleted
	}
	return s
}

// Current returns the definition under the cursor, or false once past the end.
func (s Session) Current() (schema.Definition, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Definitions) {
		return schema.Definition{}, false
	}
	return s.Definitions[s.CurrentIndex], true
}

// MaxScore is the total available score for the session.
func (s Session) MaxScore() float64 { return schema.MaxScore(s.Definitions) }

// CorrectCount counts distinct definitions answered correctly.
func (s Session) CorrectCount() int {
	correct := map[string]bool{}
	for _, h := range s.History {
		if h.Correct {
			correct[h.DefinitionID] = true
		}
	}
	return len(correct)
}

// Accuracy is correct / total, 0 for an empty session.
func (s Session) Accuracy() float64 {
	if len(s.Definitions) == 0 {
		return 0
	}
	return float64(s.CorrectCount()) / float64(len(s.Definitions))
}

// Transition applies one event and returns the resulting session. On any
// error the returned session equals the input: protocol violations and
// malformed answers never corrupt state.
func Transition(s Session, ev Event) (Session, error) {
	if ev.Type == EventAbort {
		if s.State.Terminal() {
			return s, &ProtocolError{State: s.State, Event: ev.Type}
		}
		s.State = StateAborted
		return s, nil
	}

	switch s.State {
	case StatePresenting:
		if ev.Type != EventSubmit {
			return s, &ProtocolError{State: s.State, Event: ev.Type}
		}
		return submit(s, ev)

	case StateFeedbackCorrect:
		if ev.Type != EventAcknowledge {
			return s, &ProtocolError{State: s.State, Event: ev.Type}
		}
		return advance(s), nil

	case StateFeedbackIncorrect:
		switch ev.Type {
		case EventAcknowledge:
			return advance(s), nil
		case EventRetry:
			def, _ := s.Current()
			if !retryAllowed(def, s.RetriesUsed) {
				return s, &ProtocolError{State: s.State, Event: ev.Type}
			}
			s.RetriesUsed++
			s.State = StatePresenting
			return s, nil
		default:
			return s, &ProtocolError{State: s.State, Event: ev.Type}
		}

	default:
		return s, &ProtocolError{State: s.State, Event: ev.Type}
	}
}

// submit passes through StateSubmitted: validation runs synchronously and the
// session lands in one of the feedback states.
func submit(s Session, ev Event) (Session, error) {
	def, ok := s.Current()
	if !ok {
		return s, &ProtocolError{State: s.State, Event: ev.Type}
	}
	out, err := validate.Validate(def, ev.Answer)
	if err != nil {
		return s, err
	}
	// append-only history; score moves only on correct
	hist := make([]HistoryEntry, len(s.History), len(s.History)+1)
	copy(hist, s.History)
	s.History = append(hist, HistoryEntry{
		DefinitionID:     def.ID,
		Answer:           ev.Answer,
		Correct:          out.Correct,
		TimeTakenSeconds: ev.TimeTakenSeconds,
	})
	if out.Correct {
		s.Score += def.ScoringWeight
		s.State = StateFeedbackCorrect
	} else {
		s.State = StateFeedbackIncorrect
	}
	return s, nil
}

// advance passes through StateAdvancing: the cursor moves and the session
// either presents the next definition or completes.
func advance(s Session) Session {
	s.CurrentIndex++
	s.RetriesUsed = 0
	if s.CurrentIndex >= len(s.Definitions) {
		s.State = StateCompleted
	} else {
		s.State = StatePresenting
	}
	return s
}
