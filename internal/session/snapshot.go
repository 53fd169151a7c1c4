package session

import (
	"time"

	"github.com/lexiquest/exercise-engine/internal/schema"
)

// CurrentView is the learner-safe projection of the current definition:
// everything needed to render the question, nothing that gives away the
// solution before submission.
type CurrentView struct {
	ID          string           `json:"id"`
	Kind        schema.Kind      `json:"kind"`
	Subtype     string           `json:"subtype,omitempty"`
	Prompt      string           `json:"prompt"`
	Instruction string           `json:"instruction,omitempty"`
	Elements    []schema.Element `json:"elements,omitempty"`
	Zones       []schema.Zone    `json:"zones,omitempty"`
	Hints       []string         `json:"hints,omitempty"` // revealed so far
	HintsLeft   int              `json:"hints_left"`

	// Feedback-state fields; nil/empty while presenting.
	Correct        *bool  `json:"correct,omitempty"`
	Explanation    string `json:"explanation,omitempty"`
	RetryAvailable bool   `json:"retry_available,omitempty"`
}

// Results are the final aggregates of a completed session.
type Results struct {
	SessionID      string         `json:"session_id"`
	Score          float64        `json:"score"`
	MaxScore       float64        `json:"max_score"`
	CorrectCount   int            `json:"correct_count"`
	TotalCount     int            `json:"total_count"`
	Accuracy       float64        `json:"accuracy"`
	ElapsedSeconds int64          `json:"elapsed_seconds"`
	History        []HistoryEntry `json:"history"`
}

// Snapshot is the read-only view of a session, safe to poll at any time.
type Snapshot struct {
	SessionID      string         `json:"session_id"`
	State          State          `json:"state"`
	CurrentIndex   int            `json:"current_index"`
	TotalCount     int            `json:"total_count"`
	Current        *CurrentView   `json:"current,omitempty"`
	Score          float64        `json:"score"`
	MaxScore       float64        `json:"max_score"`
	ElapsedSeconds int64          `json:"elapsed_seconds"`
	History        []HistoryEntry `json:"history"`
	Results        *Results       `json:"results,omitempty"`
}

// Snapshot returns the current observable state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) snapshot() Snapshot {
	s := c.sess
	snap := Snapshot{
		SessionID:      s.ID,
		State:          s.State,
		CurrentIndex:   s.CurrentIndex,
		TotalCount:     len(s.Definitions),
		Score:          s.Score,
		MaxScore:       s.MaxScore(),
		ElapsedSeconds: int64(c.elapsed() / time.Second),
		History:        s.History,
	}
	if def, ok := s.Current(); ok && !s.State.Terminal() {
		view := &CurrentView{
			ID:          def.ID,
			Kind:        def.Kind,
			Subtype:     def.Subtype,
			Prompt:      def.Prompt,
			Instruction: def.Instruction,
			Elements:    def.Elements,
			Zones:       def.Zones,
			Hints:       def.Solution.Hints[:c.hintsRevealed],
			HintsLeft:   len(def.Solution.Hints) - c.hintsRevealed,
		}
		switch s.State {
		case StateFeedbackCorrect:
			correct := true
			view.Correct = &correct
			view.Explanation = def.Solution.Explanation
		case StateFeedbackIncorrect:
			correct := false
			view.Correct = &correct
			view.Explanation = def.Solution.Explanation
			view.RetryAvailable = retryAllowed(def, s.RetriesUsed)
		}
		snap.Current = view
	}
	if s.State == StateCompleted {
		r := c.results()
		snap.Results = &r
	}
	return snap
}

// Results returns the final aggregates; valid only once the session has
// completed.
func (c *Controller) Results() (Results, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess.State != StateCompleted {
		return Results{}, &ProtocolError{State: c.sess.State, Event: "results"}
	}
	return c.results(), nil
}

func (c *Controller) results() Results {
	s := c.sess
	return Results{
		SessionID:      s.ID,
		Score:          s.Score,
		MaxScore:       s.MaxScore(),
		CorrectCount:   s.CorrectCount(),
		TotalCount:     len(s.Definitions),
		Accuracy:       s.Accuracy(),
		ElapsedSeconds: int64(c.elapsed() / time.Second),
		History:        s.History,
	}
}
