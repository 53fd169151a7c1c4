package session

import (
	"errors"
	"testing"
	"time"

	"github.com/lexiquest/exercise-engine/internal/adapt"
)

func rawChoice(prompt, correct string) adapt.RawExercise {
	return adapt.RawExercise{
		"kind":   "singleChoice",
		"prompt": prompt,
		"options": []any{
			map[string]any{"id": "a", "text": "Yellow", "correct": correct == "a"},
			map[string]any{"id": "b", "text": "Blue", "correct": correct == "b"},
		},
		"hints":       []any{"It rises in the east.", "Look up at noon."},
		"explanation": "The sun appears yellow from the ground.",
	}
}

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newFakeClock() *fakeClock { return &fakeClock{t: time.Unix(1_700_000_000, 0)} }

func TestControllerHappyPath(t *testing.T) {
	clk := newFakeClock()
	c, err := NewController([]adapt.RawExercise{rawChoice("q1?", "a")}, WithClock(clk.now), WithID("sess-1"))
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	snap := c.Snapshot()
	if snap.State != StatePresenting || snap.Current == nil {
		t.Fatalf("snapshot = %+v", snap)
	}
	if len(snap.Current.Hints) != 0 || snap.Current.HintsLeft != 2 {
		t.Fatalf("hints should start hidden: %+v", snap.Current)
	}

	clk.advance(7 * time.Second)
	snap, err = c.Submit("a")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if snap.State != StateFeedbackCorrect {
		t.Fatalf("state = %q", snap.State)
	}
	if snap.Current.Explanation == "" {
		t.Fatalf("feedback should expose the explanation")
	}
	if got := snap.History[0].TimeTakenSeconds; got != 7 {
		t.Fatalf("time taken = %d, want 7", got)
	}

	snap, err = c.Acknowledge()
	if err != nil {
		t.Fatalf("acknowledge: %v", err)
	}
	if snap.State != StateCompleted || snap.Results == nil {
		t.Fatalf("completed snapshot missing results: %+v", snap)
	}
	if snap.Results.Score != 100 || snap.Results.Accuracy != 1 {
		t.Fatalf("results = %+v", snap.Results)
	}
	if snap.Results.ElapsedSeconds != 7 {
		t.Fatalf("elapsed = %d, want 7", snap.Results.ElapsedSeconds)
	}
}

func TestControllerUnsupportedKindProducesNoHandle(t *testing.T) {
	c, err := NewController([]adapt.RawExercise{{"kind": "unknown-kind", "prompt": "?"}})
	if c != nil {
		t.Fatalf("no handle should be produced on adapter failure")
	}
	var uk *adapt.UnsupportedKindError
	if !errors.As(err, &uk) {
		t.Fatalf("want UnsupportedKindError, got %v", err)
	}
}

func TestControllerEmptySession(t *testing.T) {
	c, err := NewController(nil)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	snap := c.Snapshot()
	if snap.State != StateCompleted || snap.Score != 0 || len(snap.History) != 0 {
		t.Fatalf("empty session snapshot = %+v", snap)
	}
}

func TestControllerPauseStopsClock(t *testing.T) {
	clk := newFakeClock()
	c, err := NewController([]adapt.RawExercise{rawChoice("q1?", "a")}, WithClock(clk.now))
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	clk.advance(5 * time.Second)
	c.Pause()
	clk.advance(60 * time.Second) // paused time must not count
	c.Resume()
	clk.advance(3 * time.Second)

	snap, err := c.Submit("a")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if snap.ElapsedSeconds != 8 {
		t.Fatalf("elapsed = %d, want 8", snap.ElapsedSeconds)
	}
	if snap.History[0].TimeTakenSeconds != 8 {
		t.Fatalf("time taken = %d, want 8", snap.History[0].TimeTakenSeconds)
	}
}

func TestControllerElapsedFrozenAfterTerminal(t *testing.T) {
	clk := newFakeClock()
	c, _ := NewController([]adapt.RawExercise{rawChoice("q1?", "a")}, WithClock(clk.now))
	clk.advance(4 * time.Second)
	snap, err := c.Abort()
	if err != nil || snap.State != StateAborted {
		t.Fatalf("abort: %+v %v", snap, err)
	}
	clk.advance(90 * time.Second)
	if got := c.Snapshot().ElapsedSeconds; got != 4 {
		t.Fatalf("elapsed after terminal = %d, want frozen 4", got)
	}
	if _, err := c.Submit("a"); err == nil {
		t.Fatalf("events after terminal must fail")
	}
}

func TestControllerHints(t *testing.T) {
	c, _ := NewController([]adapt.RawExercise{rawChoice("q1?", "a")})
	snap, err := c.Hint()
	if err != nil {
		t.Fatalf("hint: %v", err)
	}
	if len(snap.Current.Hints) != 1 || snap.Current.HintsLeft != 1 {
		t.Fatalf("after one hint: %+v", snap.Current)
	}
	snap, _ = c.Hint()
	snap2, _ := c.Hint() // exhausted, stays at 2
	if len(snap2.Current.Hints) != 2 || len(snap.Current.Hints) != 2 {
		t.Fatalf("hint overflow: %+v", snap2.Current)
	}
	if _, err := c.Submit("a"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	var pe *ProtocolError
	if _, err := c.Hint(); !errors.As(err, &pe) {
		t.Fatalf("hint during feedback should be a protocol error, got %v", err)
	}
}

func TestControllerTimerResetsPerQuestion(t *testing.T) {
	clk := newFakeClock()
	c, _ := NewController([]adapt.RawExercise{
		rawChoice("q1?", "a"), rawChoice("q2?", "b"),
	}, WithClock(clk.now))

	clk.advance(10 * time.Second)
	if _, err := c.Submit("a"); err != nil {
		t.Fatalf("submit q1: %v", err)
	}
	if _, err := c.Acknowledge(); err != nil {
		t.Fatalf("ack q1: %v", err)
	}
	clk.advance(2 * time.Second)
	snap, err := c.Submit("b")
	if err != nil {
		t.Fatalf("submit q2: %v", err)
	}
	if got := snap.History[1].TimeTakenSeconds; got != 2 {
		t.Fatalf("q2 time = %d, want 2", got)
	}
	if snap.ElapsedSeconds != 12 {
		t.Fatalf("total elapsed = %d, want 12", snap.ElapsedSeconds)
	}
}
