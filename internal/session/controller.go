package session

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lexiquest/exercise-engine/internal/adapt"
)

// Clock supplies the controller's notion of now. Injected so tests can drive
// time explicitly.
type Clock func() time.Time

// Controller owns one session: it serializes every event, keeps the clocks,
// and is the only holder of a mutable Session reference. Not reentrant by
// design; the mutex makes concurrent callers take turns rather than corrupt
// state.
type Controller struct {
	mu   sync.Mutex
	sess Session
	now  Clock

	accumulated   time.Duration // frozen elapsed time
	runningSince  time.Time     // zero while paused or terminal
	questionAccum time.Duration // time on the current question
	hintsRevealed int

	StartedAt time.Time
}

type Option func(*cfg)

type cfg struct {
	id      string
	clock   Clock
	shuffle bool
}

// WithClock replaces the wall clock.
func WithClock(c Clock) Option { return func(o *cfg) { o.clock = c } }

// WithID fixes the session id instead of generating one.
func WithID(id string) Option { return func(o *cfg) { o.id = id } }

// WithShuffle randomizes definition order once, at session start.
func WithShuffle() Option { return func(o *cfg) { o.shuffle = true } }

// NewController normalizes the raw definitions and starts a session over
// them. Any adapter failure aborts creation entirely: no handle is returned
// and no partial session exists.
func NewController(raws []adapt.RawExercise, opts ...Option) (*Controller, error) {
	o := &cfg{clock: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	defs, err := adapt.NormalizeAll(raws)
	if err != nil {
		return nil, err
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}
	now := o.clock()
	if o.shuffle {
		rng := rand.New(rand.NewSource(now.UnixNano()))
		rng.Shuffle(len(defs), func(i, j int) { defs[i], defs[j] = defs[j], defs[i] })
	}
	c := &Controller{
		sess:      New(o.id, defs),
		now:       o.clock,
		StartedAt: now,
	}
	if !c.sess.State.Terminal() {
		c.runningSince = now
	}
	return c, nil
}

// Submit validates the candidate answer against the current definition and
// moves to feedback.
func (c *Controller) Submit(answer any) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tick()
	return c.apply(Event{
		Type:             EventSubmit,
		Answer:           answer,
		TimeTakenSeconds: int64(c.questionAccum / time.Second),
	})
}

// Retry returns to the same question after incorrect feedback, if the
// definition's retry policy permits it.
func (c *Controller) Retry() (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apply(Event{Type: EventRetry})
}

// Acknowledge leaves feedback and advances to the next question or completes.
func (c *Controller) Acknowledge() (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prevIndex := c.sess.CurrentIndex
	snap, err := c.apply(Event{Type: EventAcknowledge})
	if err == nil && c.sess.CurrentIndex != prevIndex {
		c.questionAccum = 0
		c.hintsRevealed = 0
	}
	return snap, err
}

// Abort terminates the session from any non-terminal state without scoring
// side effects.
func (c *Controller) Abort() (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apply(Event{Type: EventAbort})
}

// Hint reveals the next progressive hint for the current question. Valid only
// while presenting; never affects scoring.
func (c *Controller) Hint() (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess.State != StatePresenting {
		return c.snapshot(), &ProtocolError{State: c.sess.State, Event: EventHint}
	}
	def, _ := c.sess.Current()
	if c.hintsRevealed < len(def.Solution.Hints) {
		c.hintsRevealed++
	}
	return c.snapshot(), nil
}

// Pause stops the elapsed clock. An external signal, not a machine event:
// state is unchanged and pausing twice is a no-op.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.freezeClock()
}

// Resume restarts the elapsed clock after a Pause.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.runningSince.IsZero() && !c.sess.State.Terminal() {
		c.runningSince = c.now()
	}
}

// apply runs the transition, stamps elapsed time, and freezes the clock on
// terminal states. Callers hold the mutex.
func (c *Controller) apply(ev Event) (Snapshot, error) {
	c.tick()
	next, err := Transition(c.sess, ev)
	if err != nil {
		return c.snapshot(), err
	}
	c.sess = next
	if c.sess.State.Terminal() {
		c.freezeClock()
	}
	c.sess.ElapsedSeconds = int64(c.elapsed() / time.Second)
	return c.snapshot(), nil
}

// tick folds the running span into the accumulators so questionAccum always
// belongs to the current question only.
func (c *Controller) tick() {
	if c.runningSince.IsZero() {
		return
	}
	now := c.now()
	d := now.Sub(c.runningSince)
	c.accumulated += d
	c.questionAccum += d
	c.runningSince = now
}

func (c *Controller) freezeClock() {
	c.tick()
	c.runningSince = time.Time{}
}

func (c *Controller) elapsed() time.Duration {
	d := c.accumulated
	if !c.runningSince.IsZero() {
		d += c.now().Sub(c.runningSince)
	}
	return d
}
