// Package http exposes the exercise engine to the rendering layer: session
// lifecycle endpoints plus the authored exercise-set bank.
package http

import (
	"sync"
	"time"

	"github.com/lexiquest/exercise-engine/internal/adapt"
	"github.com/lexiquest/exercise-engine/internal/session"
)

type sessionMeta struct {
	setID  string
	userID string
}

// Manager holds the live controllers and archives each session to the store
// once it reaches a terminal state.
type Manager struct {
	mu    sync.Mutex
	store session.Store
	live  map[string]*session.Controller
	meta  map[string]sessionMeta
}

func NewManager(store session.Store) *Manager {
	return &Manager{
		store: store,
		live:  map[string]*session.Controller{},
		meta:  map[string]sessionMeta{},
	}
}

// Create normalizes and starts a session. An empty set completes immediately,
// so the fresh controller may be archived before this returns.
func (m *Manager) Create(raws []adapt.RawExercise, setID, userID string, shuffle bool) (session.Snapshot, error) {
	opts := []session.Option{}
	if shuffle {
		opts = append(opts, session.WithShuffle())
	}
	ctrl, err := session.NewController(raws, opts...)
	if err != nil {
		return session.Snapshot{}, err
	}
	snap := ctrl.Snapshot()
	m.mu.Lock()
	m.live[snap.SessionID] = ctrl
	m.meta[snap.SessionID] = sessionMeta{setID: setID, userID: userID}
	m.mu.Unlock()
	m.settle(snap.SessionID, ctrl, snap)
	return snap, nil
}

// Controller returns the live controller for id.
func (m *Manager) Controller(id string) (*session.Controller, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.live[id]
	return c, ok
}

// Settle archives and evicts the session if the snapshot is terminal. Called
// after every event.
func (m *Manager) Settle(id string, snap session.Snapshot) {
	m.mu.Lock()
	ctrl, ok := m.live[id]
	m.mu.Unlock()
	if ok {
		m.settle(id, ctrl, snap)
	}
}

func (m *Manager) settle(id string, ctrl *session.Controller, snap session.Snapshot) {
	if !snap.State.Terminal() {
		return
	}
	m.mu.Lock()
	meta := m.meta[id]
	delete(m.live, id)
	delete(m.meta, id)
	m.mu.Unlock()

	rec := session.Record{
		ID:             id,
		SetID:          meta.setID,
		UserID:         meta.userID,
		State:          snap.State,
		Score:          snap.Score,
		MaxScore:       snap.MaxScore,
		ElapsedSeconds: snap.ElapsedSeconds,
		History:        snap.History,
		StartedAt:      ctrl.StartedAt.Unix(),
		FinishedAt:     time.Now().Unix(),
	}
	if snap.Results != nil {
		rec.Accuracy = snap.Results.Accuracy
	}
	// best effort; a failed archive must not wedge the caller's event
	_ = m.store.ArchiveSession(rec)
}
