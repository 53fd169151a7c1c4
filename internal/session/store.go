package session

import (
	"errors"
	"sort"
	"sync"

	"github.com/lexiquest/exercise-engine/internal/adapt"
)

var (
	ErrSetNotFound     = errors.New("exercise set not found")
	ErrSessionNotFound = errors.New("session not found")
)

// ExerciseSet is an authored bank entry: the raw exercises are stored as
// received so sessions normalize them fresh (and re-normalization picks up
// adapter fixes).
type ExerciseSet struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Exercises []adapt.RawExercise `json:"exercises"`
	CreatedAt int64               `json:"created_at"`
}

// Record is an archived session: the read surface the analytics collaborator
// consumes after completion.
type Record struct {
	ID             string         `json:"id"`
	SetID          string         `json:"set_id,omitempty"`
	UserID         string         `json:"user_id"`
	State          State          `json:"state"`
	Score          float64        `json:"score"`
	MaxScore       float64        `json:"max_score"`
	Accuracy       float64        `json:"accuracy"`
	ElapsedSeconds int64          `json:"elapsed_seconds"`
	History        []HistoryEntry `json:"history"`
	StartedAt      int64          `json:"started_at"`
	FinishedAt     int64          `json:"finished_at"`
}

// Store persists the exercise-set bank and finished sessions.
type Store interface {
	PutSet(s ExerciseSet) error
	GetSet(id string) (ExerciseSet, error)
	ListSets() ([]ExerciseSet, error)

	ArchiveSession(r Record) error
	GetSession(id string) (Record, error)
	ListSessions(userID string) ([]Record, error)
}

type memoryStore struct {
	mu       sync.RWMutex
	sets     map[string]ExerciseSet
	sessions map[string]Record
}

// NewInMemoryStore returns a Store for offline/dev use and tests.
func NewInMemoryStore() Store {
	return &memoryStore{
		sets:     map[string]ExerciseSet{},
		sessions: map[string]Record{},
	}
}

func (m *memoryStore) PutSet(s ExerciseSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets[s.ID] = s
	return nil
}

func (m *memoryStore) GetSet(id string) (ExerciseSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sets[id]
	if !ok {
		return ExerciseSet{}, ErrSetNotFound
	}
	return s, nil
}

func (m *memoryStore) ListSets() ([]ExerciseSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ExerciseSet, 0, len(m.sets))
	for _, s := range m.sets {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (m *memoryStore) ArchiveSession(r Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[r.ID] = r
	return nil
}

func (m *memoryStore) GetSession(id string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.sessions[id]
	if !ok {
		return Record{}, ErrSessionNotFound
	}
	return r, nil
}

func (m *memoryStore) ListSessions(userID string) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Record, 0)
	for _, r := range m.sessions {
		if userID == "" || r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FinishedAt > out[j].FinishedAt })
	return out, nil
}
