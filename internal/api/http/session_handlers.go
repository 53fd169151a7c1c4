package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lexiquest/exercise-engine/internal/adapt"
	auth "github.com/lexiquest/exercise-engine/internal/auth/middleware"
	"github.com/lexiquest/exercise-engine/internal/session"
)

// POST /sessions  { "set_id": "..." } or { "exercises": [ {...}, ... ] }
func CreateSessionHandler(m *Manager, store session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SetID     string              `json:"set_id"`
			Exercises []adapt.RawExercise `json:"exercises"`
			Shuffle   bool                `json:"shuffle"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		raws := req.Exercises
		if req.SetID != "" {
			set, err := store.GetSet(req.SetID)
			if err != nil {
				writeErr(w, err)
				return
			}
			raws = set.Exercises
		}
		userID := ""
		if c, ok := auth.ClaimsFrom(r.Context()); ok {
			userID = c.Sub
		}
		snap, err := m.Create(raws, req.SetID, userID, req.Shuffle)
		if err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(snap)
	}
}

// GET /sessions/{sessionID} — live snapshot, or the archived record once the
// session has settled.
func GetSessionHandler(m *Manager, store session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		if ctrl, ok := m.Controller(id); ok {
			_ = json.NewEncoder(w).Encode(ctrl.Snapshot())
			return
		}
		rec, err := store.GetSession(id)
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(rec)
	}
}

// POST /sessions/{sessionID}/submit  { "answer": <kind-shaped payload> }
func SubmitHandler(m *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		ctrl, ok := m.Controller(id)
		if !ok {
			writeErr(w, session.ErrSessionNotFound)
			return
		}
		var req struct {
			Answer any `json:"answer"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		snap, err := ctrl.Submit(req.Answer)
		if err != nil {
			writeErr(w, err)
			return
		}
		m.Settle(id, snap)
		_ = json.NewEncoder(w).Encode(snap)
	}
}

func eventHandler(m *Manager, fire func(*session.Controller) (session.Snapshot, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		ctrl, ok := m.Controller(id)
		if !ok {
			writeErr(w, session.ErrSessionNotFound)
			return
		}
		snap, err := fire(ctrl)
		if err != nil {
			writeErr(w, err)
			return
		}
		m.Settle(id, snap)
		_ = json.NewEncoder(w).Encode(snap)
	}
}

// POST /sessions/{sessionID}/retry
func RetryHandler(m *Manager) http.HandlerFunc {
	return eventHandler(m, (*session.Controller).Retry)
}

// POST /sessions/{sessionID}/acknowledge
func AcknowledgeHandler(m *Manager) http.HandlerFunc {
	return eventHandler(m, (*session.Controller).Acknowledge)
}

// POST /sessions/{sessionID}/abort
func AbortHandler(m *Manager) http.HandlerFunc {
	return eventHandler(m, (*session.Controller).Abort)
}

// POST /sessions/{sessionID}/hint
func HintHandler(m *Manager) http.HandlerFunc {
	return eventHandler(m, (*session.Controller).Hint)
}

// GET /sessions/{sessionID}/results — final aggregates; live controllers must
// be completed, archived sessions return the stored record.
func ResultsHandler(m *Manager, store session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		if ctrl, ok := m.Controller(id); ok {
			res, err := ctrl.Results()
			if err != nil {
				writeErr(w, err)
				return
			}
			_ = json.NewEncoder(w).Encode(res)
			return
		}
		rec, err := store.GetSession(id)
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(rec)
	}
}

// GET /sessions?user_id=... — archived history for the analytics collaborator.
func ListSessionsHandler(store session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := store.ListSessions(r.URL.Query().Get("user_id"))
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(recs)
	}
}
