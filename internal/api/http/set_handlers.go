package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/lexiquest/exercise-engine/internal/adapt"
	"github.com/lexiquest/exercise-engine/internal/session"
)

// POST /sets  { "title": "...", "exercises": [ {...}, ... ] }
// Every exercise is normalized up front so a defective set is rejected at
// authoring time instead of at a learner's session start.
func UploadSetHandler(store session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID        string              `json:"id"`
			Title     string              `json:"title"`
			Exercises []adapt.RawExercise `json:"exercises"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if req.Title == "" || len(req.Exercises) == 0 {
			http.Error(w, "title and exercises required", 400)
			return
		}
		if _, err := adapt.NormalizeAll(req.Exercises); err != nil {
			writeErr(w, err)
			return
		}
		if req.ID == "" {
			req.ID = uuid.NewString()
		}
		set := session.ExerciseSet{
			ID:        req.ID,
			Title:     req.Title,
			Exercises: req.Exercises,
			CreatedAt: time.Now().Unix(),
		}
		if err := store.PutSet(set); err != nil {
			writeErr(w, err)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(set)
	}
}

// GET /sets/{setID}
func GetSetHandler(store session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		set, err := store.GetSet(chi.URLParam(r, "setID"))
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(set)
	}
}

// GET /sets
func ListSetsHandler(store session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sets, err := store.ListSets()
		if err != nil {
			writeErr(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(sets)
	}
}
