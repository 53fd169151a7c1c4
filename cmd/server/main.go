package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/lexiquest/exercise-engine/internal/api/http"
	auth "github.com/lexiquest/exercise-engine/internal/auth/middleware"
	"github.com/lexiquest/exercise-engine/internal/config"
	"github.com/lexiquest/exercise-engine/internal/db"
	"github.com/lexiquest/exercise-engine/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- Store ---
	var store session.Store
	if cfg.InMemory {
		store = session.NewInMemoryStore()
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		store = session.NewSQLStore(dbh)
	}
	manager := api.NewManager(store)

	// --- Auth ---
	authSvc := auth.NewAuthService(cfg.AuthSecret, cfg.AuthorUser, cfg.AuthorPassHash)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc))

	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		// Authoring: exercise-set bank
		pr.With(auth.RequireRole("author")).Post("/sets", api.UploadSetHandler(store))
		pr.Get("/sets", api.ListSetsHandler(store))
		pr.Get("/sets/{setID}", api.GetSetHandler(store))

		// Learner session flow
		pr.Post("/sessions", api.CreateSessionHandler(manager, store))
		pr.Get("/sessions", api.ListSessionsHandler(store))
		pr.Get("/sessions/{sessionID}", api.GetSessionHandler(manager, store))
		pr.Get("/sessions/{sessionID}/results", api.ResultsHandler(manager, store))
		pr.Post("/sessions/{sessionID}/submit", api.SubmitHandler(manager))
		pr.Post("/sessions/{sessionID}/retry", api.RetryHandler(manager))
		pr.Post("/sessions/{sessionID}/acknowledge", api.AcknowledgeHandler(manager))
		pr.Post("/sessions/{sessionID}/abort", api.AbortHandler(manager))
		pr.Post("/sessions/{sessionID}/hint", api.HintHandler(manager))
	})

	log.Printf("exercise-engine listening on %s", cfg.HTTPAddr)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
