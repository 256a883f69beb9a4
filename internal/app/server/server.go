package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"simpeg/internal/domain/roster"
	"simpeg/internal/platform/config"
	"simpeg/internal/platform/db"
	"simpeg/internal/platform/jobs"
	"simpeg/internal/platform/storage"
	authhandler "simpeg/internal/transport/http/handlers/auth"
	dashboardhandler "simpeg/internal/transport/http/handlers/dashboard"
	dukhandler "simpeg/internal/transport/http/handlers/duk"
	personnelhandler "simpeg/internal/transport/http/handlers/personnel"
	registryhandler "simpeg/internal/transport/http/handlers/registry"
	"simpeg/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	DB     *pgxpool.Pool
	Roster *roster.Service
	Router http.Handler
}

// New connects, migrates, seeds and loads the roster state, then builds
// the router. The caller owns the pool's lifetime.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect failed: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations failed: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed failed: %w", err)
		}
	}

	rosterSvc := roster.New(roster.NewDBStore(pool), cfg.SchoolName)
	if err := rosterSvc.Load(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	app := &App{Config: cfg, DB: pool, Roster: rosterSvc}
	app.Router = app.buildRouter()
	return app, nil
}

func (a *App) buildRouter() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(a.Config.Environment == "production"))
	router.Use(middleware.BodyLimit(a.Config.MaxBodyBytes))
	router.Use(middleware.Auth(a.Config.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.DB.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	files := storage.NewFileStore(a.Config.StorageDir)

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(a.Roster, a.Config.JWTSecret).RegisterRoutes(r)
		personnelhandler.NewHandler(a.Roster, files).RegisterRoutes(r)
		registryhandler.NewHandler(a.Roster).RegisterRoutes(r)
		dukhandler.NewHandler(a.Roster, a.Config.SchoolName).RegisterRoutes(r)
		dashboardhandler.NewHandler(a.Roster).RegisterRoutes(r)
	})

	return router
}

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := New(ctx, cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.DB.Close()

	jobsSvc := jobs.New(app.Roster)
	if err := jobsSvc.Start(ctx, cfg.CompletionRefreshSpec); err != nil {
		log.Fatalf("job scheduler failed: %v", err)
	}

	log.Printf("SIMPEG server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
