package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/planner/internal/config"
	"github.com/klokku/planner/internal/database"
	"github.com/klokku/planner/internal/rest"
	"github.com/klokku/planner/internal/storage"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, storage, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	db     *sql.DB
	deps   *Dependencies
	router *mux.Router
	srv    *http.Server
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

func New(cfg config.Application) (*Application, error) {
	kv, db, err := OpenStorage(cfg)
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()

	// Build dependencies (stores, view, handlers...)
	deps := BuildDependencies(kv, cfg)
	deps.View.Mount(context.Background())

	// Middleware chain
	SetupMiddleware(r, deps, cfg)

	// Routes
	RegisterRoutes(r, deps, cfg)

	// Frontend
	if cfg.Frontend.Enabled {
		frontend := rest.NewFrontendHandler(cfg.Frontend.Dir, "index.html")
		r.PathPrefix("/").Handler(frontend)
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Listen,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, db: db, deps: deps, router: r, srv: srv}, nil
}

// OpenStorage builds the key-value store selected by the storage driver.
// The returned db is nil unless the driver is backed by SQL.
func OpenStorage(cfg config.Application) (storage.KeyValue, *sql.DB, error) {
	switch cfg.Storage.Driver {
	case "memory":
		log.Warn("Using in-memory storage, nothing survives a restart")
		return storage.NewMemoryStore(), nil, nil
	case "file":
		return storage.NewFileStore(cfg.Storage.Path), nil, nil
	case "sqlite", "postgres":
		if cfg.Storage.Driver == "sqlite" && cfg.Storage.Path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0o755); err != nil {
				return nil, nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		db, err := database.Open(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(db, cfg.Storage.Driver); err != nil {
			db.Close()
			return nil, nil, err
		}
		kv, err := storage.NewSQLStore(db, cfg.Storage.Driver)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return kv, db, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func (a *Application) Handler() http.Handler {
	return a.router
}

// Run starts the HTTP server and blocks.
func (a *Application) Run() error {
	log.Infof("Starting server on %s with %s storage", a.srv.Addr, a.cfg.Storage.Driver)
	defer a.Close()
	return a.srv.ListenAndServe()
}

func (a *Application) Close() error {
	a.deps.View.Unmount()
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
