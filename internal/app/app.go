package app

import (
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/cen-na/contrats-backend/internal/data/db"
	httpx "github.com/cen-na/contrats-backend/internal/http"
	"github.com/cen-na/contrats-backend/internal/pkg/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Foncier  *gorm.DB
	Server   *httpx.Server
	Cfg      Config
	Repos    Repos
	Services Services
	Clients  Clients
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading configuration...")
	cfg := LoadConfig()

	pg, err := db.NewPostgresService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if err := pg.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	theDB := pg.DB()

	foncier, err := db.NewFoncier(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init foncier database: %w", err)
	}

	repos := wireRepos(theDB, foncier, log)

	clients, err := wireClients(log, cfg)
	if err != nil {
		log.Sync()
		return nil, err
	}

	svcs, err := wireServices(theDB, log, cfg, repos, clients)
	if err != nil {
		log.Sync()
		return nil, err
	}

	server := httpx.NewServer(wireRouter(log, repos, svcs, clients))

	return &App{
		Log:      log,
		DB:       theDB,
		Foncier:  foncier,
		Server:   server,
		Cfg:      cfg,
		Repos:    repos,
		Services: svcs,
		Clients:  clients,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("Starting HTTP server", "addr", a.Cfg.ListenAddr)
	return a.Server.Run(a.Cfg.ListenAddr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Clients.Cache != nil {
		_ = a.Clients.Cache.Close()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
