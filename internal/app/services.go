package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/cen-na/contrats-backend/internal/clients/msgraph"
	"github.com/cen-na/contrats-backend/internal/clients/rediscache"
	"github.com/cen-na/contrats-backend/internal/clients/sirene"
	"github.com/cen-na/contrats-backend/internal/pkg/logger"
	"github.com/cen-na/contrats-backend/internal/services"
)

type Clients struct {
	Sirene sirene.Client
	Graph  msgraph.Client
	Cache  rediscache.Cache
}

type Services struct {
	Contrat services.ContratService
	RefData services.RefDataService
	Site    services.SiteService
	Auth    services.AuthService
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	sireneClient, err := sirene.New(log, cfg.Sirene)
	if err != nil {
		return Clients{}, fmt.Errorf("init sirene client: %w", err)
	}
	graphClient, err := msgraph.New(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init graph client: %w", err)
	}
	// The cache is an optimization; a missing Redis only costs reads
	// against the reference tables.
	cache, err := rediscache.New(log)
	if err != nil {
		log.Warn("redis unavailable, reference data will not be cached", "error", err)
		cache = nil
	}
	return Clients{Sirene: sireneClient, Graph: graphClient, Cache: cache}, nil
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")
	contratService := services.NewContratService(
		db, log,
		repos.Societe, repos.Agriculteur, repos.Referent, repos.Contrat,
		repos.Link, repos.Production, repos.Compteur,
		repos.Site, repos.RefData,
	)
	authService, err := services.NewAuthService(log, clients.Graph, cfg.Auth)
	if err != nil {
		return Services{}, fmt.Errorf("init auth service: %w", err)
	}
	return Services{
		Contrat: contratService,
		RefData: services.NewRefDataService(log, repos.RefData, clients.Cache),
		Site:    services.NewSiteService(log, repos.Site),
		Auth:    authService,
	}, nil
}
