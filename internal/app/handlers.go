package app

import (
	httpx "github.com/cen-na/contrats-backend/internal/http"
	httpH "github.com/cen-na/contrats-backend/internal/http/handlers"
	httpMW "github.com/cen-na/contrats-backend/internal/http/middleware"
	"github.com/cen-na/contrats-backend/internal/pkg/logger"
)

func wireRouter(log *logger.Logger, repos Repos, svcs Services, clients Clients) httpx.RouterConfig {
	log.Info("Wiring handlers...")
	return httpx.RouterConfig{
		Log:            log,
		AuthHandler:    httpH.NewAuthHandler(svcs.Auth),
		AuthMiddleware: httpMW.NewAuthMiddleware(log, svcs.Auth),
		ContratHandler: httpH.NewContratHandler(svcs.Contrat),
		SiretHandler:   httpH.NewSiretHandler(log, repos.Societe, clients.Sirene),
		SiteHandler:    httpH.NewSiteHandler(svcs.Site),
		RefDataHandler: httpH.NewRefDataHandler(svcs.RefData),
		HealthHandler:  httpH.NewHealthHandler(),
	}
}
