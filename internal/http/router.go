package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/cen-na/contrats-backend/internal/http/handlers"
	httpMW "github.com/cen-na/contrats-backend/internal/http/middleware"
	"github.com/cen-na/contrats-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware

	ContratHandler *httpH.ContratHandler
	SiretHandler   *httpH.SiretHandler
	SiteHandler    *httpH.SiteHandler
	RefDataHandler *httpH.RefDataHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.GET("/auth/login", cfg.AuthHandler.Login)
			api.GET("/auth/callback", cfg.AuthHandler.Callback)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.GET("/me", cfg.AuthHandler.Me)
			protected.POST("/auth/logout", cfg.AuthHandler.Logout)
		}

		// Contracts
		if cfg.ContratHandler != nil {
			protected.GET("/contrats", cfg.ContratHandler.List)
			protected.POST("/contrats", cfg.ContratHandler.Create)
			protected.GET("/contrats/:id", cfg.ContratHandler.Get)
			protected.PUT("/contrats/:id", cfg.ContratHandler.Update)
			protected.DELETE("/contrats/:id", cfg.ContratHandler.Delete)
		}

		// Business registry lookup
		if cfg.SiretHandler != nil {
			protected.POST("/siret", cfg.SiretHandler.Lookup)
		}

		// Site geometries
		if cfg.SiteHandler != nil {
			protected.GET("/sites/geojson", cfg.SiteHandler.All)
			protected.GET("/sites/:id/geojson", cfg.SiteHandler.ByID)
		}

		// Form reference data
		if cfg.RefDataHandler != nil {
			protected.GET("/form-choices", cfg.RefDataHandler.FormChoices)
		}
	}

	return r
}
