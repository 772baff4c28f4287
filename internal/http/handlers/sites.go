package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cen-na/contrats-backend/internal/http/response"
	"github.com/cen-na/contrats-backend/internal/services"
)

type SiteHandler struct {
	siteService services.SiteService
}

func NewSiteHandler(siteService services.SiteService) *SiteHandler {
	return &SiteHandler{siteService: siteService}
}

// GET /sites/geojson
func (sh *SiteHandler) All(c *gin.Context) {
	fc, err := sh.siteService.AllFeatures(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, fc)
}

// GET /sites/:id/geojson
func (sh *SiteHandler) ByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	fc, err := sh.siteService.FeatureByID(c.Request.Context(), id)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, fc)
}
