package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/cen-na/contrats-backend/internal/http/response"
	"github.com/cen-na/contrats-backend/internal/services"
)

type RefDataHandler struct {
	refDataService services.RefDataService
}

func NewRefDataHandler(refDataService services.RefDataService) *RefDataHandler {
	return &RefDataHandler{refDataService: refDataService}
}

// GET /form-choices
func (rh *RefDataHandler) FormChoices(c *gin.Context) {
	choices, err := rh.refDataService.FormChoices(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, choices)
}
