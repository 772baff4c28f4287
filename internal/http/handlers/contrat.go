package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cen-na/contrats-backend/internal/http/response"
	"github.com/cen-na/contrats-backend/internal/services"
)

type ContratHandler struct {
	contratService services.ContratService
}

func NewContratHandler(contratService services.ContratService) *ContratHandler {
	return &ContratHandler{contratService: contratService}
}

// GET /contrats
func (ch *ContratHandler) List(c *gin.Context) {
	details, err := ch.contratService.List(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"contrats": details})
}

// GET /contrats/:id
func (ch *ContratHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	detail, err := ch.contratService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, detail)
}

// POST /contrats
func (ch *ContratHandler) Create(c *gin.Context) {
	var input services.ContratInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	id, err := ch.contratService.Create(c.Request.Context(), input)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"id_contrat": id})
}

// PUT /contrats/:id
func (ch *ContratHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var input services.ContratInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := ch.contratService.Update(c.Request.Context(), id, input); err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// DELETE /contrats/:id
func (ch *ContratHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := ch.contratService.Delete(c.Request.Context(), id); err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
