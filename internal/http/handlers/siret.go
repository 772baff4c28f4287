package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cen-na/contrats-backend/internal/clients/sirene"
	contratRepos "github.com/cen-na/contrats-backend/internal/data/repos/contrats"
	"github.com/cen-na/contrats-backend/internal/http/response"
	"github.com/cen-na/contrats-backend/internal/pkg/dbctx"
	"github.com/cen-na/contrats-backend/internal/pkg/logger"
)

type SiretHandler struct {
	log      *logger.Logger
	societes contratRepos.SocieteRepo
	sirene   sirene.Client
}

func NewSiretHandler(log *logger.Logger, societes contratRepos.SocieteRepo, sireneClient sirene.Client) *SiretHandler {
	return &SiretHandler{
		log:      log.With("handler", "SiretHandler"),
		societes: societes,
		sirene:   sireneClient,
	}
}

// POST /siret
// body: { "siret": "..." }
//
// A company already recorded locally answers from storage so the form
// pre-fills with what was last saved, not with the registry's view.
// Unknown SIRETs go to the SIRENE API.
func (sh *SiretHandler) Lookup(c *gin.Context) {
	var req struct {
		Siret string `json:"siret"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	siret := req.Siret
	ctx := c.Request.Context()

	existing, err := sh.societes.GetBySiret(dbctx.Context{Ctx: ctx}, siret)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	if existing != nil {
		response.RespondOK(c, gin.H{
			"source":  "local",
			"societe": existing,
		})
		return
	}

	etab, err := sh.sirene.Lookup(ctx, siret)
	if err != nil {
		sh.log.Warn("sirene lookup failed", "siret", siret, "error", err)
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"source":        "sirene",
		"etablissement": etab,
	})
}
