package services

import (
	"context"
	"errors"
	"time"

	"github.com/cen-na/contrats-backend/internal/clients/rediscache"
	refRepos "github.com/cen-na/contrats-backend/internal/data/repos/refdata"
	types "github.com/cen-na/contrats-backend/internal/domain/refdata"
	"github.com/cen-na/contrats-backend/internal/pkg/dbctx"
	"github.com/cen-na/contrats-backend/internal/pkg/logger"
)

const (
	formChoicesKey = "refdata:form_choices"
	formChoicesTTL = 5 * time.Minute
)

// FormChoices carries every selectable option list the entry form needs,
// in one payload.
type FormChoices struct {
	TypeContrats      []types.TypeContrat     `json:"type_contrats"`
	TypeMilieux       []types.TypeMilieu      `json:"type_milieux"`
	TypeProductions   []types.TypeProduction  `json:"type_productions"`
	ModeProductions   []types.ModeProduction  `json:"mode_productions"`
	TypeProduitsFinis []types.TypeProduitFini `json:"type_produits_finis"`
}

// RefDataService serves reference data decoupled from the write path,
// behind a short-TTL cache when one is configured.
type RefDataService interface {
	FormChoices(ctx context.Context) (*FormChoices, error)
}

type refDataService struct {
	log     *logger.Logger
	refdata refRepos.Repo
	cache   rediscache.Cache
}

// NewRefDataService accepts a nil cache; reads then go straight to the DB.
func NewRefDataService(log *logger.Logger, refdata refRepos.Repo, cache rediscache.Cache) RefDataService {
	return &refDataService{
		log:     log.With("service", "RefDataService"),
		refdata: refdata,
		cache:   cache,
	}
}

func (s *refDataService) FormChoices(ctx context.Context) (*FormChoices, error) {
	if s.cache != nil {
		var cached FormChoices
		err := s.cache.GetJSON(ctx, formChoicesKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, rediscache.ErrMiss) {
			s.log.Warn("Reference data cache read failed", "error", err)
		}
	}

	dbc := dbctx.Context{Ctx: ctx}
	out := &FormChoices{}
	var err error
	if out.TypeContrats, err = s.refdata.TypeContrats(dbc); err != nil {
		return nil, err
	}
	if out.TypeMilieux, err = s.refdata.TypeMilieux(dbc); err != nil {
		return nil, err
	}
	if out.TypeProductions, err = s.refdata.TypeProductions(dbc); err != nil {
		return nil, err
	}
	if out.ModeProductions, err = s.refdata.ModeProductions(dbc); err != nil {
		return nil, err
	}
	if out.TypeProduitsFinis, err = s.refdata.TypeProduitsFinis(dbc); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, formChoicesKey, out, formChoicesTTL); err != nil {
			s.log.Warn("Reference data cache write failed", "error", err)
		}
	}
	return out, nil
}
