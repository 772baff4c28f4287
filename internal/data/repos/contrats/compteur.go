package contrats

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	types "github.com/cen-na/contrats-backend/internal/domain/contrats"
	"github.com/cen-na/contrats-backend/internal/pkg/dbctx"
	"github.com/cen-na/contrats-backend/internal/pkg/logger"
)

// Synthetic site ids start above any plausible id coming out of the
// geometry view, so the two ranges never collide.
const syntheticSiteIDFloor = 1000000

type CompteurRepo interface {
	// NextSiteID draws the next synthetic site id. Caller is expected to
	// run inside the create transaction.
	NextSiteID(dbc dbctx.Context) (int, error)
}

type compteurRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCompteurRepo(db *gorm.DB, baseLog *logger.Logger) CompteurRepo {
	return &compteurRepo{db: db, log: baseLog.With("repo", "CompteurRepo")}
}

func (r *compteurRepo) handle(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx)
}

func (r *compteurRepo) NextSiteID(dbc dbctx.Context) (int, error) {
	h := r.handle(dbc)

	var row types.CompteurSite
	err := h.First(&row, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = types.CompteurSite{ID: 1, Valeur: syntheticSiteIDFloor}
		if err := h.Create(&row).Error; err != nil {
			return 0, fmt.Errorf("seed compteur_site: %w", err)
		}
	} else if err != nil {
		return 0, err
	}

	res := h.Model(&types.CompteurSite{}).
		Where("id = ?", 1).
		UpdateColumn("valeur", gorm.Expr("valeur + 1"))
	if res.Error != nil {
		return 0, res.Error
	}

	if err := h.First(&row, "id = ?", 1).Error; err != nil {
		return 0, err
	}
	return row.Valeur, nil
}
