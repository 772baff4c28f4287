package contrats

import (
	"errors"

	"gorm.io/gorm"

	types "github.com/cen-na/contrats-backend/internal/domain/contrats"
	"github.com/cen-na/contrats-backend/internal/pkg/dbctx"
	"github.com/cen-na/contrats-backend/internal/pkg/logger"
)

type ReferentRepo interface {
	Create(dbc dbctx.Context, row *types.Referent) error
	Update(dbc dbctx.Context, row *types.Referent) error
	GetByID(dbc dbctx.Context, id int) (*types.Referent, error)
	GetByIDs(dbc dbctx.Context, ids []int) ([]*types.Referent, error)
	// GetByNomPrenom backs the read-then-write dedup on create. Not atomic:
	// concurrent creates can still insert duplicates.
	GetByNomPrenom(dbc dbctx.Context, nom, prenom string) (*types.Referent, error)
	DeleteByID(dbc dbctx.Context, id int) error
}

type referentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReferentRepo(db *gorm.DB, baseLog *logger.Logger) ReferentRepo {
	return &referentRepo{db: db, log: baseLog.With("repo", "ReferentRepo")}
}

func (r *referentRepo) handle(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx)
}

func (r *referentRepo) Create(dbc dbctx.Context, row *types.Referent) error {
	return r.handle(dbc).Create(row).Error
}

func (r *referentRepo) Update(dbc dbctx.Context, row *types.Referent) error {
	return r.handle(dbc).Save(row).Error
}

func (r *referentRepo) GetByID(dbc dbctx.Context, id int) (*types.Referent, error) {
	var row types.Referent
	if err := r.handle(dbc).First(&row, "id_referent = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *referentRepo) GetByIDs(dbc dbctx.Context, ids []int) ([]*types.Referent, error) {
	var rows []*types.Referent
	if len(ids) == 0 {
		return rows, nil
	}
	if err := r.handle(dbc).Where("id_referent IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *referentRepo) GetByNomPrenom(dbc dbctx.Context, nom, prenom string) (*types.Referent, error) {
	var row types.Referent
	if err := r.handle(dbc).
		First(&row, "nom_referent = ? AND prenom_referent = ?", nom, prenom).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *referentRepo) DeleteByID(dbc dbctx.Context, id int) error {
	return r.handle(dbc).Delete(&types.Referent{}, "id_referent = ?", id).Error
}
