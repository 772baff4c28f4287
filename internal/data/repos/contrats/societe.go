package contrats

import (
	"errors"

	"gorm.io/gorm"

	types "github.com/cen-na/contrats-backend/internal/domain/contrats"
	"github.com/cen-na/contrats-backend/internal/pkg/dbctx"
	"github.com/cen-na/contrats-backend/internal/pkg/logger"
)

type SocieteRepo interface {
	Create(dbc dbctx.Context, row *types.Societe) error
	GetByID(dbc dbctx.Context, id int) (*types.Societe, error)
	GetByIDs(dbc dbctx.Context, ids []int) ([]*types.Societe, error)
	GetBySiret(dbc dbctx.Context, siret string) (*types.Societe, error)
	GetByNom(dbc dbctx.Context, nom string) (*types.Societe, error)
	Update(dbc dbctx.Context, row *types.Societe) error
	DeleteByID(dbc dbctx.Context, id int) error
}

type societeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSocieteRepo(db *gorm.DB, baseLog *logger.Logger) SocieteRepo {
	return &societeRepo{db: db, log: baseLog.With("repo", "SocieteRepo")}
}

func (r *societeRepo) handle(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx)
}

func (r *societeRepo) Create(dbc dbctx.Context, row *types.Societe) error {
	return r.handle(dbc).Create(row).Error
}

func (r *societeRepo) GetByID(dbc dbctx.Context, id int) (*types.Societe, error) {
	var row types.Societe
	if err := r.handle(dbc).First(&row, "id_societe = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *societeRepo) GetByIDs(dbc dbctx.Context, ids []int) ([]*types.Societe, error) {
	var rows []*types.Societe
	if len(ids) == 0 {
		return rows, nil
	}
	if err := r.handle(dbc).Where("id_societe IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *societeRepo) GetBySiret(dbc dbctx.Context, siret string) (*types.Societe, error) {
	var row types.Societe
	if err := r.handle(dbc).First(&row, "siret = ?", siret).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *societeRepo) GetByNom(dbc dbctx.Context, nom string) (*types.Societe, error) {
	var row types.Societe
	if err := r.handle(dbc).First(&row, "nom_societe = ?", nom).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *societeRepo) Update(dbc dbctx.Context, row *types.Societe) error {
	return r.handle(dbc).Save(row).Error
}

func (r *societeRepo) DeleteByID(dbc dbctx.Context, id int) error {
	return r.handle(dbc).Delete(&types.Societe{}, "id_societe = ?", id).Error
}
