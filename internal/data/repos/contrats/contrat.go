package contrats

import (
	"errors"

	"gorm.io/gorm"

	types "github.com/cen-na/contrats-backend/internal/domain/contrats"
	"github.com/cen-na/contrats-backend/internal/pkg/dbctx"
	"github.com/cen-na/contrats-backend/internal/pkg/logger"
)

type ContratRepo interface {
	Create(dbc dbctx.Context, row *types.Contrat) error
	Update(dbc dbctx.Context, row *types.Contrat) error
	GetByID(dbc dbctx.Context, id int) (*types.Contrat, error)
	// ListPage returns contracts ordered by id, offset/limit batched so
	// listings stay memory bounded.
	ListPage(dbc dbctx.Context, offset, limit int) ([]*types.Contrat, error)
	CountBySociete(dbc dbctx.Context, idSociete int) (int64, error)
	CountByReferent(dbc dbctx.Context, idReferent int) (int64, error)
	DeleteByID(dbc dbctx.Context, id int) error
}

type contratRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContratRepo(db *gorm.DB, baseLog *logger.Logger) ContratRepo {
	return &contratRepo{db: db, log: baseLog.With("repo", "ContratRepo")}
}

func (r *contratRepo) handle(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx)
}

func (r *contratRepo) Create(dbc dbctx.Context, row *types.Contrat) error {
	return r.handle(dbc).Create(row).Error
}

func (r *contratRepo) Update(dbc dbctx.Context, row *types.Contrat) error {
	return r.handle(dbc).Save(row).Error
}

func (r *contratRepo) GetByID(dbc dbctx.Context, id int) (*types.Contrat, error) {
	var row types.Contrat
	if err := r.handle(dbc).First(&row, "id_contrat = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *contratRepo) ListPage(dbc dbctx.Context, offset, limit int) ([]*types.Contrat, error) {
	var rows []*types.Contrat
	if err := r.handle(dbc).
		Order("id_contrat ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *contratRepo) CountBySociete(dbc dbctx.Context, idSociete int) (int64, error) {
	var count int64
	if err := r.handle(dbc).
		Model(&types.Contrat{}).
		Where("id_societe = ?", idSociete).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *contratRepo) CountByReferent(dbc dbctx.Context, idReferent int) (int64, error) {
	var count int64
	if err := r.handle(dbc).
		Model(&types.Contrat{}).
		Where("id_referent = ?", idReferent).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *contratRepo) DeleteByID(dbc dbctx.Context, id int) error {
	return r.handle(dbc).Delete(&types.Contrat{}, "id_contrat = ?", id).Error
}
