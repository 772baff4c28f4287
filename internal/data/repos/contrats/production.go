package contrats

import (
	"gorm.io/gorm"

	types "github.com/cen-na/contrats-backend/internal/domain/contrats"
	"github.com/cen-na/contrats-backend/internal/pkg/dbctx"
	"github.com/cen-na/contrats-backend/internal/pkg/logger"
)

// ProductionRepo owns the societe-scoped production links. The set is
// keyed by (societe, type de production): one mode per type at a time.
type ProductionRepo interface {
	ReplaceForSociete(dbc dbctx.Context, idSociete int, rows []types.TypeProductionSociete) error
	BySocieteIDs(dbc dbctx.Context, societeIDs []int) (map[int][]types.TypeProductionSociete, error)
	DeleteBySociete(dbc dbctx.Context, idSociete int) error
}

type productionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProductionRepo(db *gorm.DB, baseLog *logger.Logger) ProductionRepo {
	return &productionRepo{db: db, log: baseLog.With("repo", "ProductionRepo")}
}

func (r *productionRepo) handle(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx)
}

func (r *productionRepo) ReplaceForSociete(dbc dbctx.Context, idSociete int, rows []types.TypeProductionSociete) error {
	if err := r.DeleteBySociete(dbc, idSociete); err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		rows[i].IDSociete = idSociete
	}
	return r.handle(dbc).Create(&rows).Error
}

func (r *productionRepo) BySocieteIDs(dbc dbctx.Context, societeIDs []int) (map[int][]types.TypeProductionSociete, error) {
	out := make(map[int][]types.TypeProductionSociete, len(societeIDs))
	if len(societeIDs) == 0 {
		return out, nil
	}
	var rows []types.TypeProductionSociete
	if err := r.handle(dbc).Where("id_societe IN ?", societeIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.IDSociete] = append(out[row.IDSociete], row)
	}
	return out, nil
}

func (r *productionRepo) DeleteBySociete(dbc dbctx.Context, idSociete int) error {
	return r.handle(dbc).Delete(&types.TypeProductionSociete{}, "id_societe = ?", idSociete).Error
}
