package contrats

import (
	"gorm.io/gorm"

	types "github.com/cen-na/contrats-backend/internal/domain/contrats"
	"github.com/cen-na/contrats-backend/internal/pkg/dbctx"
	"github.com/cen-na/contrats-backend/internal/pkg/logger"
)

type AgriculteurRepo interface {
	Create(dbc dbctx.Context, row *types.Agriculteur) error
	Update(dbc dbctx.Context, row *types.Agriculteur) error
	Link(dbc dbctx.Context, idAgriculteur, idSociete int) error

	// LatestBySociete returns the authoritative farmer for a societe:
	// the most recently added link wins. Nil when none is linked.
	LatestBySociete(dbc dbctx.Context, idSociete int) (*types.Agriculteur, error)
	LatestBySocieteIDs(dbc dbctx.Context, societeIDs []int) (map[int]*types.Agriculteur, error)

	DeleteLinksBySociete(dbc dbctx.Context, idSociete int) error
	// DeleteOrphans removes every farmer with no remaining societe link.
	// Idempotent: concurrent sweeps may race, delete-if-exists semantics.
	DeleteOrphans(dbc dbctx.Context) error
}

type agriculteurRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAgriculteurRepo(db *gorm.DB, baseLog *logger.Logger) AgriculteurRepo {
	return &agriculteurRepo{db: db, log: baseLog.With("repo", "AgriculteurRepo")}
}

func (r *agriculteurRepo) handle(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx)
}

func (r *agriculteurRepo) Create(dbc dbctx.Context, row *types.Agriculteur) error {
	return r.handle(dbc).Create(row).Error
}

func (r *agriculteurRepo) Update(dbc dbctx.Context, row *types.Agriculteur) error {
	return r.handle(dbc).Save(row).Error
}

func (r *agriculteurRepo) Link(dbc dbctx.Context, idAgriculteur, idSociete int) error {
	link := types.AgriculteurSociete{IDAgriculteur: idAgriculteur, IDSociete: idSociete}
	return r.handle(dbc).Create(&link).Error
}

func (r *agriculteurRepo) LatestBySociete(dbc dbctx.Context, idSociete int) (*types.Agriculteur, error) {
	byID, err := r.LatestBySocieteIDs(dbc, []int{idSociete})
	if err != nil {
		return nil, err
	}
	return byID[idSociete], nil
}

func (r *agriculteurRepo) LatestBySocieteIDs(dbc dbctx.Context, societeIDs []int) (map[int]*types.Agriculteur, error) {
	out := make(map[int]*types.Agriculteur, len(societeIDs))
	if len(societeIDs) == 0 {
		return out, nil
	}

	var links []types.AgriculteurSociete
	if err := r.handle(dbc).
		Where("id_societe IN ?", societeIDs).
		Order("id_agriculteur ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return out, nil
	}

	// Later links overwrite earlier ones: most recently added wins.
	latest := make(map[int]int, len(societeIDs))
	agriIDs := make([]int, 0, len(links))
	for _, l := range links {
		latest[l.IDSociete] = l.IDAgriculteur
		agriIDs = append(agriIDs, l.IDAgriculteur)
	}

	var rows []*types.Agriculteur
	if err := r.handle(dbc).Where("id_agriculteur IN ?", agriIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	byAgriID := make(map[int]*types.Agriculteur, len(rows))
	for _, a := range rows {
		byAgriID[a.IDAgriculteur] = a
	}
	for societeID, agriID := range latest {
		if a, ok := byAgriID[agriID]; ok {
			out[societeID] = a
		}
	}
	return out, nil
}

func (r *agriculteurRepo) DeleteLinksBySociete(dbc dbctx.Context, idSociete int) error {
	return r.handle(dbc).Delete(&types.AgriculteurSociete{}, "id_societe = ?", idSociete).Error
}

func (r *agriculteurRepo) DeleteOrphans(dbc dbctx.Context) error {
	return r.handle(dbc).
		Where("id_agriculteur NOT IN (?)",
			r.handle(dbc).Model(&types.AgriculteurSociete{}).Select("id_agriculteur")).
		Delete(&types.Agriculteur{}).Error
}
