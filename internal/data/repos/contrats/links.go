package contrats

import (
	"gorm.io/gorm"

	types "github.com/cen-na/contrats-backend/internal/domain/contrats"
	"github.com/cen-na/contrats-backend/internal/pkg/dbctx"
	"github.com/cen-na/contrats-backend/internal/pkg/logger"
)

// LinkRepo owns the contract-side association rows: site links, milieu
// links and produit-fini links. Collection associations are replaced
// wholesale on edit, never diffed.
type LinkRepo interface {
	CreateSiteLink(dbc dbctx.Context, row *types.ContratSiteCen) error
	UpdateSiteLink(dbc dbctx.Context, row *types.ContratSiteCen) error
	SiteLinksByContratIDs(dbc dbctx.Context, contratIDs []int) (map[int][]types.ContratSiteCen, error)
	DeleteSiteLinksByContrat(dbc dbctx.Context, idContrat int) error

	ReplaceMilieux(dbc dbctx.Context, idContrat int, milieuIDs []int) error
	MilieuxByContratIDs(dbc dbctx.Context, contratIDs []int) (map[int][]int, error)
	DeleteMilieuxByContrat(dbc dbctx.Context, idContrat int) error

	ReplaceProduitsFinis(dbc dbctx.Context, idContrat int, produitIDs []int) error
	ProduitsFinisByContratIDs(dbc dbctx.Context, contratIDs []int) (map[int][]int, error)
	DeleteProduitsFinisByContrat(dbc dbctx.Context, idContrat int) error
}

type linkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLinkRepo(db *gorm.DB, baseLog *logger.Logger) LinkRepo {
	return &linkRepo{db: db, log: baseLog.With("repo", "LinkRepo")}
}

func (r *linkRepo) handle(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx)
}

func (r *linkRepo) CreateSiteLink(dbc dbctx.Context, row *types.ContratSiteCen) error {
	return r.handle(dbc).Create(row).Error
}

func (r *linkRepo) UpdateSiteLink(dbc dbctx.Context, row *types.ContratSiteCen) error {
	return r.handle(dbc).
		Model(&types.ContratSiteCen{}).
		Where("id_site = ? AND id_contrat = ?", row.IDSite, row.IDContrat).
		Updates(map[string]interface{}{
			"code_site": row.CodeSite,
			"nom_site":  row.NomSite,
		}).Error
}

func (r *linkRepo) SiteLinksByContratIDs(dbc dbctx.Context, contratIDs []int) (map[int][]types.ContratSiteCen, error) {
	out := make(map[int][]types.ContratSiteCen, len(contratIDs))
	if len(contratIDs) == 0 {
		return out, nil
	}
	var rows []types.ContratSiteCen
	if err := r.handle(dbc).
		Where("id_contrat IN ?", contratIDs).
		Order("id_site ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.IDContrat] = append(out[row.IDContrat], row)
	}
	return out, nil
}

func (r *linkRepo) DeleteSiteLinksByContrat(dbc dbctx.Context, idContrat int) error {
	return r.handle(dbc).Delete(&types.ContratSiteCen{}, "id_contrat = ?", idContrat).Error
}

func (r *linkRepo) ReplaceMilieux(dbc dbctx.Context, idContrat int, milieuIDs []int) error {
	if err := r.DeleteMilieuxByContrat(dbc, idContrat); err != nil {
		return err
	}
	if len(milieuIDs) == 0 {
		return nil
	}
	rows := make([]types.TypeMilieuContrat, 0, len(milieuIDs))
	for _, id := range milieuIDs {
		rows = append(rows, types.TypeMilieuContrat{IDTypeMilieu: id, IDContrat: idContrat})
	}
	return r.handle(dbc).Create(&rows).Error
}

func (r *linkRepo) MilieuxByContratIDs(dbc dbctx.Context, contratIDs []int) (map[int][]int, error) {
	out := make(map[int][]int, len(contratIDs))
	if len(contratIDs) == 0 {
		return out, nil
	}
	var rows []types.TypeMilieuContrat
	if err := r.handle(dbc).
		Where("id_contrat IN ?", contratIDs).
		Order("id_type_milieu ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.IDContrat] = append(out[row.IDContrat], row.IDTypeMilieu)
	}
	return out, nil
}

func (r *linkRepo) DeleteMilieuxByContrat(dbc dbctx.Context, idContrat int) error {
	return r.handle(dbc).Delete(&types.TypeMilieuContrat{}, "id_contrat = ?", idContrat).Error
}

func (r *linkRepo) ReplaceProduitsFinis(dbc dbctx.Context, idContrat int, produitIDs []int) error {
	if err := r.DeleteProduitsFinisByContrat(dbc, idContrat); err != nil {
		return err
	}
	if len(produitIDs) == 0 {
		return nil
	}
	rows := make([]types.ProduitFiniContrat, 0, len(produitIDs))
	for _, id := range produitIDs {
		rows = append(rows, types.ProduitFiniContrat{IDTypeProduitFini: id, IDContrat: idContrat})
	}
	return r.handle(dbc).Create(&rows).Error
}

func (r *linkRepo) ProduitsFinisByContratIDs(dbc dbctx.Context, contratIDs []int) (map[int][]int, error) {
	out := make(map[int][]int, len(contratIDs))
	if len(contratIDs) == 0 {
		return out, nil
	}
	var rows []types.ProduitFiniContrat
	if err := r.handle(dbc).
		Where("id_contrat IN ?", contratIDs).
		Order("id_type_produit_fini ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.IDContrat] = append(out[row.IDContrat], row.IDTypeProduitFini)
	}
	return out, nil
}

func (r *linkRepo) DeleteProduitsFinisByContrat(dbc dbctx.Context, idContrat int) error {
	return r.handle(dbc).Delete(&types.ProduitFiniContrat{}, "id_contrat = ?", idContrat).Error
}
