package refdata

import (
	"gorm.io/gorm"

	types "github.com/cen-na/contrats-backend/internal/domain/refdata"
	"github.com/cen-na/contrats-backend/internal/pkg/dbctx"
	"github.com/cen-na/contrats-backend/internal/pkg/logger"
)

// Repo reads the referentiel lookup tables. Everything here is read-only.
type Repo interface {
	TypeContrats(dbc dbctx.Context) ([]types.TypeContrat, error)
	TypeMilieux(dbc dbctx.Context) ([]types.TypeMilieu, error)
	TypeProductions(dbc dbctx.Context) ([]types.TypeProduction, error)
	ModeProductions(dbc dbctx.Context) ([]types.ModeProduction, error)
	TypeProduitsFinis(dbc dbctx.Context) ([]types.TypeProduitFini, error)

	CategorieJuridiqueLabels(dbc dbctx.Context) (map[string]string, error)
	ActivitePrincipaleLabels(dbc dbctx.Context) (map[string]string, error)
	TrancheEffectifLabels(dbc dbctx.Context) (map[string]string, error)
}

type repo struct {
	db  *gorm.DB
	log *logger.Logger
}

func New(db *gorm.DB, baseLog *logger.Logger) Repo {
	return &repo{db: db, log: baseLog.With("repo", "RefDataRepo")}
}

func (r *repo) handle(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx)
}

func (r *repo) TypeContrats(dbc dbctx.Context) ([]types.TypeContrat, error) {
	var rows []types.TypeContrat
	if err := r.handle(dbc).Order("id_type_contrat ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) TypeMilieux(dbc dbctx.Context) ([]types.TypeMilieu, error) {
	var rows []types.TypeMilieu
	if err := r.handle(dbc).Order("id_type_milieu ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) TypeProductions(dbc dbctx.Context) ([]types.TypeProduction, error) {
	var rows []types.TypeProduction
	if err := r.handle(dbc).Order("id_type_production ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) ModeProductions(dbc dbctx.Context) ([]types.ModeProduction, error) {
	var rows []types.ModeProduction
	if err := r.handle(dbc).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) TypeProduitsFinis(dbc dbctx.Context) ([]types.TypeProduitFini, error) {
	var rows []types.TypeProduitFini
	if err := r.handle(dbc).Order("id_type_produit_fini ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) CategorieJuridiqueLabels(dbc dbctx.Context) (map[string]string, error) {
	var rows []types.TypeCategorieJuridique
	if err := r.handle(dbc).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Code] = row.Libelle
	}
	return out, nil
}

func (r *repo) ActivitePrincipaleLabels(dbc dbctx.Context) (map[string]string, error) {
	var rows []types.TypeActivitePrincipale
	if err := r.handle(dbc).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Code] = row.Libelle
	}
	return out, nil
}

func (r *repo) TrancheEffectifLabels(dbc dbctx.Context) (map[string]string, error) {
	var rows []types.TypeTrancheEffectif
	if err := r.handle(dbc).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Code] = row.Libelle
	}
	return out, nil
}
