package testutil

import (
	"context"
	"testing"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	contratTypes "github.com/cen-na/contrats-backend/internal/domain/contrats"
	refTypes "github.com/cen-na/contrats-backend/internal/domain/refdata"
	siteTypes "github.com/cen-na/contrats-backend/internal/domain/sites"
)

// SeedRefData inserts the reference rows most tests need: milieu ids 1-3,
// production types 1-2, mode 1, produits finis 1 and 7, contract type 1.
func SeedRefData(tb testing.TB, ctx context.Context, tx *gorm.DB) {
	tb.Helper()
	rows := []interface{}{
		&refTypes.TypeContrat{IDTypeContrat: 1, AppellationContrat: "Bail rural environnemental"},
		&refTypes.TypeMilieu{IDTypeMilieu: 1, Milieu: "Prairie humide"},
		&refTypes.TypeMilieu{IDTypeMilieu: 2, Milieu: "Pelouse seche"},
		&refTypes.TypeMilieu{IDTypeMilieu: 3, Milieu: "Lande"},
		&refTypes.TypeProduction{IDTypeProduction: 1, NatureProduction: "Elevage bovin"},
		&refTypes.TypeProduction{IDTypeProduction: 2, NatureProduction: "Maraichage"},
		&refTypes.ModeProduction{ID: 1, Nom: "Agriculture biologique"},
		&refTypes.ModeProduction{ID: 2, Nom: "Conventionnelle"},
		&refTypes.TypeProduitFini{IDTypeProduitFini: 1, NatureProduitFini: "Fromage"},
		&refTypes.TypeProduitFini{IDTypeProduitFini: 7, NatureProduitFini: "Viande"},
		&refTypes.TypeCategorieJuridique{Code: "5499", Libelle: "Societe a responsabilite limitee"},
		&refTypes.TypeActivitePrincipale{Code: "01.41Z", Libelle: "Elevage de vaches laitieres"},
		&refTypes.TypeTrancheEffectif{Code: "11", Libelle: "10 a 19 salaries"},
	}
	for _, row := range rows {
		if err := tx.WithContext(ctx).Create(row).Error; err != nil {
			tb.Fatalf("seed refdata: %v", err)
		}
	}
}

func SeedSociete(tb testing.TB, ctx context.Context, tx *gorm.DB, nom, siret string) *contratTypes.Societe {
	tb.Helper()
	s := &contratTypes.Societe{NomSociete: nom, Contact: "contact"}
	if siret != "" {
		s.Siret = &siret
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed societe: %v", err)
	}
	return s
}

func SeedSite(tb testing.TB, ctx context.Context, tx *gorm.DB, id int, code, nom string, geom string) *siteTypes.VueSite {
	tb.Helper()
	if geom == "" {
		geom = `{"type":"Polygon","coordinates":[[[0,0],[0,1],[1,1],[0,0]]]}`
	}
	v := &siteTypes.VueSite{
		IDSite:   id,
		CodeSite: code,
		NomSite:  nom,
		Geom:     datatypes.JSON([]byte(geom)),
	}
	if err := tx.WithContext(ctx).Create(v).Error; err != nil {
		tb.Fatalf("seed site: %v", err)
	}
	return v
}
