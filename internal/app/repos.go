package app

import (
	"gorm.io/gorm"

	contratRepos "github.com/cen-na/contrats-backend/internal/data/repos/contrats"
	refRepos "github.com/cen-na/contrats-backend/internal/data/repos/refdata"
	siteRepos "github.com/cen-na/contrats-backend/internal/data/repos/sites"
	"github.com/cen-na/contrats-backend/internal/pkg/logger"
)

type Repos struct {
	Societe     contratRepos.SocieteRepo
	Agriculteur contratRepos.AgriculteurRepo
	Referent    contratRepos.ReferentRepo
	Contrat     contratRepos.ContratRepo
	Link        contratRepos.LinkRepo
	Production  contratRepos.ProductionRepo
	Compteur    contratRepos.CompteurRepo
	RefData     refRepos.Repo
	Site        siteRepos.Repo
}

// wireRepos builds every repo on the primary handle except sites,
// which read from the land-management database.
func wireRepos(db *gorm.DB, foncier *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Societe:     contratRepos.NewSocieteRepo(db, log),
		Agriculteur: contratRepos.NewAgriculteurRepo(db, log),
		Referent:    contratRepos.NewReferentRepo(db, log),
		Contrat:     contratRepos.NewContratRepo(db, log),
		Link:        contratRepos.NewLinkRepo(db, log),
		Production:  contratRepos.NewProductionRepo(db, log),
		Compteur:    contratRepos.NewCompteurRepo(db, log),
		RefData:     refRepos.New(db, log),
		Site:        siteRepos.New(foncier, log),
	}
}
