package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	contratRepos "github.com/cen-na/contrats-backend/internal/data/repos/contrats"
	refRepos "github.com/cen-na/contrats-backend/internal/data/repos/refdata"
	siteRepos "github.com/cen-na/contrats-backend/internal/data/repos/sites"
	types "github.com/cen-na/contrats-backend/internal/domain/contrats"
	"github.com/cen-na/contrats-backend/internal/pkg/dbctx"
	pkgerrors "github.com/cen-na/contrats-backend/internal/pkg/errors"
	"github.com/cen-na/contrats-backend/internal/pkg/logger"
)

const listPageSize = 50

// ContratDetail is the fully assembled aggregate view.
type ContratDetail struct {
	Contrat types.Contrat `json:"contrat"`
	Societe types.Societe `json:"societe"`

	CategorieJuridiqueLib string `json:"categorie_juridique_lib"`
	ActivitePrincipaleLib string `json:"activite_principale_lib"`
	TrancheEffectifLib    string `json:"tranche_effectif_lib"`

	Agriculteur *types.Agriculteur    `json:"agriculteur"`
	Referent    *types.Referent       `json:"referent"`
	Site        *types.ContratSiteCen `json:"site"`

	TypeMilieuIDs  []int                         `json:"type_milieu_ids"`
	ProduitFiniIDs []int                         `json:"produit_fini_ids"`
	Productions    []types.TypeProductionSociete `json:"productions"`
}

// ContratService owns the contract aggregate: all cross-entity mutation
// funnels through these five operations. Each write runs in a single
// transaction; a failure at any step rolls the whole operation back.
type ContratService interface {
	Create(ctx context.Context, input ContratInput) (int, error)
	Get(ctx context.Context, id int) (*ContratDetail, error)
	Update(ctx context.Context, id int, input ContratInput) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context) ([]ContratDetail, error)
}

type contratService struct {
	db  *gorm.DB
	log *logger.Logger

	societes     contratRepos.SocieteRepo
	agriculteurs contratRepos.AgriculteurRepo
	referents    contratRepos.ReferentRepo
	contrats     contratRepos.ContratRepo
	links        contratRepos.LinkRepo
	productions  contratRepos.ProductionRepo
	compteur     contratRepos.CompteurRepo
	sites        siteRepos.Repo
	refdata      refRepos.Repo
}

func NewContratService(
	db *gorm.DB,
	log *logger.Logger,
	societes contratRepos.SocieteRepo,
	agriculteurs contratRepos.AgriculteurRepo,
	referents contratRepos.ReferentRepo,
	contrats contratRepos.ContratRepo,
	links contratRepos.LinkRepo,
	productions contratRepos.ProductionRepo,
	compteur contratRepos.CompteurRepo,
	sites siteRepos.Repo,
	refdata refRepos.Repo,
) ContratService {
	return &contratService{
		db:           db,
		log:          log.With("service", "ContratService"),
		societes:     societes,
		agriculteurs: agriculteurs,
		referents:    referents,
		contrats:     contrats,
		links:        links,
		productions:  productions,
		compteur:     compteur,
		sites:        sites,
		refdata:      refdata,
	}
}

func (s *contratService) Create(ctx context.Context, input ContratInput) (int, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}

	var contratID int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		societe, err := s.resolveSociete(dbc, input)
		if err != nil {
			return err
		}

		agri := &types.Agriculteur{
			NomAgri:       input.NomAgri,
			PrenomAgri:    input.PrenomAgri,
			DateNaissance: input.DateNaissance,
		}
		if err := s.agriculteurs.Create(dbc, agri); err != nil {
			return fmt.Errorf("create agriculteur: %w", err)
		}
		if err := s.agriculteurs.Link(dbc, agri.IDAgriculteur, societe.IDSociete); err != nil {
			return fmt.Errorf("link agriculteur: %w", err)
		}

		referent, err := s.resolveReferent(dbc, input.NomReferent, input.PrenomReferent)
		if err != nil {
			return err
		}

		typeContrat := input.IDTypeContrat
		contrat := &types.Contrat{
			SurfContractualisee: input.SurfContractualisee,
			DateSignature:       input.DateSignature,
			DatePriseEffet:      input.DatePriseEffet,
			DateFin:             input.DateFin,
			Latitude:            input.Latitude,
			Longitude:           input.Longitude,
			NumeroContrat:       input.NumeroContrat,
			Remarques:           input.RemarquesContrat,
			IDSociete:           societe.IDSociete,
			IDReferent:          &referent.IDReferent,
			IDTypeContrat:       &typeContrat,
		}
		if err := s.contrats.Create(dbc, contrat); err != nil {
			return fmt.Errorf("create contrat: %w", err)
		}

		siteID, err := s.resolveSiteID(dbc, input.CodeSite)
		if err != nil {
			return err
		}
		siteLink := &types.ContratSiteCen{
			IDSite:    siteID,
			IDContrat: contrat.IDContrat,
			CodeSite:  input.CodeSite,
			NomSite:   input.NomSite,
		}
		if err := s.links.CreateSiteLink(dbc, siteLink); err != nil {
			return fmt.Errorf("create site link: %w", err)
		}

		if err := s.links.ReplaceMilieux(dbc, contrat.IDContrat, input.TypeMilieuIDs); err != nil {
			return fmt.Errorf("create milieu links: %w", err)
		}
		if err := s.productions.ReplaceForSociete(dbc, societe.IDSociete, productionRows(societe.IDSociete, input.Productions)); err != nil {
			return fmt.Errorf("create production links: %w", err)
		}
		if err := s.links.ReplaceProduitsFinis(dbc, contrat.IDContrat, input.ProduitFiniIDs); err != nil {
			return fmt.Errorf("create produit fini links: %w", err)
		}

		contratID = contrat.IDContrat
		return nil
	})
	if err != nil {
		s.log.Warn("Create contrat failed", "error", err)
		return 0, err
	}
	return contratID, nil
}

// resolveSociete matches by siret first, then by name, and only then
// inserts a new row. Fields of a reused societe are left untouched here;
// only Update mutates them.
func (s *contratService) resolveSociete(dbc dbctx.Context, input ContratInput) (*types.Societe, error) {
	if input.Siret != "" {
		found, err := s.societes.GetBySiret(dbc, input.Siret)
		if err != nil {
			return nil, fmt.Errorf("resolve societe by siret: %w", err)
		}
		if found != nil {
			return found, nil
		}
	}
	found, err := s.societes.GetByNom(dbc, input.NomSociete)
	if err != nil {
		return nil, fmt.Errorf("resolve societe by nom: %w", err)
	}
	if found != nil {
		return found, nil
	}

	societe := societeFromInput(input)
	if err := s.societes.Create(dbc, societe); err != nil {
		return nil, fmt.Errorf("create societe: %w", err)
	}
	return societe, nil
}

func societeFromInput(input ContratInput) *types.Societe {
	siret := input.Siret
	return &types.Societe{
		NomSociete:           input.NomSociete,
		Contact:              input.Contact(),
		Siret:                &siret,
		CategorieJuridique:   input.CategorieJuridique,
		ActivitePrincipale:   input.ActivitePrincipale,
		TrancheEffectif:      input.TrancheEffectif,
		AdresseEtablissement: input.AdresseEtablissement,
		Remarques:            input.RemarquesSociete,
	}
}

func (s *contratService) resolveReferent(dbc dbctx.Context, nom, prenom string) (*types.Referent, error) {
	found, err := s.referents.GetByNomPrenom(dbc, nom, prenom)
	if err != nil {
		return nil, fmt.Errorf("resolve referent: %w", err)
	}
	if found != nil {
		return found, nil
	}
	referent := &types.Referent{NomReferent: nom, PrenomReferent: prenom}
	if err := s.referents.Create(dbc, referent); err != nil {
		return nil, fmt.Errorf("create referent: %w", err)
	}
	return referent, nil
}

// resolveSiteID looks the submitted code up in the geometry view; codes
// unknown there get a synthetic id from the counter.
func (s *contratService) resolveSiteID(dbc dbctx.Context, code string) (int, error) {
	site, err := s.sites.GetByCode(dbc.Ctx, code)
	if err != nil {
		return 0, fmt.Errorf("resolve site by code: %w", err)
	}
	if site != nil {
		return site.IDSite, nil
	}
	id, err := s.compteur.NextSiteID(dbc)
	if err != nil {
		return 0, fmt.Errorf("draw synthetic site id: %w", err)
	}
	return id, nil
}

func productionRows(idSociete int, entries []ProductionEntry) []types.TypeProductionSociete {
	var rows []types.TypeProductionSociete
	for _, entry := range entries {
		for _, typeID := range entry.TypeIDs {
			rows = append(rows, types.TypeProductionSociete{
				IDSociete:        idSociete,
				IDTypeProduction: typeID,
				IDModeProduction: entry.ModeID,
			})
		}
	}
	return rows
}

func (s *contratService) Get(ctx context.Context, id int) (*ContratDetail, error) {
	dbc := dbctx.Context{Ctx: ctx}
	contrat, err := s.contrats.GetByID(dbc, id)
	if err != nil {
		return nil, fmt.Errorf("fetch contrat: %w", err)
	}
	if contrat == nil {
		return nil, pkgerrors.ErrNotFound
	}
	details, err := s.assembleDetails(dbc, []*types.Contrat{contrat})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (s *contratService) List(ctx context.Context) ([]ContratDetail, error) {
	dbc := dbctx.Context{Ctx: ctx}
	var out []ContratDetail
	for offset := 0; ; offset += listPageSize {
		page, err := s.contrats.ListPage(dbc, offset, listPageSize)
		if err != nil {
			return nil, fmt.Errorf("list contrats: %w", err)
		}
		if len(page) == 0 {
			break
		}
		details, err := s.assembleDetails(dbc, page)
		if err != nil {
			return nil, err
		}
		out = append(out, details...)
		if len(page) < listPageSize {
			break
		}
	}
	return out, nil
}

// assembleDetails eagerly loads every relation for a batch of contracts in
// a bounded number of queries, keyed by collected ids.
func (s *contratService) assembleDetails(dbc dbctx.Context, rows []*types.Contrat) ([]ContratDetail, error) {
	contratIDs := make([]int, 0, len(rows))
	societeIDs := make([]int, 0, len(rows))
	referentIDs := make([]int, 0, len(rows))
	seenSociete := map[int]bool{}
	for _, c := range rows {
		contratIDs = append(contratIDs, c.IDContrat)
		if !seenSociete[c.IDSociete] {
			seenSociete[c.IDSociete] = true
			societeIDs = append(societeIDs, c.IDSociete)
		}
		if c.IDReferent != nil {
			referentIDs = append(referentIDs, *c.IDReferent)
		}
	}

	societes, err := s.societes.GetByIDs(dbc, societeIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch societes: %w", err)
	}
	societeByID := make(map[int]*types.Societe, len(societes))
	for _, row := range societes {
		societeByID[row.IDSociete] = row
	}

	referents, err := s.referents.GetByIDs(dbc, referentIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch referents: %w", err)
	}
	referentByID := make(map[int]*types.Referent, len(referents))
	for _, row := range referents {
		referentByID[row.IDReferent] = row
	}

	agriBySociete, err := s.agriculteurs.LatestBySocieteIDs(dbc, societeIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch agriculteurs: %w", err)
	}
	siteLinks, err := s.links.SiteLinksByContratIDs(dbc, contratIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch site links: %w", err)
	}
	milieux, err := s.links.MilieuxByContratIDs(dbc, contratIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch milieu links: %w", err)
	}
	produits, err := s.links.ProduitsFinisByContratIDs(dbc, contratIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch produit fini links: %w", err)
	}
	productions, err := s.productions.BySocieteIDs(dbc, societeIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch production links: %w", err)
	}

	categorieLabels, err := s.refdata.CategorieJuridiqueLabels(dbc)
	if err != nil {
		return nil, fmt.Errorf("fetch categorie juridique labels: %w", err)
	}
	activiteLabels, err := s.refdata.ActivitePrincipaleLabels(dbc)
	if err != nil {
		return nil, fmt.Errorf("fetch activite principale labels: %w", err)
	}
	trancheLabels, err := s.refdata.TrancheEffectifLabels(dbc)
	if err != nil {
		return nil, fmt.Errorf("fetch tranche effectif labels: %w", err)
	}

	details := make([]ContratDetail, 0, len(rows))
	for _, c := range rows {
		d := ContratDetail{Contrat: *c}
		if societe := societeByID[c.IDSociete]; societe != nil {
			d.Societe = *societe
			d.CategorieJuridiqueLib = categorieLabels[societe.CategorieJuridique]
			d.ActivitePrincipaleLib = activiteLabels[societe.ActivitePrincipale]
			d.TrancheEffectifLib = trancheLabels[societe.TrancheEffectif]
			d.Productions = productions[societe.IDSociete]
		}
		if c.IDReferent != nil {
			d.Referent = referentByID[*c.IDReferent]
		}
		d.Agriculteur = agriBySociete[c.IDSociete]
		if links := siteLinks[c.IDContrat]; len(links) > 0 {
			// Most recently added link is authoritative.
			last := links[len(links)-1]
			d.Site = &last
		}
		d.TypeMilieuIDs = milieux[c.IDContrat]
		d.ProduitFiniIDs = produits[c.IDContrat]
		details = append(details, d)
	}
	return details, nil
}

func (s *contratService) Update(ctx context.Context, id int, input ContratInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		contrat, err := s.contrats.GetByID(dbc, id)
		if err != nil {
			return fmt.Errorf("fetch contrat: %w", err)
		}
		if contrat == nil {
			return pkgerrors.ErrNotFound
		}

		// The linked societe is always the one updated, without
		// re-resolution, even if the submitted siret now collides with
		// another row.
		societe, err := s.societes.GetByID(dbc, contrat.IDSociete)
		if err != nil {
			return fmt.Errorf("fetch societe: %w", err)
		}
		if societe != nil {
			siret := input.Siret
			societe.NomSociete = input.NomSociete
			societe.Contact = input.Contact()
			societe.Siret = &siret
			societe.CategorieJuridique = input.CategorieJuridique
			societe.ActivitePrincipale = input.ActivitePrincipale
			societe.TrancheEffectif = input.TrancheEffectif
			societe.AdresseEtablissement = input.AdresseEtablissement
			societe.Remarques = input.RemarquesSociete
			if err := s.societes.Update(dbc, societe); err != nil {
				return fmt.Errorf("update societe: %w", err)
			}
		}

		agri, err := s.agriculteurs.LatestBySociete(dbc, contrat.IDSociete)
		if err != nil {
			return fmt.Errorf("fetch agriculteur: %w", err)
		}
		if agri != nil {
			agri.NomAgri = input.NomAgri
			agri.PrenomAgri = input.PrenomAgri
			agri.DateNaissance = input.DateNaissance
			if err := s.agriculteurs.Update(dbc, agri); err != nil {
				return fmt.Errorf("update agriculteur: %w", err)
			}
		}

		if contrat.IDReferent != nil {
			referent, err := s.referents.GetByID(dbc, *contrat.IDReferent)
			if err != nil {
				return fmt.Errorf("fetch referent: %w", err)
			}
			if referent != nil {
				referent.NomReferent = input.NomReferent
				referent.PrenomReferent = input.PrenomReferent
				if err := s.referents.Update(dbc, referent); err != nil {
					return fmt.Errorf("update referent: %w", err)
				}
			}
		}

		typeContrat := input.IDTypeContrat
		contrat.SurfContractualisee = input.SurfContractualisee
		contrat.DateSignature = input.DateSignature
		contrat.DatePriseEffet = input.DatePriseEffet
		contrat.DateFin = input.DateFin
		contrat.Latitude = input.Latitude
		contrat.Longitude = input.Longitude
		contrat.NumeroContrat = input.NumeroContrat
		contrat.Remarques = input.RemarquesContrat
		contrat.IDTypeContrat = &typeContrat
		if err := s.contrats.Update(dbc, contrat); err != nil {
			return fmt.Errorf("update contrat: %w", err)
		}

		// Site identity is fixed once resolved: only the denormalized
		// code/nom copy is refreshed.
		siteLinks, err := s.links.SiteLinksByContratIDs(dbc, []int{id})
		if err != nil {
			return fmt.Errorf("fetch site links: %w", err)
		}
		if links := siteLinks[id]; len(links) > 0 {
			link := links[len(links)-1]
			link.CodeSite = input.CodeSite
			link.NomSite = input.NomSite
			if err := s.links.UpdateSiteLink(dbc, &link); err != nil {
				return fmt.Errorf("update site link: %w", err)
			}
		}

		if err := s.links.ReplaceMilieux(dbc, id, input.TypeMilieuIDs); err != nil {
			return fmt.Errorf("replace milieu links: %w", err)
		}
		if err := s.links.ReplaceProduitsFinis(dbc, id, input.ProduitFiniIDs); err != nil {
			return fmt.Errorf("replace produit fini links: %w", err)
		}
		if err := s.productions.ReplaceForSociete(dbc, contrat.IDSociete, productionRows(contrat.IDSociete, input.Productions)); err != nil {
			return fmt.Errorf("replace production links: %w", err)
		}
		return nil
	})
	if err != nil && err != pkgerrors.ErrNotFound {
		s.log.Warn("Update contrat failed", "id", id, "error", err)
	}
	return err
}

func (s *contratService) Delete(ctx context.Context, id int) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		contrat, err := s.contrats.GetByID(dbc, id)
		if err != nil {
			return fmt.Errorf("fetch contrat: %w", err)
		}
		if contrat == nil {
			return pkgerrors.ErrNotFound
		}
		societeID := contrat.IDSociete
		referentID := contrat.IDReferent

		if err := s.links.DeleteSiteLinksByContrat(dbc, id); err != nil {
			return fmt.Errorf("delete site links: %w", err)
		}
		if err := s.links.DeleteMilieuxByContrat(dbc, id); err != nil {
			return fmt.Errorf("delete milieu links: %w", err)
		}
		if err := s.links.DeleteProduitsFinisByContrat(dbc, id); err != nil {
			return fmt.Errorf("delete produit fini links: %w", err)
		}
		// Production links are a societe-level attribute, so the whole
		// set for the societe goes, not just rows tied to this contract.
		if err := s.productions.DeleteBySociete(dbc, societeID); err != nil {
			return fmt.Errorf("delete production links: %w", err)
		}
		if err := s.contrats.DeleteByID(dbc, id); err != nil {
			return fmt.Errorf("delete contrat: %w", err)
		}

		if err := s.agriculteurs.DeleteLinksBySociete(dbc, societeID); err != nil {
			return fmt.Errorf("delete agriculteur links: %w", err)
		}
		if err := s.agriculteurs.DeleteOrphans(dbc); err != nil {
			return fmt.Errorf("sweep agriculteurs: %w", err)
		}

		remaining, err := s.contrats.CountBySociete(dbc, societeID)
		if err != nil {
			return fmt.Errorf("count contrats for societe: %w", err)
		}
		if remaining == 0 {
			if err := s.societes.DeleteByID(dbc, societeID); err != nil {
				return fmt.Errorf("delete societe: %w", err)
			}
		}

		if referentID != nil {
			count, err := s.contrats.CountByReferent(dbc, *referentID)
			if err != nil {
				return fmt.Errorf("count contrats for referent: %w", err)
			}
			if count == 0 {
				if err := s.referents.DeleteByID(dbc, *referentID); err != nil {
					return fmt.Errorf("delete referent: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil && err != pkgerrors.ErrNotFound {
		s.log.Warn("Delete contrat failed", "id", id, "error", err)
	}
	return err
}
