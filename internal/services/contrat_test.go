package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	contratRepos "github.com/cen-na/contrats-backend/internal/data/repos/contrats"
	refRepos "github.com/cen-na/contrats-backend/internal/data/repos/refdata"
	siteRepos "github.com/cen-na/contrats-backend/internal/data/repos/sites"
	"github.com/cen-na/contrats-backend/internal/data/repos/testutil"
	"github.com/cen-na/contrats-backend/internal/pkg/dbctx"
	pkgerrors "github.com/cen-na/contrats-backend/internal/pkg/errors"
)

type serviceFixture struct {
	svc ContratService
	tx  *gorm.DB
	ctx context.Context

	societes     contratRepos.SocieteRepo
	agriculteurs contratRepos.AgriculteurRepo
	referents    contratRepos.ReferentRepo
	links        contratRepos.LinkRepo
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	log := testutil.Logger(t)
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()

	testutil.SeedRefData(t, ctx, tx)
	testutil.SeedSite(t, ctx, tx, 42, "ST01", "Marais de la Garenne", "")

	societes := contratRepos.NewSocieteRepo(tx, log)
	agriculteurs := contratRepos.NewAgriculteurRepo(tx, log)
	referents := contratRepos.NewReferentRepo(tx, log)
	contrats := contratRepos.NewContratRepo(tx, log)
	links := contratRepos.NewLinkRepo(tx, log)
	productions := contratRepos.NewProductionRepo(tx, log)
	compteur := contratRepos.NewCompteurRepo(tx, log)
	sites := siteRepos.New(tx, log)
	refdata := refRepos.New(tx, log)

	svc := NewContratService(tx, log,
		societes, agriculteurs, referents, contrats,
		links, productions, compteur, sites, refdata)

	return &serviceFixture{
		svc:          svc,
		tx:           tx,
		ctx:          ctx,
		societes:     societes,
		agriculteurs: agriculteurs,
		referents:    referents,
		links:        links,
	}
}

func validInput() ContratInput {
	return ContratInput{
		SurfContractualisee: 12.5,
		DateSignature:       time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		DatePriseEffet:      time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		DateFin:             time.Date(2029, 4, 1, 0, 0, 0, 0, time.UTC),
		NumeroContrat:       "2024-BRE-001",
		IDTypeContrat:       1,

		NomSociete:         "Ferme Test",
		Telephone:          "0555010203",
		Email:              "contact@ferme-test.fr",
		Siret:              "12345678901234",
		CategorieJuridique: "5499",
		ActivitePrincipale: "01.41Z",
		TrancheEffectif:    "11",

		NomAgri:    "Dupont",
		PrenomAgri: "Marie",

		NomSite:  "Marais de la Garenne",
		CodeSite: "ST01",

		TypeMilieuIDs:  []int{3},
		Productions:    []ProductionEntry{{TypeIDs: []int{2}, ModeID: 1}},
		ProduitFiniIDs: []int{7},

		NomReferent:    "Martin",
		PrenomReferent: "Luc",
	}
}

func TestContratCreateGetRoundTrip(t *testing.T) {
	f := newServiceFixture(t)

	id, err := f.svc.Create(f.ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a contract id")
	}

	detail, err := f.svc.Get(f.ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if detail.Contrat.SurfContractualisee != 12.5 {
		t.Errorf("surface = %v, want 12.5", detail.Contrat.SurfContractualisee)
	}
	if detail.Societe.NomSociete != "Ferme Test" {
		t.Errorf("nom societe = %q", detail.Societe.NomSociete)
	}
	if detail.Societe.Siret == nil || *detail.Societe.Siret != "12345678901234" {
		t.Errorf("siret = %v", detail.Societe.Siret)
	}
	if detail.Societe.Contact != "0555010203 / contact@ferme-test.fr" {
		t.Errorf("contact = %q", detail.Societe.Contact)
	}
	if detail.CategorieJuridiqueLib != "Societe a responsabilite limitee" {
		t.Errorf("categorie juridique lib = %q", detail.CategorieJuridiqueLib)
	}
	if detail.Agriculteur == nil || detail.Agriculteur.NomAgri != "Dupont" {
		t.Errorf("agriculteur = %+v", detail.Agriculteur)
	}
	if detail.Referent == nil || detail.Referent.NomReferent != "Martin" {
		t.Errorf("referent = %+v", detail.Referent)
	}
	if detail.Site == nil || detail.Site.IDSite != 42 {
		t.Errorf("site link = %+v, want id 42 from the geometry view", detail.Site)
	}
	if len(detail.TypeMilieuIDs) != 1 || detail.TypeMilieuIDs[0] != 3 {
		t.Errorf("milieux = %v, want [3]", detail.TypeMilieuIDs)
	}
	if len(detail.ProduitFiniIDs) != 1 || detail.ProduitFiniIDs[0] != 7 {
		t.Errorf("produits finis = %v, want [7]", detail.ProduitFiniIDs)
	}
	if len(detail.Productions) != 1 ||
		detail.Productions[0].IDTypeProduction != 2 ||
		detail.Productions[0].IDModeProduction != 1 {
		t.Errorf("productions = %+v", detail.Productions)
	}
}

func TestContratCreateSurfaceBounds(t *testing.T) {
	f := newServiceFixture(t)

	for _, surf := range []float64{0.1, 100} {
		in := validInput()
		in.SurfContractualisee = surf
		if _, err := f.svc.Create(f.ctx, in); err != nil {
			t.Errorf("surface %v rejected: %v", surf, err)
		}
	}
	for _, surf := range []float64{0.05, 100.1, 0} {
		in := validInput()
		in.SurfContractualisee = surf
		_, err := f.svc.Create(f.ctx, in)
		vErr, ok := pkgerrors.AsValidation(err)
		if !ok {
			t.Fatalf("surface %v accepted, want validation error", surf)
		}
		if _, ok := vErr.Fields["surf_contractualisee"]; !ok {
			t.Errorf("surface %v: missing field error, got %v", surf, vErr.Fields)
		}
	}
}

func TestContratCreateReusesSocieteBySiret(t *testing.T) {
	f := newServiceFixture(t)

	id1, err := f.svc.Create(f.ctx, validInput())
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	in := validInput()
	in.NomSociete = "Ferme Test Renamed"
	id2, err := f.svc.Create(f.ctx, in)
	if err != nil {
		t.Fatalf("second create: %v", err)
	}

	d1, err := f.svc.Get(f.ctx, id1)
	if err != nil {
		t.Fatalf("get first: %v", err)
	}
	d2, err := f.svc.Get(f.ctx, id2)
	if err != nil {
		t.Fatalf("get second: %v", err)
	}
	if d1.Societe.IDSociete != d2.Societe.IDSociete {
		t.Errorf("societe ids differ: %d vs %d", d1.Societe.IDSociete, d2.Societe.IDSociete)
	}
	// Reuse leaves the stored row untouched.
	if d2.Societe.NomSociete != "Ferme Test" {
		t.Errorf("nom societe = %q, want the original name", d2.Societe.NomSociete)
	}
}

func TestContratCreateDeduplicatesReferent(t *testing.T) {
	f := newServiceFixture(t)

	id1, err := f.svc.Create(f.ctx, validInput())
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	in := validInput()
	in.Siret = "98765432109876"
	in.NomSociete = "Autre Ferme"
	id2, err := f.svc.Create(f.ctx, in)
	if err != nil {
		t.Fatalf("second create: %v", err)
	}

	d1, _ := f.svc.Get(f.ctx, id1)
	d2, _ := f.svc.Get(f.ctx, id2)
	if d1.Referent == nil || d2.Referent == nil {
		t.Fatal("missing referent")
	}
	if d1.Referent.IDReferent != d2.Referent.IDReferent {
		t.Errorf("referent ids differ: %d vs %d", d1.Referent.IDReferent, d2.Referent.IDReferent)
	}
}

func TestContratCreateUnknownSiteCode(t *testing.T) {
	f := newServiceFixture(t)

	in := validInput()
	in.CodeSite = "ZZ99"
	in.NomSite = "Site hors referentiel"
	id, err := f.svc.Create(f.ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	detail, err := f.svc.Get(f.ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if detail.Site == nil {
		t.Fatal("missing site link")
	}
	if detail.Site.IDSite <= 1000000 {
		t.Errorf("site id = %d, want a synthetic id above the floor", detail.Site.IDSite)
	}
	if detail.Site.CodeSite != "ZZ99" {
		t.Errorf("code site = %q", detail.Site.CodeSite)
	}
}

func TestContratUpdateReplacesCollections(t *testing.T) {
	f := newServiceFixture(t)

	in := validInput()
	in.TypeMilieuIDs = []int{1, 2}
	id, err := f.svc.Create(f.ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	upd := validInput()
	upd.TypeMilieuIDs = []int{2, 3}
	upd.ProduitFiniIDs = []int{1}
	upd.SurfContractualisee = 20
	upd.NomAgri = "Durand"
	if err := f.svc.Update(f.ctx, id, upd); err != nil {
		t.Fatalf("update: %v", err)
	}

	detail, err := f.svc.Get(f.ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(detail.TypeMilieuIDs) != 2 || detail.TypeMilieuIDs[0] != 2 || detail.TypeMilieuIDs[1] != 3 {
		t.Errorf("milieux = %v, want [2 3]", detail.TypeMilieuIDs)
	}
	if len(detail.ProduitFiniIDs) != 1 || detail.ProduitFiniIDs[0] != 1 {
		t.Errorf("produits finis = %v, want [1]", detail.ProduitFiniIDs)
	}
	if detail.Contrat.SurfContractualisee != 20 {
		t.Errorf("surface = %v, want 20", detail.Contrat.SurfContractualisee)
	}
	if detail.Agriculteur == nil || detail.Agriculteur.NomAgri != "Durand" {
		t.Errorf("agriculteur = %+v, want updated name", detail.Agriculteur)
	}
}

func TestContratUpdateMissing(t *testing.T) {
	f := newServiceFixture(t)
	err := f.svc.Update(f.ctx, 424242, validInput())
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestContratDeleteRemovesAggregate(t *testing.T) {
	f := newServiceFixture(t)

	id, err := f.svc.Create(f.ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	detail, err := f.svc.Get(f.ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	societeID := detail.Societe.IDSociete
	referentID := detail.Referent.IDReferent

	if err := f.svc.Delete(f.ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := f.svc.Get(f.ctx, id); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Errorf("get after delete: err = %v, want ErrNotFound", err)
	}

	dbc := dbctx.Context{Ctx: f.ctx}
	societe, err := f.societes.GetByID(dbc, societeID)
	if err != nil {
		t.Fatalf("fetch societe: %v", err)
	}
	if societe != nil {
		t.Error("societe survived deletion of its only contract")
	}
	referent, err := f.referents.GetByID(dbc, referentID)
	if err != nil {
		t.Fatalf("fetch referent: %v", err)
	}
	if referent != nil {
		t.Error("referent survived deletion of its only contract")
	}
	agri, err := f.agriculteurs.LatestBySociete(dbc, societeID)
	if err != nil {
		t.Fatalf("fetch agriculteur: %v", err)
	}
	if agri != nil {
		t.Error("agriculteur link survived deletion")
	}
	siteLinks, err := f.links.SiteLinksByContratIDs(dbc, []int{id})
	if err != nil {
		t.Fatalf("fetch site links: %v", err)
	}
	if len(siteLinks[id]) != 0 {
		t.Errorf("site links survived deletion: %v", siteLinks[id])
	}
}

func TestContratDeleteKeepsSharedSocieteAndReferent(t *testing.T) {
	f := newServiceFixture(t)

	id1, err := f.svc.Create(f.ctx, validInput())
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	id2, err := f.svc.Create(f.ctx, validInput())
	if err != nil {
		t.Fatalf("second create: %v", err)
	}

	if err := f.svc.Delete(f.ctx, id1); err != nil {
		t.Fatalf("delete: %v", err)
	}

	detail, err := f.svc.Get(f.ctx, id2)
	if err != nil {
		t.Fatalf("get survivor: %v", err)
	}
	if detail.Societe.NomSociete != "Ferme Test" {
		t.Errorf("societe = %+v, want it kept", detail.Societe)
	}
	if detail.Referent == nil {
		t.Error("referent deleted while still referenced")
	}
}

func TestContratDeleteMissing(t *testing.T) {
	f := newServiceFixture(t)
	err := f.svc.Delete(f.ctx, 424242)
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestContratListCoversAllContracts(t *testing.T) {
	f := newServiceFixture(t)

	in1 := validInput()
	in2 := validInput()
	in2.Siret = "98765432109876"
	in2.NomSociete = "Autre Ferme"
	if _, err := f.svc.Create(f.ctx, in1); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := f.svc.Create(f.ctx, in2); err != nil {
		t.Fatalf("second create: %v", err)
	}

	details, err := f.svc.List(f.ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("len(details) = %d, want 2", len(details))
	}
	for _, d := range details {
		if d.Societe.IDSociete == 0 {
			t.Errorf("detail %d missing societe", d.Contrat.IDContrat)
		}
		if d.Site == nil {
			t.Errorf("detail %d missing site link", d.Contrat.IDContrat)
		}
	}
}
