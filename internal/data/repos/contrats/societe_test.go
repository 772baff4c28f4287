package contrats

import (
	"context"
	"testing"

	"github.com/cen-na/contrats-backend/internal/data/repos/testutil"
	types "github.com/cen-na/contrats-backend/internal/domain/contrats"
	"github.com/cen-na/contrats-backend/internal/pkg/dbctx"
)

func TestSocieteLookups(t *testing.T) {
	log := testutil.Logger(t)
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	repo := NewSocieteRepo(tx, log)
	dbc := dbctx.Context{Ctx: ctx}

	siret := "11223344556677"
	row := &types.Societe{NomSociete: "GAEC du Causse", Siret: &siret}
	if err := repo.Create(dbc, row); err != nil {
		t.Fatalf("create: %v", err)
	}
	if row.IDSociete == 0 {
		t.Fatal("missing generated id")
	}

	bySiret, err := repo.GetBySiret(dbc, siret)
	if err != nil {
		t.Fatalf("by siret: %v", err)
	}
	if bySiret == nil || bySiret.IDSociete != row.IDSociete {
		t.Errorf("by siret = %+v", bySiret)
	}

	byNom, err := repo.GetByNom(dbc, "GAEC du Causse")
	if err != nil {
		t.Fatalf("by nom: %v", err)
	}
	if byNom == nil || byNom.IDSociete != row.IDSociete {
		t.Errorf("by nom = %+v", byNom)
	}

	missing, err := repo.GetBySiret(dbc, "00000000000000")
	if err != nil {
		t.Fatalf("missing siret: %v", err)
	}
	if missing != nil {
		t.Errorf("missing siret = %+v, want nil", missing)
	}
}

func TestSocieteDelete(t *testing.T) {
	log := testutil.Logger(t)
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	repo := NewSocieteRepo(tx, log)
	dbc := dbctx.Context{Ctx: ctx}

	row := testutil.SeedSociete(t, ctx, tx, "Ferme Ephemere", "")
	if err := repo.DeleteByID(dbc, row.IDSociete); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := repo.GetByID(dbc, row.IDSociete)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("got = %+v, want nil after delete", got)
	}
}
