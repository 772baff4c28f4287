package contrats

import (
	"context"
	"testing"

	"github.com/cen-na/contrats-backend/internal/data/repos/testutil"
	types "github.com/cen-na/contrats-backend/internal/domain/contrats"
	"github.com/cen-na/contrats-backend/internal/pkg/dbctx"
)

func TestAgriculteurLatestBySociete(t *testing.T) {
	log := testutil.Logger(t)
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	repo := NewAgriculteurRepo(tx, log)
	dbc := dbctx.Context{Ctx: ctx}

	societe := testutil.SeedSociete(t, ctx, tx, "Ferme A", "")

	older := &types.Agriculteur{NomAgri: "Premier", PrenomAgri: "Jean"}
	newer := &types.Agriculteur{NomAgri: "Second", PrenomAgri: "Paul"}
	for _, a := range []*types.Agriculteur{older, newer} {
		if err := repo.Create(dbc, a); err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := repo.Link(dbc, a.IDAgriculteur, societe.IDSociete); err != nil {
			t.Fatalf("link: %v", err)
		}
	}

	got, err := repo.LatestBySociete(dbc, societe.IDSociete)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if got == nil || got.NomAgri != "Second" {
		t.Errorf("latest = %+v, want the most recently linked farmer", got)
	}
}

func TestAgriculteurDeleteOrphans(t *testing.T) {
	log := testutil.Logger(t)
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	repo := NewAgriculteurRepo(tx, log)
	dbc := dbctx.Context{Ctx: ctx}

	societe := testutil.SeedSociete(t, ctx, tx, "Ferme B", "")

	linked := &types.Agriculteur{NomAgri: "Garde", PrenomAgri: "Anne"}
	orphan := &types.Agriculteur{NomAgri: "Perdu", PrenomAgri: "Luc"}
	for _, a := range []*types.Agriculteur{linked, orphan} {
		if err := repo.Create(dbc, a); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if err := repo.Link(dbc, linked.IDAgriculteur, societe.IDSociete); err != nil {
		t.Fatalf("link: %v", err)
	}

	if err := repo.DeleteOrphans(dbc); err != nil {
		t.Fatalf("sweep: %v", err)
	}
	// Idempotent: a second sweep is harmless.
	if err := repo.DeleteOrphans(dbc); err != nil {
		t.Fatalf("second sweep: %v", err)
	}

	var count int64
	if err := tx.Model(&types.Agriculteur{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want only the linked farmer left", count)
	}

	kept, err := repo.LatestBySociete(dbc, societe.IDSociete)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if kept == nil || kept.NomAgri != "Garde" {
		t.Errorf("kept = %+v", kept)
	}
}

func TestAgriculteurDeleteLinksBySociete(t *testing.T) {
	log := testutil.Logger(t)
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()
	repo := NewAgriculteurRepo(tx, log)
	dbc := dbctx.Context{Ctx: ctx}

	societe := testutil.SeedSociete(t, ctx, tx, "Ferme C", "")
	a := &types.Agriculteur{NomAgri: "Seul", PrenomAgri: "Max"}
	if err := repo.Create(dbc, a); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Link(dbc, a.IDAgriculteur, societe.IDSociete); err != nil {
		t.Fatalf("link: %v", err)
	}

	if err := repo.DeleteLinksBySociete(dbc, societe.IDSociete); err != nil {
		t.Fatalf("delete links: %v", err)
	}
	got, err := repo.LatestBySociete(dbc, societe.IDSociete)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if got != nil {
		t.Errorf("latest = %+v, want nil after link removal", got)
	}
}
