package services

import (
	"context"
	"testing"

	refRepos "github.com/cen-na/contrats-backend/internal/data/repos/refdata"
	"github.com/cen-na/contrats-backend/internal/data/repos/testutil"
)

func TestRefDataServiceFormChoicesWithoutCache(t *testing.T) {
	log := testutil.Logger(t)
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()

	testutil.SeedRefData(t, ctx, tx)

	svc := NewRefDataService(log, refRepos.New(tx, log), nil)
	choices, err := svc.FormChoices(ctx)
	if err != nil {
		t.Fatalf("form choices: %v", err)
	}
	if len(choices.TypeContrats) != 1 {
		t.Errorf("type contrats = %d, want 1", len(choices.TypeContrats))
	}
	if len(choices.TypeMilieux) != 3 {
		t.Errorf("type milieux = %d, want 3", len(choices.TypeMilieux))
	}
	if len(choices.TypeProductions) != 2 {
		t.Errorf("type productions = %d, want 2", len(choices.TypeProductions))
	}
	if len(choices.ModeProductions) != 2 {
		t.Errorf("mode productions = %d, want 2", len(choices.ModeProductions))
	}
	if len(choices.TypeProduitsFinis) != 2 {
		t.Errorf("produits finis = %d, want 2", len(choices.TypeProduitsFinis))
	}
}
