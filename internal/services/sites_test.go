package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	siteRepos "github.com/cen-na/contrats-backend/internal/data/repos/sites"
	"github.com/cen-na/contrats-backend/internal/data/repos/testutil"
	pkgerrors "github.com/cen-na/contrats-backend/internal/pkg/errors"
)

func TestSiteServiceAllFeatures(t *testing.T) {
	log := testutil.Logger(t)
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()

	testutil.SeedSite(t, ctx, tx, 1, "AA01", "Tourbiere des Dauges", "")
	testutil.SeedSite(t, ctx, tx, 2, "AA02", "Landes de Marcillac", "")

	svc := NewSiteService(log, siteRepos.New(tx, log))
	fc, err := svc.AllFeatures(ctx)
	if err != nil {
		t.Fatalf("all features: %v", err)
	}
	if fc.Type != "FeatureCollection" {
		t.Errorf("type = %q", fc.Type)
	}
	if len(fc.Features) != 2 {
		t.Fatalf("len(features) = %d, want 2", len(fc.Features))
	}
	feat := fc.Features[0]
	if feat.Type != "Feature" {
		t.Errorf("feature type = %q", feat.Type)
	}
	if feat.Properties["codesite"] != "AA01" {
		t.Errorf("codesite = %v", feat.Properties["codesite"])
	}
	var geom struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(feat.Geometry, &geom); err != nil {
		t.Fatalf("geometry not valid json: %v", err)
	}
	if geom.Type != "Polygon" {
		t.Errorf("geometry type = %q", geom.Type)
	}
}

func TestSiteServiceFeatureByID(t *testing.T) {
	log := testutil.Logger(t)
	tx := testutil.Tx(t, testutil.DB(t))
	ctx := context.Background()

	testutil.SeedSite(t, ctx, tx, 7, "BB07", "Vallee de la Gorre", "")

	svc := NewSiteService(log, siteRepos.New(tx, log))
	fc, err := svc.FeatureByID(ctx, 7)
	if err != nil {
		t.Fatalf("feature by id: %v", err)
	}
	if len(fc.Features) != 1 {
		t.Fatalf("len(features) = %d, want 1", len(fc.Features))
	}
	if fc.Features[0].Properties["nom_site"] != "Vallee de la Gorre" {
		t.Errorf("nom_site = %v", fc.Features[0].Properties["nom_site"])
	}

	if _, err := svc.FeatureByID(ctx, 999); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Errorf("unknown id: err = %v, want ErrNotFound", err)
	}
}
