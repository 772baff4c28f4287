package services

import (
	"context"
	"encoding/json"
	"fmt"

	siteRepos "github.com/cen-na/contrats-backend/internal/data/repos/sites"
	types "github.com/cen-na/contrats-backend/internal/domain/sites"
	pkgerrors "github.com/cen-na/contrats-backend/internal/pkg/errors"
	"github.com/cen-na/contrats-backend/internal/pkg/logger"
)

// Feature and FeatureCollection follow the GeoJSON structure the map
// frontend consumes directly.
type Feature struct {
	Type       string                 `json:"type"`
	Geometry   json.RawMessage        `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// SiteService converts stored site polygons into map-ready feature
// collections. Read-only, backed by the foncier geometry view.
type SiteService interface {
	AllFeatures(ctx context.Context) (*FeatureCollection, error)
	FeatureByID(ctx context.Context, id int) (*FeatureCollection, error)
}

type siteService struct {
	log   *logger.Logger
	sites siteRepos.Repo
}

func NewSiteService(log *logger.Logger, sites siteRepos.Repo) SiteService {
	return &siteService{log: log.With("service", "SiteService"), sites: sites}
}

func (s *siteService) AllFeatures(ctx context.Context) (*FeatureCollection, error) {
	rows, err := s.sites.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch sites: %w", err)
	}
	fc := &FeatureCollection{Type: "FeatureCollection", Features: make([]Feature, 0, len(rows))}
	for _, row := range rows {
		fc.Features = append(fc.Features, toFeature(row))
	}
	return fc, nil
}

func (s *siteService) FeatureByID(ctx context.Context, id int) (*FeatureCollection, error) {
	row, err := s.sites.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch site: %w", err)
	}
	if row == nil {
		return nil, pkgerrors.ErrNotFound
	}
	return &FeatureCollection{
		Type:     "FeatureCollection",
		Features: []Feature{toFeature(*row)},
	}, nil
}

func toFeature(row types.VueSite) Feature {
	return Feature{
		Type:     "Feature",
		Geometry: json.RawMessage(row.Geom),
		Properties: map[string]interface{}{
			"idsite":   row.IDSite,
			"codesite": row.CodeSite,
			"nom_site": row.NomSite,
		},
	}
}
