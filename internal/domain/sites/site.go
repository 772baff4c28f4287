package sites

import "gorm.io/datatypes"

// VueSite exposes a conservation-site polygon from the foncier database.
// Geom holds the geometry as GeoJSON (Polygon or MultiPolygon). The view is
// read-only; this side never writes to it.
type VueSite struct {
	IDSite   int            `gorm:"column:idsite;primaryKey" json:"idsite"`
	CodeSite string         `gorm:"column:codesite;size:10" json:"codesite"`
	NomSite  string         `gorm:"column:nom_site;size:150" json:"nom_site"`
	Geom     datatypes.JSON `gorm:"column:geom" json:"geom"`
}

func (VueSite) TableName() string { return "site_geojson" }
