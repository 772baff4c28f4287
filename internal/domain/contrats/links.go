package contrats

// ContratSiteCen associates a contract with a conservation site. Site
// identity is captured by value at link time (code + nom copied in), not by
// a live foreign key; the geometry lives in a separate read-only database.
type ContratSiteCen struct {
	IDSite    int    `gorm:"column:id_site;primaryKey" json:"id_site"`
	IDContrat int    `gorm:"column:id_contrat;primaryKey" json:"id_contrat"`
	CodeSite  string `gorm:"column:code_site;size:25" json:"code_site"`
	NomSite   string `gorm:"column:nom_site;size:250" json:"nom_site"`
}

func (ContratSiteCen) TableName() string { return "contrat_site_cen" }

type TypeMilieuContrat struct {
	IDTypeMilieu int `gorm:"column:id_type_milieu;primaryKey" json:"id_type_milieu"`
	IDContrat    int `gorm:"column:id_contrat;primaryKey" json:"id_contrat"`
}

func (TypeMilieuContrat) TableName() string { return "type_milieu_contrat" }

type ProduitFiniContrat struct {
	IDTypeProduitFini int `gorm:"column:id_type_produit_fini;primaryKey" json:"id_type_produit_fini"`
	IDContrat         int `gorm:"column:id_contrat;primaryKey" json:"id_contrat"`
}

func (ProduitFiniContrat) TableName() string { return "produit_fini_contrat" }

// TypeProductionSociete records what a societe produces and in which mode.
// Company-scoped: one mode per (societe, type de production).
type TypeProductionSociete struct {
	IDSociete        int `gorm:"column:id_societe;primaryKey" json:"id_societe"`
	IDTypeProduction int `gorm:"column:id_type_production;primaryKey" json:"id_type_production"`
	IDModeProduction int `gorm:"column:id_mode_production;not null" json:"id_mode_production"`
}

func (TypeProductionSociete) TableName() string { return "type_production_societe" }

// CompteurSite hands out synthetic site ids for contract-site links whose
// code has no matching row in the geometry view.
type CompteurSite struct {
	ID     int `gorm:"column:id;primaryKey" json:"id"`
	Valeur int `gorm:"column:valeur;not null" json:"valeur"`
}

func (CompteurSite) TableName() string { return "compteur_site" }
