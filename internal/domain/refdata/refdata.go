package refdata

// Static lookup tables feeding form choices. Read-only from the
// application's perspective; rows are maintained out of band.

type TypeContrat struct {
	IDTypeContrat      int    `gorm:"column:id_type_contrat;primaryKey" json:"id_type_contrat"`
	AppellationContrat string `gorm:"column:appellation_contrat;size:100;not null" json:"appellation_contrat"`
}

func (TypeContrat) TableName() string { return "type_contrat" }

type TypeMilieu struct {
	IDTypeMilieu int    `gorm:"column:id_type_milieu;primaryKey" json:"id_type_milieu"`
	Milieu       string `gorm:"column:milieu;size:100" json:"milieu"`
}

func (TypeMilieu) TableName() string { return "type_milieu" }

type TypeProduction struct {
	IDTypeProduction int    `gorm:"column:id_type_production;primaryKey" json:"id_type_production"`
	NatureProduction string `gorm:"column:nature_production;size:50" json:"nature_production"`
}

func (TypeProduction) TableName() string { return "type_production" }

type ModeProduction struct {
	ID  int    `gorm:"column:id;primaryKey" json:"id"`
	Nom string `gorm:"column:nom;size:50;uniqueIndex;not null" json:"nom"`
}

func (ModeProduction) TableName() string { return "mode_production" }

type TypeProduitFini struct {
	IDTypeProduitFini  int    `gorm:"column:id_type_produit_fini;primaryKey" json:"id_type_produit_fini"`
	NatureProduitFini  string `gorm:"column:nature_produit_fini;size:50" json:"nature_produit_fini"`
}

func (TypeProduitFini) TableName() string { return "type_produit_fini" }

type TypeCategorieJuridique struct {
	Code     string `gorm:"column:code_type_categorie_juridique;size:4;primaryKey" json:"code"`
	Libelle  string `gorm:"column:lib_type_categorie_juridique;size:150" json:"libelle"`
}

func (TypeCategorieJuridique) TableName() string { return "type_categorie_juridique" }

type TypeActivitePrincipale struct {
	Code    string `gorm:"column:code_type_activite_principale;size:6;primaryKey" json:"code"`
	Libelle string `gorm:"column:lib_type_activite_principale;size:150" json:"libelle"`
}

func (TypeActivitePrincipale) TableName() string { return "type_activite_principale" }

type TypeTrancheEffectif struct {
	Code    string `gorm:"column:code_type_tranche_effectif;size:2;primaryKey" json:"code"`
	Libelle string `gorm:"column:lib_type_tranche_effectif;size:150" json:"libelle"`
}

func (TypeTrancheEffectif) TableName() string { return "type_tranche_effectif" }
