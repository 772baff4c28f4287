package contrats

// Societe is the farming business party to a contract. Columns mirror the
// production saisie.societe table; reference code fields hold INSEE codes
// resolved against the referentiel tables.
type Societe struct {
	IDSociete             int     `gorm:"column:id_societe;primaryKey;autoIncrement" json:"id_societe"`
	NomSociete            string  `gorm:"column:nom_societe;size:100" json:"nom_societe"`
	Contact               string  `gorm:"column:contact;size:100" json:"contact"`
	Siret                 *string `gorm:"column:siret;size:14;uniqueIndex" json:"siret"`
	CategorieJuridique    string  `gorm:"column:categorie_juridique;size:100" json:"categorie_juridique"`
	ActivitePrincipale    string  `gorm:"column:activite_principale;size:100" json:"activite_principale"`
	TrancheEffectif       string  `gorm:"column:tranche_effectif;size:50" json:"tranche_effectif"`
	AdresseEtablissement  string  `gorm:"column:adresse_etablissement;size:200" json:"adresse_etablissement"`
	Remarques             string  `gorm:"column:remarques;size:300" json:"remarques"`
}

func (Societe) TableName() string { return "societe" }
