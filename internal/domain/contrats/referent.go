package contrats

// Referent is the staff contact responsible for a contract. Deduplicated by
// (nom, prenom) at creation time; the pair is not enforced unique in storage.
type Referent struct {
	IDReferent     int    `gorm:"column:id_referent;primaryKey;autoIncrement" json:"id_referent"`
	NomReferent    string `gorm:"column:nom_referent;size:100" json:"nom_referent"`
	PrenomReferent string `gorm:"column:prenom_referent;size:50" json:"prenom_referent"`
}

func (Referent) TableName() string { return "referent" }
