package contrats

import "time"

// Contrat is the aggregate root: a land-use agreement between the
// conservancy and a societe.
type Contrat struct {
	IDContrat           int        `gorm:"column:id_contrat;primaryKey;autoIncrement" json:"id_contrat"`
	SurfContractualisee float64    `gorm:"column:surf_contractualisee" json:"surf_contractualisee"`
	DateSignature       time.Time  `gorm:"column:date_signature" json:"date_signature"`
	DatePriseEffet      time.Time  `gorm:"column:date_prise_effet" json:"date_prise_effet"`
	DateFin             time.Time  `gorm:"column:date_fin" json:"date_fin"`
	Latitude            *float64   `gorm:"column:latitude" json:"latitude"`
	Longitude           *float64   `gorm:"column:longitude" json:"longitude"`
	DateAjoutBDD        time.Time  `gorm:"column:date_ajout_bdd;autoCreateTime" json:"date_ajout_bdd"`
	NumeroContrat       string     `gorm:"column:numero_contrat;size:50" json:"numero_contrat"`
	Remarques           string     `gorm:"column:remarques;type:text" json:"remarques"`

	IDSociete     int  `gorm:"column:id_societe;not null" json:"id_societe"`
	IDReferent    *int `gorm:"column:id_referent" json:"id_referent"`
	IDTypeContrat *int `gorm:"column:id_type_contrat" json:"id_type_contrat"`
}

func (Contrat) TableName() string { return "contrat" }
