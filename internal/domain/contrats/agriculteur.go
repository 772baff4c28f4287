package contrats

import "time"

type Agriculteur struct {
	IDAgriculteur int        `gorm:"column:id_agriculteur;primaryKey;autoIncrement" json:"id_agriculteur"`
	NomAgri       string     `gorm:"column:nom_agri;size:100;not null" json:"nom_agri"`
	PrenomAgri    string     `gorm:"column:prenom_agri;size:50;not null" json:"prenom_agri"`
	DateNaissance *time.Time `gorm:"column:date_naissance" json:"date_naissance"`
}

func (Agriculteur) TableName() string { return "agriculteur" }

// AgriculteurSociete links a farmer to a company. A farmer may intermediate
// for several companies; the most recently added link wins when a single
// farmer is displayed for a company.
type AgriculteurSociete struct {
	IDAgriculteur int `gorm:"column:id_agriculteur;primaryKey" json:"id_agriculteur"`
	IDSociete     int `gorm:"column:id_societe;primaryKey" json:"id_societe"`
}

func (AgriculteurSociete) TableName() string { return "agriculteur_societe" }
