package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	pkgerrors "github.com/cen-na/contrats-backend/internal/pkg/errors"
)

var siretPattern = regexp.MustCompile(`^[0-9]{14}$`)

// ProductionEntry pairs a set of production types with the mode they are
// farmed under.
type ProductionEntry struct {
	TypeIDs []int `json:"type_ids"`
	ModeID  int   `json:"mode_id"`
}

// ContratInput is the validated submission shape for create and update.
// Raw form values are bound into it by the handler; Validate turns it into
// either typed values or a field-level error list, and no operation is
// attempted while errors remain.
type ContratInput struct {
	SurfContractualisee float64    `json:"surf_contractualisee"`
	DateSignature       time.Time  `json:"date_signature"`
	DatePriseEffet      time.Time  `json:"date_prise_effet"`
	DateFin             time.Time  `json:"date_fin"`
	Latitude            *float64   `json:"latitude"`
	Longitude           *float64   `json:"longitude"`
	RemarquesContrat    string     `json:"remarques_contrat"`
	NumeroContrat       string     `json:"numero_contrat"`
	IDTypeContrat       int        `json:"id_type_contrat"`

	NomSociete           string `json:"nom_societe"`
	Telephone            string `json:"telephone"`
	Email                string `json:"email"`
	RemarquesSociete     string `json:"remarques_societe"`
	Siret                string `json:"siret"`
	AdresseEtablissement string `json:"adresse_etablissement"`
	TrancheEffectif      string `json:"tranche_effectif"`
	CategorieJuridique   string `json:"categorie_juridique"`
	ActivitePrincipale   string `json:"activite_principale"`

	NomAgri       string     `json:"nom_agri"`
	PrenomAgri    string     `json:"prenom_agri"`
	DateNaissance *time.Time `json:"date_naissance"`

	NomSite  string `json:"nom_site"`
	CodeSite string `json:"code_site"`

	TypeMilieuIDs  []int             `json:"type_milieu_ids"`
	Productions    []ProductionEntry `json:"productions"`
	ProduitFiniIDs []int             `json:"produit_fini_ids"`

	NomReferent    string `json:"nom_referent"`
	PrenomReferent string `json:"prenom_referent"`
}

func (in *ContratInput) normalize() {
	in.NomSociete = strings.TrimSpace(in.NomSociete)
	in.Telephone = strings.TrimSpace(in.Telephone)
	in.Email = strings.TrimSpace(in.Email)
	in.Siret = strings.TrimSpace(in.Siret)
	in.NomAgri = strings.TrimSpace(in.NomAgri)
	in.PrenomAgri = strings.TrimSpace(in.PrenomAgri)
	in.NomSite = strings.TrimSpace(in.NomSite)
	in.CodeSite = strings.TrimSpace(in.CodeSite)
	in.NomReferent = strings.TrimSpace(in.NomReferent)
	in.PrenomReferent = strings.TrimSpace(in.PrenomReferent)
}

// Contact renders the societe contact column from phone and email.
func (in *ContratInput) Contact() string {
	switch {
	case in.Telephone != "" && in.Email != "":
		return in.Telephone + " / " + in.Email
	case in.Telephone != "":
		return in.Telephone
	default:
		return in.Email
	}
}

func requireLen(fields map[string]string, field, value string, max int) {
	if value == "" {
		fields[field] = "champ obligatoire"
		return
	}
	if len(value) > max {
		fields[field] = fmt.Sprintf("%d caracteres maximum", max)
	}
}

func optionalLen(fields map[string]string, field, value string, max int) {
	if value != "" && len(value) > max {
		fields[field] = fmt.Sprintf("%d caracteres maximum", max)
	}
}

// Validate reports every invalid field at once. Boundary values 0.1 and
// 100 for the surface are accepted.
func (in *ContratInput) Validate() error {
	in.normalize()
	fields := map[string]string{}

	if in.SurfContractualisee < 0.1 || in.SurfContractualisee > 100 {
		fields["surf_contractualisee"] = "la surface contractualisee doit etre comprise entre 0.1 et 100 hectares"
	}
	if in.DateSignature.IsZero() {
		fields["date_signature"] = "champ obligatoire"
	}
	if in.DatePriseEffet.IsZero() {
		fields["date_prise_effet"] = "champ obligatoire"
	}
	if in.DateFin.IsZero() {
		fields["date_fin"] = "champ obligatoire"
	}
	optionalLen(fields, "remarques_contrat", in.RemarquesContrat, 500)
	optionalLen(fields, "numero_contrat", in.NumeroContrat, 50)
	if in.IDTypeContrat <= 0 {
		fields["id_type_contrat"] = "champ obligatoire"
	}

	requireLen(fields, "nom_societe", in.NomSociete, 100)
	optionalLen(fields, "telephone", in.Telephone, 20)
	optionalLen(fields, "email", in.Email, 100)
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		fields["email"] = "adresse email invalide"
	}
	optionalLen(fields, "remarques_societe", in.RemarquesSociete, 300)
	if !siretPattern.MatchString(in.Siret) {
		fields["siret"] = "le numero SIRET doit contenir exactement 14 chiffres"
	}
	optionalLen(fields, "adresse_etablissement", in.AdresseEtablissement, 200)
	optionalLen(fields, "tranche_effectif", in.TrancheEffectif, 50)
	optionalLen(fields, "categorie_juridique", in.CategorieJuridique, 100)
	optionalLen(fields, "activite_principale", in.ActivitePrincipale, 100)

	requireLen(fields, "nom_agri", in.NomAgri, 100)
	requireLen(fields, "prenom_agri", in.PrenomAgri, 50)

	requireLen(fields, "nom_site", in.NomSite, 100)
	if in.CodeSite == "" {
		fields["code_site"] = "champ obligatoire"
	}

	if len(in.TypeMilieuIDs) == 0 {
		fields["type_milieu_ids"] = "selectionner au moins un type de milieu"
	}
	if len(in.Productions) == 0 {
		fields["productions"] = "selectionner au moins un type de production"
	}
	seenTypes := map[int]bool{}
	for i, entry := range in.Productions {
		if len(entry.TypeIDs) == 0 {
			fields[fmt.Sprintf("productions[%d].type_ids", i)] = "selectionner au moins un type de production"
		}
		if entry.ModeID <= 0 {
			fields[fmt.Sprintf("productions[%d].mode_id", i)] = "mode de production obligatoire"
		}
		for _, typeID := range entry.TypeIDs {
			if seenTypes[typeID] {
				fields[fmt.Sprintf("productions[%d].type_ids", i)] = "type de production en double"
			}
			seenTypes[typeID] = true
		}
	}
	if len(in.ProduitFiniIDs) == 0 {
		fields["produit_fini_ids"] = "selectionner au moins un produit fini"
	}

	requireLen(fields, "nom_referent", in.NomReferent, 100)
	requireLen(fields, "prenom_referent", in.PrenomReferent, 50)

	if len(fields) > 0 {
		return &pkgerrors.ValidationError{Fields: fields}
	}
	return nil
}
