package services

import (
	"strings"
	"testing"

	pkgerrors "github.com/cen-na/contrats-backend/internal/pkg/errors"
)

func TestContratInputValidateAccepts(t *testing.T) {
	in := validInput()
	if err := in.Validate(); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
}

func TestContratInputValidateCollectsAllErrors(t *testing.T) {
	in := ContratInput{}
	err := in.Validate()
	vErr, ok := pkgerrors.AsValidation(err)
	if !ok {
		t.Fatalf("err = %v, want validation error", err)
	}
	for _, field := range []string{
		"surf_contractualisee", "date_signature", "date_fin",
		"nom_societe", "siret", "nom_agri", "nom_site",
		"type_milieu_ids", "productions", "produit_fini_ids",
		"nom_referent",
	} {
		if _, present := vErr.Fields[field]; !present {
			t.Errorf("missing error for %q, got %v", field, vErr.Fields)
		}
	}
}

func TestContratInputValidateSiret(t *testing.T) {
	for _, siret := range []string{"123", "1234567890123a", "123456789012345", ""} {
		in := validInput()
		in.Siret = siret
		vErr, ok := pkgerrors.AsValidation(in.Validate())
		if !ok {
			t.Fatalf("siret %q accepted", siret)
		}
		if _, present := vErr.Fields["siret"]; !present {
			t.Errorf("siret %q: no field error", siret)
		}
	}
}

func TestContratInputValidateLengths(t *testing.T) {
	in := validInput()
	in.NomSociete = strings.Repeat("a", 101)
	in.RemarquesSociete = strings.Repeat("b", 301)
	vErr, ok := pkgerrors.AsValidation(in.Validate())
	if !ok {
		t.Fatal("overlong fields accepted")
	}
	if _, present := vErr.Fields["nom_societe"]; !present {
		t.Errorf("nom_societe not flagged: %v", vErr.Fields)
	}
	if _, present := vErr.Fields["remarques_societe"]; !present {
		t.Errorf("remarques_societe not flagged: %v", vErr.Fields)
	}
}

func TestContratInputValidateProductions(t *testing.T) {
	in := validInput()
	in.Productions = []ProductionEntry{{TypeIDs: []int{1}, ModeID: 1}, {TypeIDs: []int{1}, ModeID: 2}}
	vErr, ok := pkgerrors.AsValidation(in.Validate())
	if !ok {
		t.Fatal("duplicate production type accepted")
	}
	if _, present := vErr.Fields["productions[1].type_ids"]; !present {
		t.Errorf("duplicate not flagged: %v", vErr.Fields)
	}

	in = validInput()
	in.Productions = []ProductionEntry{{TypeIDs: []int{1}}}
	vErr, ok = pkgerrors.AsValidation(in.Validate())
	if !ok {
		t.Fatal("missing mode accepted")
	}
	if _, present := vErr.Fields["productions[0].mode_id"]; !present {
		t.Errorf("missing mode not flagged: %v", vErr.Fields)
	}
}

func TestContratInputContact(t *testing.T) {
	in := ContratInput{Telephone: "0555010203", Email: "a@b.fr"}
	if got := in.Contact(); got != "0555010203 / a@b.fr" {
		t.Errorf("contact = %q", got)
	}
	in = ContratInput{Telephone: "0555010203"}
	if got := in.Contact(); got != "0555010203" {
		t.Errorf("contact = %q", got)
	}
	in = ContratInput{Email: "a@b.fr"}
	if got := in.Contact(); got != "a@b.fr" {
		t.Errorf("contact = %q", got)
	}
}
