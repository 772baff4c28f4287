package sirene

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cen-na/contrats-backend/internal/pkg/apierr"
	"github.com/cen-na/contrats-backend/internal/pkg/logger"
)

const knownSiret = "12345678901234"

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/siret/"+knownSiret, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-INSEE-Api-Key-Integration") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"etablissement": {
				"siren": "123456789",
				"uniteLegale": {
					"denominationUniteLegale": "GAEC DE LA VALLEE",
					"activitePrincipaleUniteLegale": "01.41Z",
					"categorieJuridiqueUniteLegale": "6533"
				},
				"trancheEffectifsEtablissement": "11",
				"adresseEtablissement": {
					"numeroVoieEtablissement": "12",
					"typeVoieEtablissement": "RTE",
					"libelleVoieEtablissement": "DE LIMOGES",
					"codePostalEtablissement": "87000",
					"libelleCommuneEtablissement": "LIMOGES"
				}
			}
		}`))
	})
	mux.HandleFunc("/siret/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, baseURL string) Client {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	c, err := New(log, Config{BaseURL: baseURL, APIKey: "test-key"})
	if err != nil {
		t.Fatalf("init client: %v", err)
	}
	return c
}

func TestLookupParsesEtablissement(t *testing.T) {
	srv := testServer(t)
	c := newTestClient(t, srv.URL)

	etab, err := c.Lookup(context.Background(), knownSiret)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if etab.Siren != "123456789" {
		t.Errorf("siren = %q", etab.Siren)
	}
	if etab.Denomination != "GAEC DE LA VALLEE" {
		t.Errorf("denomination = %q", etab.Denomination)
	}
	if etab.CategorieJuridique != "6533" {
		t.Errorf("categorie juridique = %q", etab.CategorieJuridique)
	}
	if etab.TrancheEffectif != "11" {
		t.Errorf("tranche effectif = %q", etab.TrancheEffectif)
	}
	want := "12, RTE, DE LIMOGES, 87000, LIMOGES"
	if etab.AdresseEtablissement != want {
		t.Errorf("adresse = %q, want %q", etab.AdresseEtablissement, want)
	}
}

func TestLookupRejectsMalformedSiret(t *testing.T) {
	srv := testServer(t)
	c := newTestClient(t, srv.URL)

	for _, siret := range []string{"", "123", "1234567890123a"} {
		_, err := c.Lookup(context.Background(), siret)
		var aErr *apierr.Error
		if !errors.As(err, &aErr) {
			t.Fatalf("siret %q: err = %v, want apierr", siret, err)
		}
		if aErr.HTTPStatusCode() != http.StatusBadRequest {
			t.Errorf("siret %q: status = %d, want 400", siret, aErr.HTTPStatusCode())
		}
	}
}

func TestLookupUnknownSiret(t *testing.T) {
	srv := testServer(t)
	c := newTestClient(t, srv.URL)

	_, err := c.Lookup(context.Background(), "99999999999999")
	var aErr *apierr.Error
	if !errors.As(err, &aErr) {
		t.Fatalf("err = %v, want apierr", err)
	}
	if aErr.HTTPStatusCode() != http.StatusNotFound {
		t.Errorf("status = %d, want 404", aErr.HTTPStatusCode())
	}
}

func TestLookupUnreachableUpstream(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1")

	_, err := c.Lookup(context.Background(), knownSiret)
	var aErr *apierr.Error
	if !errors.As(err, &aErr) {
		t.Fatalf("err = %v, want apierr", err)
	}
	if aErr.HTTPStatusCode() != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", aErr.HTTPStatusCode())
	}
}
