package sirene

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/cen-na/contrats-backend/internal/pkg/apierr"
	"github.com/cen-na/contrats-backend/internal/pkg/envutil"
	"github.com/cen-na/contrats-backend/internal/pkg/logger"
)

var siretPattern = regexp.MustCompile(`^[0-9]{14}$`)

// Etablissement is the normalized subset of a SIRENE record the entry
// form pre-fills from.
type Etablissement struct {
	Siren                string `json:"siren"`
	Denomination         string `json:"denomination"`
	ActivitePrincipale   string `json:"activite_principale"`
	CategorieJuridique   string `json:"categorie_juridique"`
	TrancheEffectif      string `json:"tranche_effectif"`
	AdresseEtablissement string `json:"adresse_etablissement"`
}

// Client queries the INSEE SIRENE API by siret. Lookups never touch
// storage; failures carry an HTTP-style status via apierr.Error.
type Client interface {
	Lookup(ctx context.Context, siret string) (*Etablissement, error)
}

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func ConfigFromEnv() Config {
	return Config{
		BaseURL: envutil.String("SIRENE_BASE_URL", "https://api.insee.fr/api-sirene/3.11"),
		APIKey:  envutil.String("SIRENE_API_KEY", ""),
		Timeout: envutil.Duration("SIRENE_TIMEOUT", 10*time.Second),
	}
}

type client struct {
	log        *logger.Logger
	cfg        Config
	httpClient *http.Client
}

func New(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("missing SIRENE_API_KEY")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &client{
		log:        log.With("client", "SireneClient"),
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func NewFromEnv(log *logger.Logger) (Client, error) {
	return New(log, ConfigFromEnv())
}

type sireneResponse struct {
	Etablissement *struct {
		Siren       string `json:"siren"`
		UniteLegale struct {
			Denomination       string `json:"denominationUniteLegale"`
			ActivitePrincipale string `json:"activitePrincipaleUniteLegale"`
			CategorieJuridique string `json:"categorieJuridiqueUniteLegale"`
		} `json:"uniteLegale"`
		TrancheEffectifs string `json:"trancheEffectifsEtablissement"`
		Adresse          struct {
			NumeroVoie     string `json:"numeroVoieEtablissement"`
			TypeVoie       string `json:"typeVoieEtablissement"`
			LibelleVoie    string `json:"libelleVoieEtablissement"`
			CodePostal     string `json:"codePostalEtablissement"`
			LibelleCommune string `json:"libelleCommuneEtablissement"`
		} `json:"adresseEtablissement"`
	} `json:"etablissement"`
}

func (c *client) Lookup(ctx context.Context, siret string) (*Etablissement, error) {
	siret = strings.TrimSpace(siret)
	if !siretPattern.MatchString(siret) {
		return nil, apierr.New(http.StatusBadRequest, "invalid_siret",
			fmt.Errorf("le numero SIRET doit contenir exactement 14 chiffres"))
	}

	url := fmt.Sprintf("%s/siret/%s", c.cfg.BaseURL, siret)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "sirene_request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-INSEE-Api-Key-Integration", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apierr.New(http.StatusBadGateway, "sirene_unreachable", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apierr.New(http.StatusNotFound, "etablissement_not_found",
			fmt.Errorf("aucun etablissement trouve pour ce SIRET"))
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, apierr.New(resp.StatusCode, "sirene_error",
			fmt.Errorf("erreur API SIRENE: %d, %s", resp.StatusCode, strings.TrimSpace(string(body))))
	}

	var payload sireneResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apierr.New(http.StatusBadGateway, "sirene_decode", err)
	}
	if payload.Etablissement == nil {
		return nil, apierr.New(http.StatusNotFound, "etablissement_not_found",
			fmt.Errorf("aucun etablissement trouve pour ce SIRET"))
	}

	e := payload.Etablissement
	adresse := joinNonEmpty(", ",
		e.Adresse.NumeroVoie,
		e.Adresse.TypeVoie,
		e.Adresse.LibelleVoie,
		e.Adresse.CodePostal,
		e.Adresse.LibelleCommune,
	)
	return &Etablissement{
		Siren:                e.Siren,
		Denomination:         e.UniteLegale.Denomination,
		ActivitePrincipale:   e.UniteLegale.ActivitePrincipale,
		CategorieJuridique:   e.UniteLegale.CategorieJuridique,
		TrancheEffectif:      e.TrancheEffectifs,
		AdresseEtablissement: adresse,
	}, nil
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
