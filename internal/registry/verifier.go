// Package registry verifies company SIRET numbers against the public INSEE
// Sirene directory and derives a basic trust score from the result.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
)

// DefaultBaseURL is the public Sirene endpoint. No API key is required.
const DefaultBaseURL = "https://api.insee.fr/entreprises/sirene/V3.11"

const requestTimeout = 5 * time.Second

// Verification is the outcome of one SIRET lookup. A failed lookup is still
// a Verification: Valid is false and Error carries a user-facing message, so
// registry unavailability never breaks an analysis.
type Verification struct {
	Valid bool   `json:"valid"`
	Siret string `json:"siret"`
	Siren string `json:"siren,omitempty"`

	Denomination string `json:"denomination,omitempty"`
	Sigle        string `json:"sigle,omitempty"`

	Etat     string `json:"etat,omitempty"`
	EstActif bool   `json:"estActif"`

	DateCreation              string `json:"dateCreation,omitempty"`
	DateCreationEtablissement string `json:"dateCreationEtablissement,omitempty"`
	DateFermeture             string `json:"dateFermeture,omitempty"`

	ActivitePrincipale        string `json:"activitePrincipale,omitempty"`
	ActivitePrincipaleLibelle string `json:"activitePrincipaleLibelle,omitempty"`

	Adresse string `json:"adresse,omitempty"`

	TrancheEffectif        string `json:"trancheEffectif,omitempty"`
	TrancheEffectifLibelle string `json:"trancheEffectifLibelle,omitempty"`

	CategorieJuridique        string `json:"categorieJuridique,omitempty"`
	CategorieJuridiqueLibelle string `json:"categorieJuridiqueLibelle,omitempty"`

	EconomieSociale bool `json:"economieSociale"`

	ScoreConfiance int `json:"scoreConfiance"`

	Error string `json:"error,omitempty"`
}

// Verifier queries the Sirene directory.
type Verifier struct {
	httpClient *http.Client
	baseURL    string
	now        func() time.Time
}

// NewVerifier returns a Verifier against the public endpoint.
func NewVerifier() *Verifier {
	return &Verifier{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    DefaultBaseURL,
		now:        time.Now,
	}
}

// NewVerifierWithBaseURL overrides the endpoint, mainly for tests.
func NewVerifierWithBaseURL(baseURL string) *Verifier {
	v := NewVerifier()
	v.baseURL = strings.TrimSuffix(baseURL, "/")
	return v
}

// NormalizeSiret strips whitespace and any non-digit characters.
func NormalizeSiret(siret string) string {
	var b strings.Builder
	for _, r := range siret {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Sirene V3 response shape, reduced to the fields we surface.
type sireneResponse struct {
	Etablissement struct {
		Siren                            string `json:"siren"`
		EtatAdministratifEtablissement   string `json:"etatAdministratifEtablissement"`
		DateCreationEtablissement        string `json:"dateCreationEtablissement"`
		DateFermeture                    string `json:"dateFermeture"`
		DenominationUsuelleEtablissement string `json:"denominationUsuelleEtablissement"`

		UniteLegale struct {
			DenominationUniteLegale             string `json:"denominationUniteLegale"`
			Prenom1UniteLegale                  string `json:"prenom1UniteLegale"`
			NomUniteLegale                      string `json:"nomUniteLegale"`
			SigleUniteLegale                    string `json:"sigleUniteLegale"`
			DateCreationUniteLegale             string `json:"dateCreationUniteLegale"`
			TrancheEffectifsUniteLegale         string `json:"trancheEffectifsUniteLegale"`
			CategorieJuridiqueUniteLegale       string `json:"categorieJuridiqueUniteLegale"`
			EconomieSocialeSolidaireUniteLegale string `json:"economieSocialeSolidaireUniteLegale"`
		} `json:"uniteLegale"`

		AdresseEtablissement adresseEtablissement `json:"adresseEtablissement"`

		PeriodesEtablissement []struct {
			ActivitePrincipaleEtablissement        string `json:"activitePrincipaleEtablissement"`
			ActivitePrincipaleLibelleEtablissement string `json:"activitePrincipaleLibelleEtablissement"`
		} `json:"periodesEtablissement"`
	} `json:"etablissement"`
}

// VerifySiret looks up one SIRET. It never returns an error: a malformed
// number, an unknown establishment or an unreachable registry all come back
// as an invalid Verification with a message. A number that does not
// normalize to 14 digits is rejected without touching the network.
func (v *Verifier) VerifySiret(ctx context.Context, siret string) *Verification {
	clean := NormalizeSiret(siret)
	if len(clean) != 14 {
		return &Verification{
			Valid: false,
			Siret: clean,
			Error: "SIRET invalide (doit contenir 14 chiffres)",
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/siret/"+clean, nil)
	if err != nil {
		return &Verification{Valid: false, Siret: clean, Error: fmt.Sprintf("Erreur lors de la vérification: %v", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		log.Printf("registry: sirene lookup failed for %s: %v", clean, err)
		return &Verification{Valid: false, Siret: clean, Error: fmt.Sprintf("Erreur lors de la vérification: %v", err)}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return &Verification{Valid: false, Siret: clean, Error: "SIRET non trouvé dans la base Sirene"}
	case http.StatusTooManyRequests:
		return &Verification{Valid: false, Siret: clean, Error: "Trop de requêtes à l'API Sirene, réessayez dans quelques secondes"}
	default:
		return &Verification{Valid: false, Siret: clean, Error: fmt.Sprintf("Erreur lors de la vérification: statut HTTP %d", resp.StatusCode)}
	}

	var payload sireneResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return &Verification{Valid: false, Siret: clean, Error: fmt.Sprintf("Erreur lors de la vérification: %v", err)}
	}

	return v.buildVerification(clean, &payload)
}

func (v *Verifier) buildVerification(siret string, payload *sireneResponse) *Verification {
	etab := &payload.Etablissement
	unite := &etab.UniteLegale

	denomination := unite.DenominationUniteLegale
	if denomination == "" {
		denomination = strings.TrimSpace(unite.Prenom1UniteLegale + " " + unite.NomUniteLegale)
	}
	if denomination == "" {
		denomination = etab.DenominationUsuelleEtablissement
	}

	estActif := etab.EtatAdministratifEtablissement == "A"
	etat := "Fermé"
	if estActif {
		etat = "Actif"
	}

	var activite, activiteLibelle string
	if len(etab.PeriodesEtablissement) > 0 {
		periode := etab.PeriodesEtablissement[0]
		activite = periode.ActivitePrincipaleEtablissement
		activiteLibelle = periode.ActivitePrincipaleLibelleEtablissement
		if activiteLibelle == "" {
			activiteLibelle = ActiviteLibelle(activite)
		}
	}

	return &Verification{
		Valid: true,
		Siret: siret,
		Siren: etab.Siren,

		Denomination: denomination,
		Sigle:        unite.SigleUniteLegale,

		Etat:     etat,
		EstActif: estActif,

		DateCreation:              unite.DateCreationUniteLegale,
		DateCreationEtablissement: etab.DateCreationEtablissement,
		DateFermeture:             etab.DateFermeture,

		ActivitePrincipale:        activite,
		ActivitePrincipaleLibelle: activiteLibelle,

		Adresse: etab.AdresseEtablissement.format(),

		TrancheEffectif:        unite.TrancheEffectifsUniteLegale,
		TrancheEffectifLibelle: TrancheEffectifLibelle(unite.TrancheEffectifsUniteLegale),

		CategorieJuridique:        unite.CategorieJuridiqueUniteLegale,
		CategorieJuridiqueLibelle: CategorieJuridiqueLibelle(unite.CategorieJuridiqueUniteLegale),

		EconomieSociale: unite.EconomieSocialeSolidaireUniteLegale == "O",

		ScoreConfiance: TrustScore(estActif, unite.DateCreationUniteLegale, unite.TrancheEffectifsUniteLegale, v.now()),
	}
}

// VerifyAll runs one lookup per entry concurrently, keyed as given (devis_1,
// devis_2, ...). Failures stay isolated to their own entry.
func (v *Verifier) VerifyAll(ctx context.Context, sirets map[string]string) map[string]*Verification {
	out := make(map[string]*Verification, len(sirets))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for key, siret := range sirets {
		if strings.TrimSpace(siret) == "" {
			continue
		}
		wg.Add(1)
		go func(key, siret string) {
			defer wg.Done()
			verification := v.VerifySiret(ctx, siret)
			mu.Lock()
			out[key] = verification
			mu.Unlock()
		}(key, siret)
	}
	wg.Wait()
	return out
}
