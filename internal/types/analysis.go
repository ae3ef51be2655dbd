// Package types defines the shared domain types exchanged between the
// extraction pipeline, the analysis client and the HTTP layer.
package types

// LigneDevis is a single line item of a quote as identified by the model.
// Numeric fields are pointers because the model frequently omits them.
type LigneDevis struct {
	Designation  string   `json:"designation,omitempty"`
	CorpsEtat    string   `json:"corps_etat,omitempty"`
	Quantite     *float64 `json:"quantite,omitempty"`
	Unite        string   `json:"unite,omitempty"`
	PrixUnitaire *float64 `json:"prix_unitaire,omitempty"`
	Total        *float64 `json:"total,omitempty"`
}

// DevisAnalyse holds the per-quote section of an analysis.
// Every field is optional: the schema is a contract with the LLM, not a
// statically enforced one.
type DevisAnalyse struct {
	NomFournisseur string       `json:"nom_fournisseur,omitempty"`
	Siret          string       `json:"siret,omitempty"`
	PrixTotal      string       `json:"prix_total,omitempty"`
	PrixM2         string       `json:"prix_m2,omitempty"`
	Delais         string       `json:"delais,omitempty"`
	Garanties      string       `json:"garanties,omitempty"`
	Assurances     string       `json:"assurances,omitempty"`
	Qualifications []string     `json:"qualifications,omitempty"`
	PointsForts    []string     `json:"points_forts,omitempty"`
	PointsFaibles  []string     `json:"points_faibles,omitempty"`
	Lignes         []LigneDevis `json:"lignes,omitempty"`
}

// ElementsManquants lists items absent from each quote.
type ElementsManquants struct {
	Devis1 []string `json:"devis_1,omitempty"`
	Devis2 []string `json:"devis_2,omitempty"`
}

// Comparaison is the cross-quote section of an analysis.
type Comparaison struct {
	DifferencePrix             string             `json:"difference_prix,omitempty"`
	MeilleurRapportQualitePrix string             `json:"meilleur_rapport_qualite_prix,omitempty"`
	ComparaisonParCorpsEtat    []string           `json:"comparaison_par_corps_etat,omitempty"`
	DifferencesNotables        []string           `json:"differences_notables,omitempty"`
	AlertesConformite          []string           `json:"alertes_conformite,omitempty"`
	ElementsManquants          *ElementsManquants `json:"elements_manquants,omitempty"`
}

// Recommandation is the conclusion of an analysis.
type Recommandation struct {
	DevisRecommande        string         `json:"devis_recommande,omitempty"`
	Justification          string         `json:"justification,omitempty"`
	Scores                 map[string]int `json:"scores,omitempty"`
	PointsAttention        []string       `json:"points_attention,omitempty"`
	PointsNegociation      []string       `json:"points_negociation,omitempty"`
	QuestionsClarification []string       `json:"questions_clarification,omitempty"`
}

// AnalysisRecord is the structured comparison produced by the model.
// The two-quote prompt fills Devis1/Devis2; the N-quote prompt fills Devis.
// When structured parsing is impossible the degraded form carries the raw
// model reply in AnalyseBrute with ErreurParsing set.
type AnalysisRecord struct {
	ResumeExecutif string          `json:"resume_executif,omitempty"`
	Devis1         *DevisAnalyse   `json:"devis_1,omitempty"`
	Devis2         *DevisAnalyse   `json:"devis_2,omitempty"`
	Devis          []*DevisAnalyse `json:"devis,omitempty"`
	Comparaison    *Comparaison    `json:"comparaison,omitempty"`
	Recommandation *Recommandation `json:"recommandation,omitempty"`
	AnalyseBrute   string          `json:"analyse_brute,omitempty"`
	ErreurParsing  bool            `json:"erreur_parsing,omitempty"`
}

// ParseFailed reports whether this record is the degraded variant.
func (r *AnalysisRecord) ParseFailed() bool {
	return r != nil && r.ErreurParsing
}

// QuoteSections returns the per-quote sections in order, regardless of
// which prompt variant produced the record.
func (r *AnalysisRecord) QuoteSections() []*DevisAnalyse {
	if r == nil {
		return nil
	}
	if len(r.Devis) > 0 {
		return r.Devis
	}
	var out []*DevisAnalyse
	if r.Devis1 != nil {
		out = append(out, r.Devis1)
	}
	if r.Devis2 != nil {
		out = append(out, r.Devis2)
	}
	return out
}

// Usage mirrors the token accounting returned by the inference API.
type Usage struct {
	PromptTokens    int32 `json:"promptTokenCount,omitempty"`
	CandidateTokens int32 `json:"candidatesTokenCount,omitempty"`
	TotalTokens     int32 `json:"totalTokenCount,omitempty"`
}
