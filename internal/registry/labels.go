package registry

import (
	"fmt"
	"strings"
)

type adresseEtablissement struct {
	NumeroVoieEtablissement       string `json:"numeroVoieEtablissement"`
	IndiceRepetitionEtablissement string `json:"indiceRepetitionEtablissement"`
	TypeVoieEtablissement         string `json:"typeVoieEtablissement"`
	LibelleVoieEtablissement      string `json:"libelleVoieEtablissement"`
	CodePostalEtablissement       string `json:"codePostalEtablissement"`
	LibelleCommuneEtablissement   string `json:"libelleCommuneEtablissement"`
}

func (a adresseEtablissement) format() string {
	var parts []string
	for _, p := range []string{
		a.NumeroVoieEtablissement,
		a.IndiceRepetitionEtablissement,
		a.TypeVoieEtablissement,
		a.LibelleVoieEtablissement,
	} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	rue := strings.Join(parts, " ")
	ville := strings.TrimSpace(a.CodePostalEtablissement + " " + a.LibelleCommuneEtablissement)
	if rue == "" {
		return ville
	}
	return rue + ", " + ville
}

var tranchesEffectif = map[string]string{
	"NN": "Non renseigné",
	"00": "0 salarié",
	"01": "1 ou 2 salariés",
	"02": "3 à 5 salariés",
	"03": "6 à 9 salariés",
	"11": "10 à 19 salariés",
	"12": "20 à 49 salariés",
	"21": "50 à 99 salariés",
	"22": "100 à 199 salariés",
	"31": "200 à 249 salariés",
	"32": "250 à 499 salariés",
	"41": "500 à 999 salariés",
	"42": "1 000 à 1 999 salariés",
	"51": "2 000 à 4 999 salariés",
	"52": "5 000 à 9 999 salariés",
	"53": "10 000 salariés et plus",
}

// TrancheEffectifLibelle maps an INSEE headcount bracket code to its label.
func TrancheEffectifLibelle(code string) string {
	if label, ok := tranchesEffectif[code]; ok {
		return label
	}
	return "Non renseigné"
}

var categoriesJuridiques = map[string]string{
	"1000": "Entrepreneur individuel",
	"5499": "SA à conseil d'administration (s.a.i.)",
	"5505": "SA à directoire (s.a.i.)",
	"5510": "SAS, société par actions simplifiée",
	"5599": "SA (s.a.i.)",
	"5710": "SAS, société par actions simplifiée à associé unique",
	"5720": "SARL unipersonnelle",
	"5785": "Société civile",
	"6540": "SARL, société à responsabilité limitée",
	"9220": "Association déclarée",
}

// CategorieJuridiqueLibelle maps an INSEE legal category code to its label.
func CategorieJuridiqueLibelle(code string) string {
	if label, ok := categoriesJuridiques[code]; ok {
		return label
	}
	return fmt.Sprintf("Code %s", code)
}

// Common construction-trade NAF codes, with two-digit division fallbacks.
var codesNAF = map[string]string{
	"41":    "Construction de bâtiments",
	"42":    "Génie civil",
	"43":    "Travaux de construction spécialisés",
	"4311Z": "Travaux de démolition",
	"4312A": "Travaux de terrassement courants",
	"4321A": "Travaux d'installation électrique",
	"4322A": "Travaux d'installation d'eau et de gaz",
	"4322B": "Travaux d'installation d'équipements thermiques",
	"4331Z": "Travaux de plâtrerie",
	"4332A": "Travaux de menuiserie bois",
	"4333Z": "Travaux de revêtement des sols et des murs",
	"4391A": "Travaux de charpente",
	"4391B": "Travaux de couverture",
	"4399C": "Travaux de maçonnerie générale",
}

// ActiviteLibelle resolves a NAF activity code to a label, falling back to
// the two-digit division before giving up.
func ActiviteLibelle(code string) string {
	if code == "" {
		return "Non renseigné"
	}
	if label, ok := codesNAF[code]; ok {
		return label
	}
	if len(code) >= 2 {
		if label, ok := codesNAF[code[:2]]; ok {
			return label
		}
	}
	return fmt.Sprintf("Code NAF: %s", code)
}
