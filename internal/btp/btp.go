// Package btp holds the construction-sector reference data used to steer
// the comparison prompts: standard trade categories, mandatory warranties
// and insurance, and the checklist of commonly omitted quote items.
package btp

// CorpsEtat lists the standardized trade categories used to classify
// quote line items.
var CorpsEtat = []string{
	"Installation de chantier",
	"Terrassement / VRD",
	"Gros œuvre",
	"Charpente",
	"Couverture / Étanchéité",
	"Menuiseries extérieures",
	"Plomberie / Sanitaires",
	"Électricité",
	"Chauffage / Climatisation",
	"Ventilation",
	"Isolation",
	"Plâtrerie / Cloisons",
	"Menuiseries intérieures",
	"Peinture / Décoration",
	"Revêtements sols",
	"Carrelage / Faïence",
	"Espaces verts / VRD",
	"Nettoyage de fin de chantier",
	"Coordination / Maîtrise d'œuvre",
}

// GarantiesObligatoires are the legally mandated warranties every quote
// should mention.
var GarantiesObligatoires = []string{
	"Garantie décennale",
	"Garantie biennale (bon fonctionnement)",
	"Garantie de parfait achèvement (1 an)",
}

// Assurances are the insurance policies expected on a construction project.
var Assurances = []string{
	"RC Professionnelle",
	"RC Décennale",
	"Dommages-Ouvrage (obligatoire pour le maître d'ouvrage)",
	"TRC (Tous Risques Chantier)",
}

// Qualifications lists recognized certifications worth flagging when present.
var Qualifications = []string{
	"RGE (Reconnu Garant Environnement)",
	"Qualibat",
	"Qualifelec",
	"Qualit'EnR",
	"Qualipac",
	"Eco Artisan",
}

// ElementsAVerifier are items frequently missing from quotes; the model is
// asked to check each one explicitly.
var ElementsAVerifier = []string{
	"Assurance dommages-ouvrage",
	"Étude de sol G2",
	"Contrôle technique",
	"Coordonnateur SPS (sécurité)",
	"Diagnostics obligatoires",
	"Raccordements réseaux",
	"Réception de chantier",
	"Levée de réserves",
}

// UnitesCourantes are the measurement units commonly found on quote lines.
var UnitesCourantes = []string{
	"m²", "m³", "ml", "u", "ens", "ff", "h", "j", "t",
}
