package prompts

import (
	"fmt"
	"strings"

	"github.com/mathieu/devis-analyzer/internal/btp"
)

// BuildComparisonPrompt renders the comparative analysis prompt for the
// given quote texts, embedding each text verbatim under a numbered heading.
// Exactly two quotes use the fixed devis_1/devis_2 layout; three or more use
// the array layout with a comparative matrix. The result is deterministic
// for a given input.
func BuildComparisonPrompt(quotes []string) (string, error) {
	if len(quotes) < 2 {
		return "", fmt.Errorf("at least 2 quotes are required, got %d", len(quotes))
	}

	data := map[string]string{
		"CorpsEtat":         strings.Join(btp.CorpsEtat, ", "),
		"Garanties":         strings.Join(btp.GarantiesObligatoires, ", "),
		"Assurances":        strings.Join(btp.Assurances, ", "),
		"ElementsAVerifier": strings.Join(btp.ElementsAVerifier, ", "),
		"Qualifications":    strings.Join(btp.Qualifications, ", "),
		"Unites":            strings.Join(btp.UnitesCourantes, ", "),
	}

	if len(quotes) == 2 {
		data["Devis1"] = quotes[0]
		data["Devis2"] = quotes[1]
		return Format(MustGet("analysis.json", "compare-two-quotes"), data), nil
	}

	var sections strings.Builder
	for i, q := range quotes {
		if i > 0 {
			sections.WriteString("\n\n")
		}
		fmt.Fprintf(&sections, "DEVIS %d:\n%s", i+1, q)
	}
	data["NbDevis"] = fmt.Sprintf("%d", len(quotes))
	data["DevisSections"] = sections.String()
	return Format(MustGet("analysis.json", "compare-multi-quotes"), data), nil
}

// TranscriptionPrompt returns the fixed vision instruction used to pull all
// visible text out of an uploaded quote image.
func TranscriptionPrompt() string {
	return MustGet("analysis.json", "transcribe-image")
}
