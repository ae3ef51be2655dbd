package analysis

import (
	"encoding/json"
	"strings"

	"github.com/mathieu/devis-analyzer/internal/llm"
	"github.com/mathieu/devis-analyzer/internal/types"
)

// degradedSummary is the executive summary used when the model replied but
// not in the expected structure.
const degradedSummary = "Analyse complétée mais format non structuré"

// CleanJSON prepares a raw model reply for parsing: markdown code fences
// are stripped, then the text is sliced from the first '{' to the last '}'.
// When no such span exists the text is returned as-is; the caller decides
// what a failed parse means.
func CleanJSON(text string) string {
	text = llm.CleanJSONBlock(text)

	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first >= 0 && last > first {
		return text[first : last+1]
	}
	return text
}

// ParseRecord turns a raw model reply into an AnalysisRecord. A garbled
// reply is an expected, recoverable condition: parsing never fails, it
// degrades to a record carrying the raw text with ErreurParsing set.
func ParseRecord(raw string) *types.AnalysisRecord {
	cleaned := CleanJSON(raw)

	var record types.AnalysisRecord
	if err := json.Unmarshal([]byte(cleaned), &record); err == nil {
		return &record
	}

	// Looser pass: scan for any balanced {...} span and retry.
	if span := llm.ExtractJSONObject(raw); span != "" {
		record = types.AnalysisRecord{}
		if err := json.Unmarshal([]byte(span), &record); err == nil {
			return &record
		}
	}

	return &types.AnalysisRecord{
		ResumeExecutif: degradedSummary,
		AnalyseBrute:   raw,
		ErreurParsing:  true,
	}
}
