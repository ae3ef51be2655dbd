package analysis

import (
	"context"
	"log"

	"github.com/mathieu/devis-analyzer/internal/llm"
	"github.com/mathieu/devis-analyzer/internal/prompts"
	"github.com/mathieu/devis-analyzer/internal/retry"
	"github.com/mathieu/devis-analyzer/internal/types"
)

// Analyzer runs the comparison prompt against the model and turns the reply
// into a structured record.
type Analyzer struct {
	client llm.Client
	policy retry.Policy
	tier   llm.ModelTier
}

// NewAnalyzer creates an Analyzer using the given retry policy. The advanced
// tier is used: comparison quality dominates latency here.
func NewAnalyzer(client llm.Client, policy retry.Policy) *Analyzer {
	return &Analyzer{
		client: client,
		policy: policy,
		tier:   llm.TierAdvanced,
	}
}

// Analyze compares the extracted quote texts and returns the structured
// record plus token usage. Inference errors are retried per the policy and
// translated to user-facing errors; a malformed reply is not an error, it
// yields a degraded record.
func (a *Analyzer) Analyze(ctx context.Context, texts []string) (*types.AnalysisRecord, *types.Usage, error) {
	prompt, err := prompts.BuildComparisonPrompt(texts)
	if err != nil {
		return nil, nil, err
	}

	var resp *llm.Response
	err = a.policy.Do(ctx, func(ctx context.Context) error {
		r, genErr := a.client.GenerateContent(ctx, prompt, a.tier)
		if genErr != nil {
			return genErr
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, nil, TranslateError(err)
	}

	record := ParseRecord(resp.Text)
	if record.ErreurParsing {
		log.Printf("analysis: model reply was not valid JSON, returning raw text (len=%d)", len(resp.Text))
	} else if issues := SchemaIssues(CleanJSON(resp.Text)); len(issues) > 0 {
		log.Printf("analysis: reply deviates from expected shape: %v", issues)
	}
	return record, resp.Usage, nil
}
