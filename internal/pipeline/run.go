// Package pipeline orchestrates a full quote comparison: text extraction,
// model analysis, registry verification and temp file cleanup, with staged
// progress reporting along the way.
package pipeline

import (
	"context"
	"fmt"

	"github.com/mathieu/devis-analyzer/internal/extraction"
	"github.com/mathieu/devis-analyzer/internal/registry"
	"github.com/mathieu/devis-analyzer/internal/types"
)

// Extractor turns uploaded files into text, batch-wise.
type Extractor interface {
	ExtractAll(ctx context.Context, files []extraction.UploadedFile) ([]*extraction.Result, error)
}

// Analyzer compares extracted quote texts.
type Analyzer interface {
	Analyze(ctx context.Context, texts []string) (*types.AnalysisRecord, *types.Usage, error)
}

// Verifier checks SIRET numbers against the company registry.
type Verifier interface {
	VerifyAll(ctx context.Context, sirets map[string]string) map[string]*registry.Verification
}

// Options wires one pipeline run.
type Options struct {
	Files      []extraction.UploadedFile
	Extractor  Extractor
	Analyzer   Analyzer
	Verifier   Verifier
	OnProgress func(ProgressEvent)
}

// Result is the complete outcome of a run.
type Result struct {
	Files         []*extraction.Result              `json:"files"`
	Duplicates    [][]string                        `json:"duplicates,omitempty"`
	Analysis      *types.AnalysisRecord             `json:"analysis"`
	Verifications map[string]*registry.Verification `json:"siretVerifications,omitempty"`
	Usage         *types.Usage                      `json:"usage,omitempty"`
}

// Run executes the pipeline. Uploaded files are removed before it returns,
// on success and on failure alike. Registry verification only runs when the
// analysis surfaced SIRET numbers, and its failures never fail the run.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Extractor == nil || opts.Analyzer == nil {
		return nil, fmt.Errorf("pipeline: extractor and analyzer are required")
	}

	reporter := NewReporter(opts.OnProgress)

	cleaned := false
	defer func() {
		if !cleaned {
			extraction.CleanupFiles(opts.Files)
		}
	}()

	reporter.Report(StepUpload, 5, "Fichiers reçus")

	reporter.Report(StepExtract, 10, "Extraction du texte des devis...")
	results, err := opts.Extractor.ExtractAll(ctx, opts.Files)
	if err != nil {
		return nil, err
	}
	reporter.Report(StepExtract, 30, "Texte extrait")

	duplicates := extraction.DuplicateGroups(results)

	reporter.Report(StepAnalyze, 35, "Analyse comparative des devis...")
	texts := make([]string, len(results))
	for i, res := range results {
		texts[i] = res.Text
	}
	record, usage, err := opts.Analyzer.Analyze(ctx, texts)
	if err != nil {
		return nil, err
	}
	reporter.Report(StepAnalyze, 80, "Analyse terminée")

	var verifications map[string]*registry.Verification
	if opts.Verifier != nil {
		if sirets := siretsByQuote(record); len(sirets) > 0 {
			reporter.Report(StepVerify, 82, "Vérification des informations SIRET...")
			verifications = opts.Verifier.VerifyAll(ctx, sirets)
		}
	}
	reporter.Report(StepVerify, 95, "Vérifications terminées")

	reporter.Report(StepCleanup, 95, "Nettoyage des fichiers temporaires...")
	extraction.CleanupFiles(opts.Files)
	cleaned = true

	reporter.Report(StepComplete, 98, "Finalisation...")
	reporter.Report(StepComplete, 100, "Analyse complétée avec succès")

	return &Result{
		Files:         results,
		Duplicates:    duplicates,
		Analysis:      record,
		Verifications: verifications,
		Usage:         usage,
	}, nil
}

// siretsByQuote collects the SIRET numbers the model found, keyed devis_1,
// devis_2 and so on in quote order.
func siretsByQuote(record *types.AnalysisRecord) map[string]string {
	out := make(map[string]string)
	for i, section := range record.QuoteSections() {
		if section != nil && section.Siret != "" {
			out[fmt.Sprintf("devis_%d", i+1)] = section.Siret
		}
	}
	return out
}
