package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mathieu/devis-analyzer/internal/analysis"
	"github.com/mathieu/devis-analyzer/internal/cache"
	"github.com/mathieu/devis-analyzer/internal/config"
	"github.com/mathieu/devis-analyzer/internal/extraction"
	"github.com/mathieu/devis-analyzer/internal/llm"
	"github.com/mathieu/devis-analyzer/internal/pipeline"
	"github.com/mathieu/devis-analyzer/internal/registry"
	"github.com/mathieu/devis-analyzer/internal/retry"
)

var (
	analyzeJSON     bool
	analyzeNoVerify bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <devis1> <devis2> [devis3...]",
	Short: "Compare quote files from the command line",
	Long:  `Run the comparison pipeline on local files (PDF, JPEG, PNG or plain text) without starting the server.`,
	Args:  cobra.MinimumNArgs(2),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the full result as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeNoVerify, "no-verify", false, "Skip SIRET registry verification")
	rootCmd.AddCommand(analyzeCmd)
}

var mediaTypesByExt = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".txt":  "text/plain",
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The pipeline deletes its input files when it finishes. That is the
	// right behavior for server uploads but not for the user's own files,
	// so the run works on copies in a scratch dir.
	scratch, err := os.MkdirTemp("", "devis-analyzer-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(scratch)

	files := make([]extraction.UploadedFile, len(args))
	for i, path := range args {
		mediaType, ok := mediaTypesByExt[strings.ToLower(filepath.Ext(path))]
		if !ok {
			return fmt.Errorf("unsupported file type: %s", path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		copyPath := filepath.Join(scratch, fmt.Sprintf("%d%s", i, filepath.Ext(path)))
		if err := os.WriteFile(copyPath, data, 0o600); err != nil {
			return err
		}
		files[i] = extraction.UploadedFile{
			Path:        copyPath,
			DisplayName: filepath.Base(path),
			MediaType:   mediaType,
			ByteSize:    int64(len(data)),
		}
	}

	client, err := llm.NewClient(cmd.Context(), llm.DefaultGeminiConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer client.Close()

	opts := pipeline.Options{
		Files:     files,
		Extractor: extraction.NewExtractor(cache.NewStore(cfg.CacheCapacity), client),
		Analyzer:  analysis.NewAnalyzer(client, retry.DefaultPolicy()),
		OnProgress: func(e pipeline.ProgressEvent) {
			fmt.Fprintf(os.Stderr, "[%3d%%] %s\n", e.Progress, e.Message)
		},
	}
	if !analyzeNoVerify {
		opts.Verifier = registry.NewVerifierWithBaseURL(cfg.SireneBaseURL)
	}

	result, err := pipeline.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if analyzeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printSummary(result)
	return nil
}

func printSummary(result *pipeline.Result) {
	record := result.Analysis
	if record.ParseFailed() {
		fmt.Println("L'analyse n'a pas pu être structurée. Réponse brute du modèle:")
		fmt.Println(record.AnalyseBrute)
		return
	}

	if record.ResumeExecutif != "" {
		fmt.Println(record.ResumeExecutif)
	}
	if record.Recommandation != nil && record.Recommandation.DevisRecommande != "" {
		fmt.Printf("\nDevis recommandé: %s\n", record.Recommandation.DevisRecommande)
		if record.Recommandation.Justification != "" {
			fmt.Println(record.Recommandation.Justification)
		}
	}
	for key, verification := range result.Verifications {
		if verification.Valid {
			fmt.Printf("\n%s: %s (%s), score de confiance %d/100\n",
				key, verification.Denomination, verification.Etat, verification.ScoreConfiance)
		} else {
			fmt.Printf("\n%s: vérification SIRET impossible: %s\n", key, verification.Error)
		}
	}
	for _, group := range result.Duplicates {
		fmt.Printf("\nAttention: fichiers identiques: %s\n", strings.Join(group, ", "))
	}
}
