package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mathieu/devis-analyzer/internal/analysis"
	"github.com/mathieu/devis-analyzer/internal/cache"
	"github.com/mathieu/devis-analyzer/internal/config"
	"github.com/mathieu/devis-analyzer/internal/extraction"
	"github.com/mathieu/devis-analyzer/internal/llm"
	"github.com/mathieu/devis-analyzer/internal/registry"
	"github.com/mathieu/devis-analyzer/internal/retry"
	"github.com/mathieu/devis-analyzer/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server exposing the quote analysis endpoints, including the SSE progress stream.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Port = servePort
	}

	client, err := llm.NewClient(cmd.Context(), llm.DefaultGeminiConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer client.Close()

	srv, err := server.New(server.Config{
		Port:       cfg.Port,
		UploadDir:  filepath.Join(os.TempDir(), "devis-analyzer-uploads"),
		Production: cfg.IsProduction(),
		Extractor:  extraction.NewExtractor(cache.NewStore(cfg.CacheCapacity), client),
		Analyzer:   analysis.NewAnalyzer(client, retry.DefaultPolicy()),
		Verifier:   registry.NewVerifierWithBaseURL(cfg.SireneBaseURL),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
