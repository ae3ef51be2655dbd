// Package main is the entry point for the quote analysis service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "devis_agent",
	Short: "Comparateur de devis BTP",
	Long:  "devis_agent compares construction quotes: it extracts their text, runs a structured comparison through Gemini and verifies the companies against the Sirene registry.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
