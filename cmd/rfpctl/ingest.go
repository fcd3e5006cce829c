package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/config"
	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/services"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load procurement policy and rubric PDFs into the vector store",
	Long:  "Every PDF in --dir is chunked, embedded with Gemini and stored in Qdrant. Files with \"rubric\" in the name are stored as evaluation rubrics, the rest as procurement policy.",
	RunE:  runIngest,
}

var ingestDir string

func init() {
	ingestCmd.Flags().StringVarP(&ingestDir, "dir", "d", "./reference_docs", "Directory of reference PDFs")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	ctx := cmd.Context()

	paths, err := filepath.Glob(filepath.Join(ingestDir, "*.pdf"))
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", ingestDir, err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no PDF files found in %s", ingestDir)
	}

	gemini, err := services.NewGeminiService(cfg.LLM.GeminiAPIKey, cfg.LLM.GeminiModel)
	if err != nil {
		return fmt.Errorf("failed to initialize Gemini: %w", err)
	}

	qdrantService, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		return fmt.Errorf("failed to initialize Qdrant: %w", err)
	}
	if err := qdrantService.InitCollection(ctx); err != nil {
		return fmt.Errorf("failed to initialize collection: %w", err)
	}

	ingester := services.NewReferenceIngester(gemini, qdrantService, services.NewPDFParserService(), services.NewTextChunker())

	ok := color.New(color.FgGreen).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()

	successCount, failCount := 0, 0
	for _, path := range paths {
		docType := services.DocTypeForFile(path)
		fmt.Fprintf(cmd.ErrOrStderr(), "📄 %s (%s)\n", filepath.Base(path), docType)

		stored, err := ingester.IngestFile(ctx, path, docType)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "   %s %v\n", bad("failed:"), err)
			failCount++
			continue
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "   %s %d chunks\n", ok("stored"), stored)
		successCount++
	}

	fmt.Fprintln(cmd.ErrOrStderr(), strings.Repeat("=", 60))
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %d   %s %d\n", ok("Successful:"), successCount, bad("Failed:"), failCount)

	if failCount > 0 {
		return fmt.Errorf("%d documents failed to ingest", failCount)
	}
	return nil
}
