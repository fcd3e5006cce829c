package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/config"
	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/models"
	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/services"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a proposal against RFP requirements with the configured LLM",
	RunE:  runAnalyze,
}

var (
	analyzeInputFile    string
	analyzeRequirements string
	analyzeVendor       string
	analyzeCompany      string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeInputFile, "in", "i", "", "Path to proposal file (.txt, .html or .pdf)")
	analyzeCmd.Flags().StringVarP(&analyzeRequirements, "requirements", "r", "", "Path to requirements JSON file")
	analyzeCmd.Flags().StringVar(&analyzeVendor, "vendor", "", "Vendor contact name")
	analyzeCmd.Flags().StringVar(&analyzeCompany, "company", "", "Vendor company")
	_ = analyzeCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()

	text, err := readProposal(analyzeInputFile)
	if err != nil {
		return err
	}

	var requirements json.RawMessage
	if analyzeRequirements != "" {
		raw, err := os.ReadFile(analyzeRequirements)
		if err != nil {
			return fmt.Errorf("failed to read requirements file: %w", err)
		}
		if !json.Valid(raw) {
			return fmt.Errorf("requirements file %s is not valid JSON", analyzeRequirements)
		}
		requirements = raw
	}

	backend, err := services.NewChatBackend(cfg.LLM)
	if err != nil {
		return err
	}

	invoker := services.NewLLMInvoker(backend, services.NewNoopCache(), cfg.LLM.RetryBase)
	analyzer := services.NewProposalAnalyzer(invoker, nil, services.InvokeOptionsFromConfig(cfg.LLM))

	result := analyzer.Analyze(cmd.Context(), models.AnalysisRequest{
		ProposalText:      text,
		SpaceRequirements: requirements,
		VendorInfo: models.VendorInfo{
			Name:    analyzeVendor,
			Company: analyzeCompany,
		},
	})

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	status := color.GreenString("Overall score: %.0f/100", result.OverallScore)
	if result.Fallback {
		status = color.YellowString("LLM unavailable, fallback result (score %.0f)", result.OverallScore)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), status)
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
