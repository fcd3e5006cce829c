package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/services"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract pricing, timeline, terms and technologies from a proposal",
	RunE:  runExtract,
}

var extractInputFile string

func init() {
	extractCmd.Flags().StringVarP(&extractInputFile, "in", "i", "", "Path to proposal file (.txt, .html or .pdf)")
	_ = extractCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	text, err := readProposal(extractInputFile)
	if err != nil {
		return err
	}

	fields := services.ExtractFields(text)

	out, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	fmt.Fprintln(cmd.ErrOrStderr(), color.New(color.FgCyan, color.Bold).Sprint("Extracted fields:"))
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
