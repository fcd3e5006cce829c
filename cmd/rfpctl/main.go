// Command rfpctl runs the proposal analysis pipeline from the command line.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rfpctl",
	Short: "RFP proposal analysis tools",
	Long:  "rfpctl extracts fields from vendor proposals, runs the LLM analysis offline from the API, and loads reference documents into the vector store.",
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}
