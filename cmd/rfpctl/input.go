package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/services"
)

// readProposal loads a proposal from a text, HTML or PDF file.
func readProposal(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		content, err := services.NewPDFParserService().ExtractText(path)
		if err != nil {
			return "", err
		}
		return content.Text, nil
	case ".html", ".htm":
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return services.HTMLToText(string(raw))
	default:
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(raw), nil
	}
}
