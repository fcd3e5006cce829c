package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/models"
)

const (
	maxProposalChars = 4000
	truncationMarker = "\n...[truncated]"

	analysisSystemPrompt   = "You are an expert procurement analyst who evaluates vendor proposals against RFP requirements. Respond with valid JSON only."
	comparisonSystemPrompt = "You are an expert procurement advisor who compares competing vendor proposals. Respond with valid JSON only."
)

// AnalysisCriteria are the scoring dimensions every analysis reports on.
var AnalysisCriteria = []string{
	"Price Competitiveness",
	"Timeline Adherence",
	"Technical Capability",
	"Compliance & Certifications",
}

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildProposalAnalysisPrompt creates the user and system prompts for a
// single proposal evaluation.
func (pb *PromptBuilder) BuildProposalAnalysisPrompt(req models.AnalysisRequest, referenceContext string) (string, string) {
	vendorJSON, _ := json.MarshalIndent(req.VendorInfo, "", "  ")

	var criteria strings.Builder
	for i, name := range AnalysisCriteria {
		criteria.WriteString(fmt.Sprintf("%d. %s (0-10)\n", i+1, name))
	}

	var criteriaTemplate []string
	for _, name := range AnalysisCriteria {
		criteriaTemplate = append(criteriaTemplate, fmt.Sprintf(
			`    {"criteriaName": %q, "score": <0-10>, "feedback": "<1-2 sentences>", "evidence": "<short quote from the proposal>"}`, name))
	}

	reference := ""
	if strings.TrimSpace(referenceContext) != "" {
		reference = fmt.Sprintf("\nPROCUREMENT REFERENCE CONTEXT:\n%s\n", referenceContext)
	}

	prompt := fmt.Sprintf(`Analyze the following vendor proposal against the RFP requirements.

RFP REQUIREMENTS:
%s

VENDOR INFORMATION:
%s

PROPOSAL CONTENT:
%s
%s
Evaluate the proposal on these criteria:
%s
Scoring rubric: 0-3 poor or missing, 4-6 partially meets requirements, 7-8 meets requirements, 9-10 exceeds requirements.
The overall score (0-100) reflects all criteria together.

Return ONLY a JSON object in this exact format:
{
  "overallScore": <0-100>,
  "personalFeedback": "<2-3 sentences addressed to the vendor>",
  "criteriaAnalysis": [
%s
  ],
  "aiSummary": "<3-4 sentence summary for the procurement team>",
  "strengths": ["<strength>"],
  "weaknesses": ["<weakness>"],
  "extractedData": {
    "pricing": {"total": <number>, "currency": "<ISO code>"},
    "timeline": {"deliveryDate": "<date>", "leadTime": "<duration>"},
    "terms": {"paymentTerms": "<terms>", "warranty": "<warranty>"},
    "compliance": {"certifications": ["<certification>"]},
    "technical": {"technologies": ["<technology>"]}
  }
}

Omit any extractedData field the proposal does not state. Do not invent values.`,
		formatJSONBlock(req.SpaceRequirements),
		string(vendorJSON),
		TruncateProposal(req.ProposalText),
		reference,
		criteria.String(),
		strings.Join(criteriaTemplate, ",\n"),
	)

	return prompt, analysisSystemPrompt
}

type proposalDigest struct {
	ProposalIndex int              `json:"proposalIndex"`
	Vendor        string           `json:"vendor"`
	OverallScore  float64          `json:"overallScore"`
	Summary       string           `json:"summary"`
	Pricing       *models.Pricing  `json:"pricing,omitempty"`
	Timeline      *models.Timeline `json:"timeline,omitempty"`
	Strengths     []string         `json:"strengths"`
	Weaknesses    []string         `json:"weaknesses"`
}

// BuildComparisonPrompt creates the prompts that rank a batch of proposals.
func (pb *PromptBuilder) BuildComparisonPrompt(inputs []models.ComparisonInput, requirements json.RawMessage) (string, string) {
	digests := make([]proposalDigest, 0, len(inputs))
	for i, in := range inputs {
		d := proposalDigest{ProposalIndex: i, Vendor: in.VendorName}
		if a := in.Analysis; a != nil {
			d.OverallScore = a.OverallScore
			d.Summary = a.AISummary
			d.Pricing = a.ExtractedData.Pricing
			d.Timeline = a.ExtractedData.Timeline
			d.Strengths = a.Strengths
			d.Weaknesses = a.Weaknesses
		}
		digests = append(digests, d)
	}
	digestJSON, _ := json.MarshalIndent(digests, "", "  ")

	prompt := fmt.Sprintf(`Compare the following %d vendor proposals for the same RFP and rank them.

RFP REQUIREMENTS:
%s

PROPOSALS:
%s

Rank the proposals from best (rank 1) to worst (rank %d). Consider price, timeline, technical fit, compliance and risk.
Recommend at most the top 1-2 proposals.

Return ONLY a JSON array with exactly one entry per proposal:
[
  {
    "proposalIndex": <proposalIndex from the list above>,
    "rank": <1-%d, each rank used once>,
    "isRecommended": <true or false>,
    "reasoning": "<why this proposal holds this rank>",
    "comparisonNotes": "<how it compares to the others>",
    "riskFactors": ["<risk>"]
  }
]`,
		len(inputs),
		formatJSONBlock(requirements),
		string(digestJSON),
		len(inputs),
		len(inputs),
	)

	return prompt, comparisonSystemPrompt
}

// BuildRetrievalQuery creates the vector search query for reference context.
func (pb *PromptBuilder) BuildRetrievalQuery(queryType string, req models.AnalysisRequest) string {
	switch queryType {
	case DocTypeProcurementPolicy:
		return fmt.Sprintf("Procurement policy and vendor requirements for: %s", truncate(string(req.SpaceRequirements), 500))
	case DocTypeEvaluationRubric:
		return "Proposal evaluation criteria and scoring guidelines"
	default:
		return truncate(req.ProposalText, 1000)
	}
}

// TruncateProposal keeps the first 4000 characters of a proposal body.
func TruncateProposal(text string) string {
	runes := []rune(text)
	if len(runes) <= maxProposalChars {
		return text
	}
	return string(runes[:maxProposalChars]) + truncationMarker
}

// Helper to clean and format context from RAG results
func FormatRAGContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Context %d (%s, score %.2f) ---\n%s",
			i+1, result.DocType, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}

func formatJSONBlock(raw json.RawMessage) string {
	if len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null" {
		return "Not specified"
	}

	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return string(raw)
	}
	return out.String()
}
