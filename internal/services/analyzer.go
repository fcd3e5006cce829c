package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/models"
)

const (
	fallbackOverallScore   = 50
	fallbackCriterionScore = 5
	fallbackSummary        = "Proposal received and pending manual review."
)

type ProposalAnalyzer struct {
	invoker       *LLMInvoker
	retriever     ContextRetriever
	promptBuilder *PromptBuilder
	opts          InvokeOptions
}

// NewProposalAnalyzer builds an analyzer. retriever may be nil, in which case
// prompts carry no reference context.
func NewProposalAnalyzer(invoker *LLMInvoker, retriever ContextRetriever, opts InvokeOptions) *ProposalAnalyzer {
	opts.Schema = AnalysisSchema
	return &ProposalAnalyzer{
		invoker:       invoker,
		retriever:     retriever,
		promptBuilder: NewPromptBuilder(),
		opts:          opts,
	}
}

// Analyze scores a proposal against the space requirements. It always
// returns a result: when the model cannot be reached the fixed fallback is
// returned with Fallback set.
func (a *ProposalAnalyzer) Analyze(ctx context.Context, req models.AnalysisRequest) *models.AnalysisResult {
	extracted := ExtractFields(req.ProposalText)

	referenceContext := ""
	if a.retriever != nil {
		rc, err := a.retriever.Retrieve(ctx, req)
		if err != nil {
			log.Printf("⚠️  Reference context unavailable: %v\n", err)
		} else {
			referenceContext = rc
		}
	}

	prompt, systemPrompt := a.promptBuilder.BuildProposalAnalysisPrompt(req, referenceContext)

	raw, err := a.invoker.Invoke(ctx, prompt, systemPrompt, a.opts)
	if err != nil {
		log.Printf("❌ Analysis failed for %s, using fallback: %v\n", req.VendorInfo.DisplayName(), err)
		return FallbackAnalysis(req.VendorInfo, extracted)
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		log.Printf("❌ Failed to decode analysis for %s, using fallback: %v\n", req.VendorInfo.DisplayName(), err)
		return FallbackAnalysis(req.VendorInfo, extracted)
	}

	normalizeAnalysis(&result)
	result.ExtractedData = MergeExtracted(extracted, result.ExtractedData)
	result.Fallback = false

	log.Printf("✅ Analysis complete for %s (score %.0f)\n", req.VendorInfo.DisplayName(), result.OverallScore)
	return &result
}

// FallbackAnalysis is the result reported when automated analysis is not
// available.
func FallbackAnalysis(vendor models.VendorInfo, extracted models.ExtractedFields) *models.AnalysisResult {
	return &models.AnalysisResult{
		OverallScore: fallbackOverallScore,
		PersonalFeedback: fmt.Sprintf(
			"Thank you for your proposal, %s. It has been received and is pending manual review by our procurement team.",
			vendor.DisplayName()),
		CriteriaAnalysis: []models.CriterionAnalysis{
			{
				CriteriaName: "Overall Assessment",
				Score:        fallbackCriterionScore,
				Feedback:     "Automated analysis was unavailable. Manual review is required.",
				Evidence:     "",
			},
		},
		AISummary:     fallbackSummary,
		Strengths:     []string{"Proposal submitted"},
		Weaknesses:    []string{"Automated analysis unavailable"},
		ExtractedData: extracted,
		Fallback:      true,
	}
}

func normalizeAnalysis(result *models.AnalysisResult) {
	result.OverallScore = clamp(result.OverallScore, 0, 100)
	for i := range result.CriteriaAnalysis {
		result.CriteriaAnalysis[i].Score = clamp(result.CriteriaAnalysis[i].Score, 0, 10)
	}
	if result.Strengths == nil {
		result.Strengths = []string{}
	}
	if result.Weaknesses == nil {
		result.Weaknesses = []string{}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
