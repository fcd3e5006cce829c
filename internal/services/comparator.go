package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/models"
)

type ProposalComparator struct {
	invoker       *LLMInvoker
	promptBuilder *PromptBuilder
	opts          InvokeOptions
}

func NewProposalComparator(invoker *LLMInvoker, opts InvokeOptions) *ProposalComparator {
	opts.Schema = ComparisonSchema
	return &ProposalComparator{
		invoker:       invoker,
		promptBuilder: NewPromptBuilder(),
		opts:          opts,
	}
}

type rankedProposal struct {
	ProposalIndex int `json:"proposalIndex"`
	models.ComparisonResult
}

// Compare ranks inputs against each other. The returned slice has one entry
// per input, in input order. Ranks always form a permutation of 1..N.
func (c *ProposalComparator) Compare(ctx context.Context, inputs []models.ComparisonInput, requirements json.RawMessage) []models.ComparisonResult {
	if len(inputs) == 0 {
		return []models.ComparisonResult{}
	}

	prompt, systemPrompt := c.promptBuilder.BuildComparisonPrompt(inputs, requirements)

	raw, err := c.invoker.Invoke(ctx, prompt, systemPrompt, c.opts)
	if err != nil {
		log.Printf("❌ Comparison of %d proposals failed, using index order: %v\n", len(inputs), err)
		return FallbackComparison(len(inputs))
	}

	var ranked []rankedProposal
	if err := json.Unmarshal(raw, &ranked); err != nil {
		log.Printf("❌ Failed to decode comparison, using index order: %v\n", err)
		return FallbackComparison(len(inputs))
	}

	results, err := alignRanking(ranked, len(inputs))
	if err != nil {
		log.Printf("⚠️  Rejected model ranking, using index order: %v\n", err)
		return FallbackComparison(len(inputs))
	}

	log.Printf("✅ Compared %d proposals\n", len(inputs))
	return results
}

// alignRanking reorders the model output by proposalIndex and checks that
// both the indices and the ranks are permutations of the batch.
func alignRanking(ranked []rankedProposal, n int) ([]models.ComparisonResult, error) {
	if len(ranked) != n {
		return nil, fmt.Errorf("expected %d entries, got %d", n, len(ranked))
	}

	results := make([]models.ComparisonResult, n)
	seenIndex := make([]bool, n)
	seenRank := make([]bool, n)

	for _, r := range ranked {
		if r.ProposalIndex < 0 || r.ProposalIndex >= n {
			return nil, fmt.Errorf("proposalIndex %d out of range", r.ProposalIndex)
		}
		if seenIndex[r.ProposalIndex] {
			return nil, fmt.Errorf("duplicate proposalIndex %d", r.ProposalIndex)
		}
		if r.Rank < 1 || r.Rank > n {
			return nil, fmt.Errorf("rank %d out of range 1..%d", r.Rank, n)
		}
		if seenRank[r.Rank-1] {
			return nil, fmt.Errorf("duplicate rank %d", r.Rank)
		}
		seenIndex[r.ProposalIndex] = true
		seenRank[r.Rank-1] = true

		result := r.ComparisonResult
		// Only the top two may carry a recommendation.
		if result.Rank > 2 {
			result.IsRecommended = false
		}
		if result.RiskFactors == nil {
			result.RiskFactors = []string{}
		}
		results[r.ProposalIndex] = result
	}

	return results, nil
}

// FallbackComparison ranks n proposals in input order and recommends the
// first one.
func FallbackComparison(n int) []models.ComparisonResult {
	results := make([]models.ComparisonResult, n)
	for i := range results {
		results[i] = models.ComparisonResult{
			Rank:            i + 1,
			IsRecommended:   i == 0,
			Reasoning:       fmt.Sprintf("Ranked #%d by submission order; automated comparison was unavailable.", i+1),
			ComparisonNotes: "Manual comparison recommended.",
			RiskFactors:     []string{},
		}
	}
	return results
}
