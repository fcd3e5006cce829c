package services

import (
	"context"
	"fmt"
	"log"

	"github.com/sanjaikumarkaleeswaran/RFP-sub000/internal/models"
)

// ContextRetriever supplies reference material for an analysis prompt.
type ContextRetriever interface {
	Retrieve(ctx context.Context, req models.AnalysisRequest) (string, error)
}

type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type vectorRetriever struct {
	embedder      Embedder
	store         QdrantService
	promptBuilder *PromptBuilder
	limit         int
}

func NewVectorRetriever(embedder Embedder, store QdrantService) ContextRetriever {
	return &vectorRetriever{
		embedder:      embedder,
		store:         store,
		promptBuilder: NewPromptBuilder(),
		limit:         3,
	}
}

// Retrieve implements ContextRetriever.
func (r *vectorRetriever) Retrieve(ctx context.Context, req models.AnalysisRequest) (string, error) {
	var all []SearchResult
	for _, docType := range []string{DocTypeProcurementPolicy, DocTypeEvaluationRubric} {
		query := r.promptBuilder.BuildRetrievalQuery(docType, req)

		embedding, err := r.embedder.GenerateEmbedding(ctx, query)
		if err != nil {
			return "", fmt.Errorf("failed to generate query embedding: %w", err)
		}

		results, err := r.store.SearchSimilar(ctx, embedding, docType, r.limit)
		if err != nil {
			log.Printf("⚠️  Failed to search for %s: %v\n", docType, err)
			continue
		}
		all = append(all, results...)
	}

	return FormatRAGContext(all), nil
}
