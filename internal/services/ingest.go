package services

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
)

type ReferenceIngester struct {
	embedder Embedder
	store    QdrantService
	parser   PDFParserService
	chunker  TextChunker
}

func NewReferenceIngester(embedder Embedder, store QdrantService, parser PDFParserService, chunker TextChunker) *ReferenceIngester {
	return &ReferenceIngester{
		embedder: embedder,
		store:    store,
		parser:   parser,
		chunker:  chunker,
	}
}

// DocTypeForFile picks the reference doc type from the file name: names
// containing "rubric" are evaluation rubrics, everything else is policy.
func DocTypeForFile(path string) string {
	name := strings.ToLower(filepath.Base(path))
	if strings.Contains(name, "rubric") {
		return DocTypeEvaluationRubric
	}
	return DocTypeProcurementPolicy
}

// IngestFile replaces the stored chunks of one reference PDF and returns the
// number of chunks written.
func (ri *ReferenceIngester) IngestFile(ctx context.Context, path, docType string) (int, error) {
	content, err := ri.parser.ExtractText(path)
	if err != nil {
		return 0, fmt.Errorf("failed to extract text: %w", err)
	}
	log.Printf("   ✅ Extracted %d pages, %d characters", content.PageCount, len(content.Text))

	sourceID := filepath.Base(path)
	if err := ri.store.DeleteSource(ctx, sourceID); err != nil {
		return 0, err
	}

	chunks := ri.chunker.ChunkText(content.Text, DefaultChunkSize, DefaultChunkOverlap)
	log.Printf("   ✂️  Created %d chunks", len(chunks))

	stored := 0
	for i, chunk := range chunks {
		embedding, err := ri.embedder.GenerateEmbedding(ctx, chunk)
		if err != nil {
			log.Printf("   ❌ Failed to generate embedding for chunk %d: %v", i+1, err)
			continue
		}

		if err := ri.store.UpsertChunk(ctx, sourceID, docType, chunk, embedding); err != nil {
			log.Printf("   ❌ Failed to store chunk %d: %v", i+1, err)
			continue
		}
		stored++

		if (i+1)%5 == 0 || i == len(chunks)-1 {
			log.Printf("   📊 Progress: %d/%d chunks stored", i+1, len(chunks))
		}
	}

	if stored == 0 && len(chunks) > 0 {
		return 0, fmt.Errorf("no chunks stored for %s", sourceID)
	}
	return stored, nil
}
