package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"askmira/internal/rag/interfaces"
	"askmira/internal/rag/schema"
	"askmira/pkg/logger"
)

// RetrievalPipeline embeds a query and fetches its nearest chunks from the
// vector store.
type RetrievalPipeline struct {
	embedder    interfaces.EmbeddingModel
	vectorStore interfaces.VectorStore
	log         *logger.Logger
}

// NewRetrievalPipeline creates a new RetrievalPipeline.
func NewRetrievalPipeline(
	embedder interfaces.EmbeddingModel,
	vectorStore interfaces.VectorStore,
	log *logger.Logger,
) *RetrievalPipeline {
	return &RetrievalPipeline{
		embedder:    embedder,
		vectorStore: vectorStore,
		log:         log,
	}
}

// Retrieve returns up to topK matches for the query, ordered by descending
// similarity. No similarity threshold is applied; when the index holds fewer
// than topK vectors, all of them are returned.
func (p *RetrievalPipeline) Retrieve(ctx context.Context, query string, topK int) ([]schema.QueryMatch, error) {
	vector, err := p.embedder.Embed(ctx, query)
	if err != nil {
		p.log.Error(fmt.Sprintf("Failed to embed query: %v", err))
		return nil, fmt.Errorf("embed query: %w", err)
	}

	matches, err := p.vectorStore.Search(ctx, vector, topK)
	if err != nil {
		p.log.Error(fmt.Sprintf("Failed to query vector store: %v", err))
		return nil, fmt.Errorf("query vector store: %w", err)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}

	p.log.Info(fmt.Sprintf("Retrieved %d chunks for query", len(matches)))
	return matches, nil
}

// FormatContext renders matches as the context block handed to the LLM: each
// chunk prefixed with its source key.
func FormatContext(matches []schema.QueryMatch) string {
	var sb strings.Builder
	for _, m := range matches {
		source, _ := m.Metadata[schema.MetadataKeySource].(string)
		text, _ := m.Metadata[schema.MetadataKeyText].(string)
		sb.WriteString(fmt.Sprintf("[Source: %s]\n%s\n", source, text))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
