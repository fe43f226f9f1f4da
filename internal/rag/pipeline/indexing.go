package pipeline

import (
	"context"
	"fmt"

	"askmira/internal/rag/interfaces"
	"askmira/internal/rag/schema"
	"askmira/pkg/logger"
)

// IndexingPipeline turns one document into indexed vectors: split, embed,
// attach metadata, and upsert in batches.
type IndexingPipeline struct {
	splitter    interfaces.Splitter
	embedder    interfaces.EmbeddingModel
	vectorStore interfaces.VectorStore
	batchSize   int
	log         *logger.Logger
}

// NewIndexingPipeline creates a new IndexingPipeline. batchSize controls how
// many entries are upserted per call to the vector store.
func NewIndexingPipeline(
	splitter interfaces.Splitter,
	embedder interfaces.EmbeddingModel,
	vectorStore interfaces.VectorStore,
	batchSize int,
	log *logger.Logger,
) *IndexingPipeline {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &IndexingPipeline{
		splitter:    splitter,
		embedder:    embedder,
		vectorStore: vectorStore,
		batchSize:   batchSize,
		log:         log,
	}
}

// IndexDocument indexes the text of one object and returns the number of
// vectors upserted. A chunk whose embedding fails is logged and skipped; a
// batch whose upsert fails is logged and dropped while later batches still
// proceed. Only a failure to split returns an error.
func (p *IndexingPipeline) IndexDocument(ctx context.Context, key, text string) (int, error) {
	log := p.log.WithField("source", key)

	// 1. Split the document into chunks.
	chunks := p.splitter.Split(text)
	if len(chunks) == 0 {
		log.Info("Document produced no chunks, nothing to index")
		return 0, nil
	}
	log.Info(fmt.Sprintf("Split document into %d chunks", len(chunks)))

	docMeta := deriveMetadata(key)

	// 2. Embed each chunk and collect index entries.
	var entries []schema.IndexEntry
	upserted := 0
	for i, chunk := range chunks {
		vector, err := p.embedder.Embed(ctx, chunk)
		if err != nil {
			log.Warn(fmt.Sprintf("Skipping chunk %d: embedding failed: %v", i, err))
			continue
		}

		metadata := make(map[string]interface{}, len(docMeta)+3)
		for k, v := range docMeta {
			metadata[k] = v
		}
		metadata[schema.MetadataKeyChunkIndex] = i
		metadata[schema.MetadataKeyTotalChunks] = len(chunks)
		metadata[schema.MetadataKeyText] = storedText(chunk)

		entries = append(entries, schema.IndexEntry{
			ID:       chunkID(key, i),
			Vector:   vector,
			Metadata: metadata,
		})

		// 3. Flush a full batch.
		if len(entries) >= p.batchSize {
			upserted += p.flush(ctx, log, entries)
			entries = nil
		}
	}

	// 4. Flush the remainder.
	if len(entries) > 0 {
		upserted += p.flush(ctx, log, entries)
	}

	log.Info(fmt.Sprintf("Indexed %d of %d chunks", upserted, len(chunks)))
	return upserted, nil
}

// flush upserts one batch and returns how many entries made it in. A failed
// batch is dropped, not retried.
func (p *IndexingPipeline) flush(ctx context.Context, log *logger.Logger, entries []schema.IndexEntry) int {
	if err := p.vectorStore.Upsert(ctx, entries); err != nil {
		log.Error(fmt.Sprintf("Dropping batch of %d entries: upsert failed: %v", len(entries), err))
		return 0
	}
	return len(entries)
}
