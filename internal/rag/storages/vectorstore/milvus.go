package vectorstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"askmira/internal/database/milvus"
	"askmira/internal/rag/interfaces"
	"askmira/internal/rag/schema"
	"askmira/pkg/logger"
)

const (
	// Column names of the chunk collection.
	FieldID           = "id"
	FieldEmbedding    = "embedding"
	FieldSource       = "source"
	FieldChunkIndex   = "chunk_index"
	FieldTotalChunks  = "total_chunks"
	FieldText         = "text"
	FieldRegion       = "region"
	FieldCountry      = "country"
	FieldDocumentType = "document_type"
	FieldCategory     = "category"
)

// ErrCollectionMissing is returned when the configured collection does not
// exist and the caller did not ask for it to be created.
var ErrCollectionMissing = errors.New("vectorstore: collection does not exist")

// MilvusStore implements VectorStore on a Milvus collection keyed by chunk id.
// Vectors are stored unit-length, so the inner-product metric used here ranks
// exactly like cosine similarity.
type MilvusStore struct {
	log        *logger.Logger
	client     client.Client
	collection string
	dim        int
}

// NewMilvusStore creates a new MilvusStore adapter over the shared Milvus
// client. dim is the dimension every stored and queried vector must have.
func NewMilvusStore(milvusClient *milvus.MilvusClient, collection string, dim int, log *logger.Logger) (*MilvusStore, error) {
	if milvusClient == nil || milvusClient.Client == nil {
		return nil, fmt.Errorf("milvus client is not initialized")
	}
	return &MilvusStore{
		log:        log,
		client:     milvusClient.Client,
		collection: collection,
		dim:        dim,
	}, nil
}

// EnsureCollection 确保集合存在并已加载。集合不存在时，createIfMissing 为
// true 则按 chunk schema 创建，否则返回 ErrCollectionMissing。
func (s *MilvusStore) EnsureCollection(ctx context.Context, createIfMissing bool) error {
	exists, err := s.client.HasCollection(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("check collection: %w", err)
	}

	if !exists {
		if !createIfMissing {
			return fmt.Errorf("%w: %s", ErrCollectionMissing, s.collection)
		}

		collSchema := entity.NewSchema().
			WithName(s.collection).
			WithDescription("document chunks with embeddings").
			WithField(entity.NewField().WithName(FieldID).WithDataType(entity.FieldTypeVarChar).WithMaxLength(512).WithIsPrimaryKey(true)).
			WithField(entity.NewField().WithName(FieldEmbedding).WithDataType(entity.FieldTypeFloatVector).WithDim(int64(s.dim))).
			WithField(entity.NewField().WithName(FieldSource).WithDataType(entity.FieldTypeVarChar).WithMaxLength(512)).
			WithField(entity.NewField().WithName(FieldChunkIndex).WithDataType(entity.FieldTypeInt64)).
			WithField(entity.NewField().WithName(FieldTotalChunks).WithDataType(entity.FieldTypeInt64)).
			WithField(entity.NewField().WithName(FieldText).WithDataType(entity.FieldTypeVarChar).WithMaxLength(4096)).
			WithField(entity.NewField().WithName(FieldRegion).WithDataType(entity.FieldTypeVarChar).WithMaxLength(128)).
			WithField(entity.NewField().WithName(FieldCountry).WithDataType(entity.FieldTypeVarChar).WithMaxLength(128)).
			WithField(entity.NewField().WithName(FieldDocumentType).WithDataType(entity.FieldTypeVarChar).WithMaxLength(64)).
			WithField(entity.NewField().WithName(FieldCategory).WithDataType(entity.FieldTypeVarChar).WithMaxLength(128))

		if err := s.client.CreateCollection(ctx, collSchema, entity.DefaultShardNumber); err != nil {
			return fmt.Errorf("create collection: %w", err)
		}

		idx, err := entity.NewIndexHNSW(entity.IP, 16, 200)
		if err != nil {
			return fmt.Errorf("build index: %w", err)
		}
		if err := s.client.CreateIndex(ctx, s.collection, FieldEmbedding, idx, false); err != nil {
			return fmt.Errorf("create index on %s: %w", FieldEmbedding, err)
		}
		s.log.Info(fmt.Sprintf("Created Milvus collection '%s' with dim %d", s.collection, s.dim))
	}

	if err := s.client.LoadCollection(ctx, s.collection, false); err != nil {
		return fmt.Errorf("load collection '%s': %w", s.collection, err)
	}
	return nil
}

// Upsert writes entries keyed by their chunk id. Existing ids are replaced.
func (s *MilvusStore) Upsert(ctx context.Context, entries []schema.IndexEntry) error {
	if len(entries) == 0 {
		return nil
	}

	n := len(entries)
	ids := make([]string, n)
	vectors := make([][]float32, n)
	sources := make([]string, n)
	chunkIdx := make([]int64, n)
	totals := make([]int64, n)
	texts := make([]string, n)
	regions := make([]string, n)
	countries := make([]string, n)
	docTypes := make([]string, n)
	categories := make([]string, n)

	for i, e := range entries {
		if len(e.Vector) != s.dim {
			return fmt.Errorf("entry %s has dimension %d, collection expects %d", e.ID, len(e.Vector), s.dim)
		}
		ids[i] = e.ID
		vectors[i] = e.Vector
		sources[i] = metaString(e.Metadata, schema.MetadataKeySource)
		chunkIdx[i] = metaInt(e.Metadata, schema.MetadataKeyChunkIndex)
		totals[i] = metaInt(e.Metadata, schema.MetadataKeyTotalChunks)
		texts[i] = metaString(e.Metadata, schema.MetadataKeyText)
		regions[i] = metaString(e.Metadata, schema.MetadataKeyRegion)
		countries[i] = metaString(e.Metadata, schema.MetadataKeyCountry)
		docTypes[i] = metaString(e.Metadata, schema.MetadataKeyDocumentType)
		categories[i] = metaString(e.Metadata, schema.MetadataKeyCategory)
	}

	_, err := s.client.Upsert(ctx, s.collection, "",
		entity.NewColumnVarChar(FieldID, ids),
		entity.NewColumnFloatVector(FieldEmbedding, s.dim, vectors),
		entity.NewColumnVarChar(FieldSource, sources),
		entity.NewColumnInt64(FieldChunkIndex, chunkIdx),
		entity.NewColumnInt64(FieldTotalChunks, totals),
		entity.NewColumnVarChar(FieldText, texts),
		entity.NewColumnVarChar(FieldRegion, regions),
		entity.NewColumnVarChar(FieldCountry, countries),
		entity.NewColumnVarChar(FieldDocumentType, docTypes),
		entity.NewColumnVarChar(FieldCategory, categories),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert into Milvus: %w", err)
	}
	return nil
}

// Search returns the topK nearest chunks for the query vector, best first.
func (s *MilvusStore) Search(ctx context.Context, vector []float32, topK int) ([]schema.QueryMatch, error) {
	if len(vector) != s.dim {
		return nil, fmt.Errorf("query vector has dimension %d, collection expects %d", len(vector), s.dim)
	}

	searchParams, err := entity.NewIndexHNSWSearchParam(64)
	if err != nil {
		return nil, fmt.Errorf("build search params: %w", err)
	}

	outputFields := []string{
		FieldID, FieldSource, FieldChunkIndex, FieldTotalChunks, FieldText,
		FieldRegion, FieldCountry, FieldDocumentType, FieldCategory,
	}

	results, err := s.client.Search(
		ctx, s.collection, nil, "", outputFields,
		[]entity.Vector{entity.FloatVector(vector)},
		FieldEmbedding, entity.IP, topK, searchParams,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search in Milvus: %w", err)
	}

	var matches []schema.QueryMatch
	for _, res := range results {
		cols := make(map[string]entity.Column, len(res.Fields))
		for _, field := range res.Fields {
			cols[field.Name()] = field
		}

		idCol, ok := cols[FieldID].(*entity.ColumnVarChar)
		if !ok {
			s.log.Warn("Search result is missing the id column, skipping")
			continue
		}

		for i := 0; i < res.ResultCount; i++ {
			md := map[string]interface{}{
				schema.MetadataKeySource:      columnString(cols[FieldSource], i),
				schema.MetadataKeyChunkIndex:  columnInt(cols[FieldChunkIndex], i),
				schema.MetadataKeyTotalChunks: columnInt(cols[FieldTotalChunks], i),
				schema.MetadataKeyText:        columnString(cols[FieldText], i),
			}
			for key, col := range map[string]entity.Column{
				schema.MetadataKeyRegion:       cols[FieldRegion],
				schema.MetadataKeyCountry:      cols[FieldCountry],
				schema.MetadataKeyDocumentType: cols[FieldDocumentType],
				schema.MetadataKeyCategory:     cols[FieldCategory],
			} {
				if v := columnString(col, i); v != "" {
					md[key] = v
				}
			}

			matches = append(matches, schema.QueryMatch{
				ID:       idCol.Data()[i],
				Score:    res.Scores[i],
				Metadata: md,
			})
		}
	}

	return matches, nil
}

func metaString(md map[string]interface{}, key string) string {
	v, _ := md[key].(string)
	return v
}

func metaInt(md map[string]interface{}, key string) int64 {
	switch v := md[key].(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}

func columnString(col entity.Column, i int) string {
	c, ok := col.(*entity.ColumnVarChar)
	if !ok || i >= c.Len() {
		return ""
	}
	return c.Data()[i]
}

func columnInt(col entity.Column, i int) int64 {
	c, ok := col.(*entity.ColumnInt64)
	if !ok || i >= c.Len() {
		return 0
	}
	return c.Data()[i]
}

var _ interfaces.VectorStore = (*MilvusStore)(nil)
