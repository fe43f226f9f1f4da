package interfaces

import (
	"context"

	"askmira/internal/rag/schema"
)

// Splitter 将一整篇文本切分为可嵌入的片段。
type Splitter interface {
	Split(text string) []string
}

// EmbeddingModel 将文本映射为固定维度的向量。批量返回的向量顺序与输入一致。
type EmbeddingModel interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	// Dimension 返回该模型产出向量的维度。
	Dimension() int
}

// VectorStore 是向量库的写入与检索入口。
type VectorStore interface {
	Upsert(ctx context.Context, entries []schema.IndexEntry) error
	Search(ctx context.Context, vector []float32, topK int) ([]schema.QueryMatch, error)
}

// ChatModel 根据系统提示与用户输入生成一段回答。
type ChatModel interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
