package embedding

import (
	"context"
	"errors"
	"fmt"

	"askmira/internal/config"
)

// ErrEmbeddingService 表示嵌入服务调用失败。管道层捕获该错误以跳过单个片段。
var ErrEmbeddingService = errors.New("embedding service error")

// Model 定义了所有 embedding 模型需要实现的接口。
type Model interface {
	// Embed 为单个文本生成嵌入向量。
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch 为一批文本生成嵌入向量，返回顺序与输入一致。
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// ModelType 是一个枚举类型，用于表示不同的模型厂商。
type ModelType string

const (
	OpenAI ModelType = "openai" // OpenAI 模型类型。
	Ollama ModelType = "ollama" // Ollama 模型类型。
)

// NewModel 根据配置创建对应厂商的 Embedding 模型客户端。
//
// 参数:
//
//	cfg: 嵌入模型配置，包含厂商、模型名称等信息。
//
// 返回值:
//
//	Model: 新创建的 Embedding 模型客户端。
//	error: 如果厂商不受支持或创建失败，则返回错误。
func NewModel(cfg *config.EmbeddingConfig) (Model, error) {
	switch ModelType(cfg.Provider) {
	case OpenAI:
		return NewOpenAIModel(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	case Ollama:
		return NewOllamaModel(cfg.Ollama.Model, cfg.Ollama.BaseURL)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}
