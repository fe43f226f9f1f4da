package llms

import (
	"fmt"

	"askmira/internal/config"
	"askmira/internal/rag/interfaces"
)

// NewChatModel 根据配置创建对应厂商的 LLM 客户端。
func NewChatModel(cfg *config.LLMConfig) (interfaces.ChatModel, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.MaxTokens, cfg.Temperature)
	case "ollama":
		return NewOllama(cfg.Ollama.BaseURL, cfg.Ollama.Model, cfg.MaxTokens, cfg.Temperature)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
