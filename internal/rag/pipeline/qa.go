package pipeline

import (
	"context"
	"fmt"

	"askmira/internal/rag/interfaces"
	"askmira/internal/rag/schema"
	"askmira/pkg/logger"
)

// systemPrompt frames the assistant as a credential-evaluation expert that
// answers strictly from the provided context.
const systemPrompt = `You are AskMira, an expert assistant on global education systems, credential evaluation, and international academic regulations. Answer the user's question using ONLY the provided context. If the context does not contain enough information to answer the question, say so clearly. When you use information from the context, mention which source it came from.`

// QAPipeline generates an answer for a query from retrieved context chunks.
type QAPipeline struct {
	llm interfaces.ChatModel
	log *logger.Logger
}

// NewQAPipeline creates a new QAPipeline.
func NewQAPipeline(llm interfaces.ChatModel, log *logger.Logger) *QAPipeline {
	return &QAPipeline{llm: llm, log: log}
}

// Answer builds the prompt from the matches and asks the LLM. Retrieving
// nothing is not an error; the model is told the context is empty and will
// say it cannot answer.
func (p *QAPipeline) Answer(ctx context.Context, query string, matches []schema.QueryMatch) (string, error) {
	prompt := p.buildPrompt(query, matches)

	p.log.Info(fmt.Sprintf("Generating answer from %d context chunks", len(matches)))
	answer, err := p.llm.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		p.log.Error(fmt.Sprintf("LLM failed to generate answer: %v", err))
		return "", fmt.Errorf("generate answer: %w", err)
	}

	return answer, nil
}

func (p *QAPipeline) buildPrompt(query string, matches []schema.QueryMatch) string {
	return fmt.Sprintf("Context:\n%s\n\nQuestion: %s", FormatContext(matches), query)
}
