package output

import (
	"context"

	"agent-feasibility/internal/domain/entity"
)

type LLMPort interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

type ChatRequest struct {
	Messages    []entity.Message
	Temperature float32
	MaxTokens   int
	// JSONMode asks the provider to constrain the reply to a single JSON object.
	JSONMode bool
}

type ChatResponse struct {
	Message entity.Message
}
