package langchain

import (
	"context"
	"errors"
	"testing"

	"agent-feasibility/internal/application/port/output"
	"agent-feasibility/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	messages []llms.MessageContent
	opts     llms.CallOptions
	resp     *llms.ContentResponse
	err      error
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	for _, opt := range options {
		opt(&f.opts)
	}
	return f.resp, f.err
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestChat_PassesOptionsAndReturnsContent(t *testing.T) {
	model := &fakeModel{resp: &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: `{"matrixX": 10}`}},
	}}
	adapter := &Adapter{llm: model}

	resp, err := adapter.Chat(context.Background(), output.ChatRequest{
		Messages: []entity.Message{
			{Role: entity.RoleSystem, Content: "system"},
			{Role: entity.RoleUser, Content: "user"},
		},
		Temperature: 0.5,
		MaxTokens:   2000,
		JSONMode:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleAssistant, resp.Message.Role)
	assert.Equal(t, `{"matrixX": 10}`, resp.Message.Content)

	require.Len(t, model.messages, 2)
	assert.Equal(t, llms.ChatMessageTypeSystem, model.messages[0].Role)
	assert.Equal(t, llms.ChatMessageTypeHuman, model.messages[1].Role)
	assert.Equal(t, 0.5, model.opts.Temperature)
	assert.Equal(t, 2000, model.opts.MaxTokens)
	assert.True(t, model.opts.JSONMode)
}

func TestChat_Error(t *testing.T) {
	adapter := &Adapter{llm: &fakeModel{err: errors.New("boom")}}

	_, err := adapter.Chat(context.Background(), output.ChatRequest{})
	assert.Error(t, err)
}

func TestChat_NoChoices(t *testing.T) {
	adapter := &Adapter{llm: &fakeModel{resp: &llms.ContentResponse{}}}

	_, err := adapter.Chat(context.Background(), output.ChatRequest{})
	assert.ErrorIs(t, err, errNoChoices)
}

func TestMessageType(t *testing.T) {
	assert.Equal(t, llms.ChatMessageTypeSystem, messageType(entity.RoleSystem))
	assert.Equal(t, llms.ChatMessageTypeAI, messageType(entity.RoleAssistant))
	assert.Equal(t, llms.ChatMessageTypeHuman, messageType(entity.RoleUser))
}

func TestNewAdapter(t *testing.T) {
	adapter, err := NewAdapter(Config{APIKey: "key", Model: "deepseek-chat", BaseURL: "http://localhost:1/v1"})
	require.NoError(t, err)
	assert.NotNil(t, adapter)
}
