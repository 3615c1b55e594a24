package openaicompat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"agent-feasibility/internal/application/port/output"
	"agent-feasibility/internal/domain/entity"
	"agent-feasibility/internal/infrastructure/logger"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionBody(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "deepseek-chat",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	}
}

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *Adapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := DefaultConfig("test-key", "deepseek-chat")
	cfg.BaseURL = srv.URL + "/v1"
	cfg.Logger = logger.NewNop()
	return NewAdapter(cfg)
}

func TestChat_SendsRequestAndReturnsContent(t *testing.T) {
	var got openai.ChatCompletionRequest
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(completionBody(`{"clarityScore": 80}`))
	})

	resp, err := adapter.Chat(context.Background(), output.ChatRequest{
		Messages: []entity.Message{
			{Role: entity.RoleSystem, Content: "system"},
			{Role: entity.RoleUser, Content: "user"},
		},
		Temperature: 0.7,
		MaxTokens:   2000,
		JSONMode:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleAssistant, resp.Message.Role)
	assert.Equal(t, `{"clarityScore": 80}`, resp.Message.Content)

	assert.Equal(t, "deepseek-chat", got.Model)
	assert.Equal(t, 2000, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Content)
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, got.ResponseFormat.Type)
}

func TestChat_NonSuccessStatus(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "invalid api key", "type": "authentication_error"}}`))
	})

	_, err := adapter.Chat(context.Background(), output.ChatRequest{
		Messages: []entity.Message{{Role: entity.RoleUser, Content: "hi"}},
	})
	assert.Error(t, err)
}

func TestChat_NoChoices(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		body := completionBody("")
		body["choices"] = []any{}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(body)
	})

	_, err := adapter.Chat(context.Background(), output.ChatRequest{
		Messages: []entity.Message{{Role: entity.RoleUser, Content: "hi"}},
	})
	assert.ErrorIs(t, err, errNoChoices)
}

func TestConvertMessages(t *testing.T) {
	result := convertMessages([]entity.Message{
		{Role: entity.RoleSystem, Content: "Be precise"},
		{Role: entity.RoleUser, Content: "Hello"},
	})

	require.Len(t, result, 2)
	assert.Equal(t, "system", result[0].Role)
	assert.Equal(t, "Be precise", result[0].Content)
	assert.Equal(t, "user", result[1].Role)
}

func TestConvertResponseMessage(t *testing.T) {
	result := convertResponseMessage(openai.ChatCompletionMessage{
		Role:    "assistant",
		Content: "Hello, world!",
	})

	assert.Equal(t, entity.RoleAssistant, result.Role)
	assert.Equal(t, "Hello, world!", result.Content)
}
