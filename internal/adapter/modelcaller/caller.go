package modelcaller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"agent-feasibility/internal/application/port/output"
	"agent-feasibility/internal/domain/entity"
	"agent-feasibility/internal/infrastructure/prompts"
)

var _ output.ModelCaller = (*Caller)(nil)

var errNoJSON = errors.New("no JSON object found in response")

const maxLoggedReply = 500

type Config struct {
	HasCredential bool
	SystemPrompt  string
	Temperature   float32
	MaxTokens     int
}

func DefaultConfig(hasCredential bool) Config {
	return Config{
		HasCredential: hasCredential,
		SystemPrompt:  prompts.SystemPrompt,
		Temperature:   0.7,
		MaxTokens:     2000,
	}
}

// Caller asks an LLM for a feasibility evaluation and decodes the JSON it
// returns.
type Caller struct {
	llm    output.LLMPort
	cfg    Config
	logger output.LoggerPort
}

func New(llm output.LLMPort, logger output.LoggerPort, cfg Config) *Caller {
	return &Caller{
		llm:    llm,
		cfg:    cfg,
		logger: logger,
	}
}

func (c *Caller) Call(ctx context.Context, prompt string) (entity.RawResponse, error) {
	if !c.cfg.HasCredential || c.llm == nil {
		c.logger.Info("No model credential configured, skipping model call")
		return nil, output.ErrModelUnavailable
	}

	resp, err := c.llm.Chat(ctx, output.ChatRequest{
		Messages: []entity.Message{
			{Role: entity.RoleSystem, Content: c.cfg.SystemPrompt},
			{Role: entity.RoleUser, Content: prompt},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
		JSONMode:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("model chat: %w", err)
	}

	raw, err := DecodeResponse(resp.Message.Content)
	if err != nil {
		c.logger.Debug("Unparseable model reply", "content", truncate(resp.Message.Content, maxLoggedReply))
		return nil, err
	}
	return raw, nil
}

// DecodeResponse extracts the JSON object from a model reply, tolerating
// markdown fences and prose around it.
func DecodeResponse(content string) (entity.RawResponse, error) {
	s := cleanJSON(content)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return nil, errNoJSON
	}

	var raw entity.RawResponse
	if err := json.Unmarshal([]byte(s[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("decode model JSON: %w", err)
	}
	return raw, nil
}

func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
