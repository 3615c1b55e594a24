package prompts

import (
	"strings"
	"testing"
)

func sampleData() EvaluationPromptData {
	return EvaluationPromptData{
		ProjectName: "Support Copilot",
		Description: "Drafts replies to customer tickets",
		TargetUsers: "support agents",
		Features:    "drafting, triage",
		Constraints: "on-prem only",
		ModelID:     "gpt-5",
		Dimensions: []Dimension{
			{Key: "clarityScore", Name: "Clarity", Description: "how well the task is defined"},
			{Key: "capabilityScore", Name: "Capability", Description: "whether current AI can do it"},
		},
		Zones: []string{"optimal", "easy"},
	}
}

func TestGenerateEvaluationPrompt(t *testing.T) {
	result, err := GenerateEvaluationPrompt(EvaluationPrompt, sampleData())
	if err != nil {
		t.Fatalf("GenerateEvaluationPrompt failed: %v", err)
	}

	for _, want := range []string{
		"Project name: Support Copilot",
		"Description: Drafts replies to customer tickets",
		"Target users: support agents",
		"Key features: drafting, triage",
		"Constraints: on-prem only",
		"Requested model: gpt-5",
		"1. Clarity (clarityScore)",
		"2. Capability (capabilityScore)",
		"exactly one of: optimal, easy",
		`"clarityScore": <0-100>`,
		`"matrixX": <0-100>`,
		"single JSON object",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("prompt should contain %q", want)
		}
	}
}

func TestGenerateEvaluationPromptInvalidTemplate(t *testing.T) {
	_, err := GenerateEvaluationPrompt(`Test {{.InvalidField}}`, sampleData())
	if err == nil {
		t.Error("Expected error for unknown field, got nil")
	}
}

func TestGenerateEvaluationPromptParseError(t *testing.T) {
	_, err := GenerateEvaluationPrompt(`Test {{range}}`, sampleData())
	if err == nil {
		t.Error("Expected parse error, got nil")
	}
}

func TestSystemPromptRequestsJSON(t *testing.T) {
	if !strings.Contains(SystemPrompt, "JSON") {
		t.Error("system prompt should request JSON output")
	}
}
