package evaluator

import (
	"fmt"
	"strings"

	"agent-feasibility/internal/domain/entity"
	"agent-feasibility/internal/infrastructure/prompts"
)

const unspecified = "unspecified"

var dimensions = []prompts.Dimension{
	{Key: "clarityScore", Name: "Clarity", Description: "how clearly the project and its tasks are defined"},
	{Key: "capabilityScore", Name: "Capability", Description: "whether current AI technology can deliver the core functions"},
	{Key: "objectivityScore", Name: "Objectivity", Description: "how objectively and measurably success can be judged"},
	{Key: "dataScore", Name: "Data sufficiency", Description: "availability and quality of the data the agent needs"},
	{Key: "toleranceScore", Name: "Tolerance", Description: "how well the use case tolerates agent mistakes"},
}

// BuildPrompt renders the evaluation instruction for the model. It always
// returns a usable prompt.
func BuildPrompt(in entity.EvaluationInput) string {
	data := promptData(in)

	prompt, err := prompts.GenerateEvaluationPrompt(prompts.EvaluationPrompt, data)
	if err != nil {
		return plainPrompt(data)
	}
	return prompt
}

func promptData(in entity.EvaluationInput) prompts.EvaluationPromptData {
	zones := make([]string, 0, len(entity.Zones))
	for _, z := range entity.Zones {
		zones = append(zones, z.String())
	}

	return prompts.EvaluationPromptData{
		ProjectName: orUnspecified(in.ProjectName),
		Description: orUnspecified(in.Description),
		TargetUsers: orUnspecified(in.TargetUsers),
		Features:    joinOrUnspecified(in.Features),
		Constraints: joinOrUnspecified(in.Constraints),
		ModelID:     orUnspecified(in.ModelID),
		Dimensions:  dimensions,
		Zones:       zones,
	}
}

// plainPrompt is used only if the embedded template cannot be rendered.
func plainPrompt(d prompts.EvaluationPromptData) string {
	keys := make([]string, 0, len(d.Dimensions))
	for _, dim := range d.Dimensions {
		keys = append(keys, dim.Key)
	}

	return fmt.Sprintf(
		"Evaluate the feasibility of this AI agent project.\n"+
			"Project name: %s\nDescription: %s\nTarget users: %s\nKey features: %s\nConstraints: %s\nRequested model: %s\n"+
			"Score %s from 0 to 100, give matrixX (technical difficulty) and matrixY (business value) from 0 to 100, "+
			"a zone (one of %s), 3-5 suggestions, 2-3 risks and a reasoning paragraph. Reply with a single JSON object.",
		d.ProjectName, d.Description, d.TargetUsers, d.Features, d.Constraints, d.ModelID,
		strings.Join(keys, ", "), strings.Join(d.Zones, ", "),
	)
}

func orUnspecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return unspecified
	}
	return s
}

func joinOrUnspecified(items []string) string {
	if len(items) == 0 {
		return unspecified
	}
	return strings.Join(items, ", ")
}
