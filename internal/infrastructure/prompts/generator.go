package prompts

import (
	"bytes"
	"strings"
	"text/template"
)

type Dimension struct {
	Key         string
	Name        string
	Description string
}

type EvaluationPromptData struct {
	ProjectName string
	Description string
	TargetUsers string
	Features    string
	Constraints string
	ModelID     string
	Dimensions  []Dimension
	Zones       []string
}

var funcs = template.FuncMap{
	"inc":  func(i int) int { return i + 1 },
	"join": strings.Join,
}

func GenerateEvaluationPrompt(baseTemplate string, data EvaluationPromptData) (string, error) {
	tmpl, err := template.New("evaluation").Funcs(funcs).Option("missingkey=error").Parse(baseTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
