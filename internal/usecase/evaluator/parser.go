package evaluator

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"agent-feasibility/internal/domain/entity"
)

var ErrParseFailure = errors.New("unusable model response")

const (
	minScore = 0
	maxScore = 100
)

var requiredFields = []string{
	"clarityScore",
	"capabilityScore",
	"objectivityScore",
	"dataScore",
	"toleranceScore",
	"matrixX",
	"matrixY",
}

// ParseMetrics turns an untrusted model response into metrics. All seven
// numeric fields must be present; values outside [0,100] are clamped.
// A zone that is missing or unknown is derived from the matrix position.
func ParseMetrics(raw entity.RawResponse) (entity.EvaluationMetrics, error) {
	if len(raw) == 0 {
		return entity.EvaluationMetrics{}, fmt.Errorf("%w: empty response", ErrParseFailure)
	}

	scores := make(map[string]int, len(requiredFields))
	var missing []string
	for _, key := range requiredFields {
		v, ok := numberField(raw, key)
		if !ok {
			missing = append(missing, key)
			continue
		}
		scores[key] = ClampScore(v)
	}
	if len(missing) > 0 {
		return entity.EvaluationMetrics{}, fmt.Errorf("%w: missing or non-numeric %s", ErrParseFailure, strings.Join(missing, ", "))
	}

	m := entity.EvaluationMetrics{
		ClarityScore:     scores["clarityScore"],
		CapabilityScore:  scores["capabilityScore"],
		ObjectivityScore: scores["objectivityScore"],
		DataScore:        scores["dataScore"],
		ToleranceScore:   scores["toleranceScore"],
		MatrixX:          scores["matrixX"],
		MatrixY:          scores["matrixY"],
		Suggestions:      stringList(raw["suggestions"]),
		Risks:            stringList(raw["risks"]),
	}
	m.Zone = zoneField(raw, m.MatrixX, m.MatrixY)
	if s, ok := raw["reasoning"].(string); ok {
		m.Reasoning = strings.TrimSpace(s)
	}

	return m, nil
}

// ClampScore rounds v to the nearest integer and bounds it to [0,100].
func ClampScore(v float64) int {
	switch {
	case math.IsNaN(v):
		return minScore
	case v <= minScore:
		return minScore
	case v >= maxScore:
		return maxScore
	}
	return int(math.Round(v))
}

func clampInt(v int) int {
	return ClampScore(float64(v))
}

func numberField(raw entity.RawResponse, key string) (float64, bool) {
	switch v := raw[key].(type) {
	case float64:
		return v, !math.IsInf(v, 0) && !math.IsNaN(v)
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func zoneField(raw entity.RawResponse, x, y int) entity.Zone {
	if s, ok := raw["zone"].(string); ok {
		z := entity.Zone(strings.ToLower(strings.TrimSpace(s)))
		if z.Valid() {
			return z
		}
	}
	return entity.ClassifyZone(x, y)
}

func stringList(v any) []string {
	out := []string{}
	switch items := v.(type) {
	case []any:
		for _, item := range items {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	case []string:
		for _, s := range items {
			if strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	case string:
		if strings.TrimSpace(items) != "" {
			out = append(out, strings.TrimSpace(items))
		}
	}
	return out
}
