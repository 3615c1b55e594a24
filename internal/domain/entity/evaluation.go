package entity

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidInput = errors.New("invalid evaluation input")

// ValidationError reports which submitted field was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

type EvaluationStatus string

const (
	StatusPending    EvaluationStatus = "pending"
	StatusProcessing EvaluationStatus = "processing"
	StatusCompleted  EvaluationStatus = "completed"
	StatusFailed     EvaluationStatus = "failed"
)

// EvaluationInput is one user submission describing a proposed agent project.
type EvaluationInput struct {
	ProjectName string   `json:"projectName"`
	Description string   `json:"description"`
	TargetUsers string   `json:"targetUsers,omitempty"`
	Features    []string `json:"features"`
	Constraints []string `json:"constraints"`
	ModelID     string   `json:"modelId"`
}

// EvaluationMetrics holds the five sub-scores, the matrix placement and the
// textual findings. Every numeric field is in [0,100].
type EvaluationMetrics struct {
	ClarityScore     int      `json:"clarityScore"`
	CapabilityScore  int      `json:"capabilityScore"`
	ObjectivityScore int      `json:"objectivityScore"`
	DataScore        int      `json:"dataScore"`
	ToleranceScore   int      `json:"toleranceScore"`
	MatrixX          int      `json:"matrixX"`
	MatrixY          int      `json:"matrixY"`
	Zone             Zone     `json:"zone"`
	Suggestions      []string `json:"suggestions"`
	Risks            []string `json:"risks"`
	Reasoning        string   `json:"reasoning"`
}

type MetricsSource string

const (
	SourceModel    MetricsSource = "model"
	SourceFallback MetricsSource = "fallback"
)

type EvaluationResult struct {
	Metrics    EvaluationMetrics `json:"metrics"`
	TotalScore int               `json:"totalScore"`
	Source     MetricsSource     `json:"source"`
}

// RawResponse is the decoded JSON object returned by the upstream model.
// Nothing in it is trusted until it passes the metrics parser.
type RawResponse map[string]any

// Evaluation is a persisted submission together with its outcome.
type Evaluation struct {
	ID          string             `json:"id"`
	UserID      string             `json:"user_id"`
	ProjectName string             `json:"project_name"`
	Description string             `json:"description"`
	TargetUsers string             `json:"target_users,omitempty"`
	Features    []string           `json:"features"`
	Constraints []string           `json:"constraints"`
	ModelID     string             `json:"model_id"`
	Status      EvaluationStatus   `json:"status"`
	TotalScore  *int               `json:"total_score,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	CompletedAt *time.Time         `json:"completed_at,omitempty"`
	Metrics     *EvaluationMetrics `json:"metrics"`
}

func (e *Evaluation) Input() EvaluationInput {
	return EvaluationInput{
		ProjectName: e.ProjectName,
		Description: e.Description,
		TargetUsers: e.TargetUsers,
		Features:    e.Features,
		Constraints: e.Constraints,
		ModelID:     e.ModelID,
	}
}
