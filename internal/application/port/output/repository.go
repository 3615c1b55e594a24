package output

import (
	"context"
	"errors"

	"agent-feasibility/internal/domain/entity"
)

var ErrEvaluationNotFound = errors.New("evaluation not found")

type EvaluationRepository interface {
	Create(ctx context.Context, e *entity.Evaluation) error
	SaveMetrics(ctx context.Context, evaluationID string, m entity.EvaluationMetrics) error
	Complete(ctx context.Context, evaluationID string, totalScore int) error
	MarkFailed(ctx context.Context, evaluationID string) error

	Get(ctx context.Context, id string) (*entity.Evaluation, error)
	ListRecent(ctx context.Context, limit int) ([]entity.Evaluation, error)

	// Ping checks connectivity and returns the number of stored evaluations.
	Ping(ctx context.Context) (int, error)
}
