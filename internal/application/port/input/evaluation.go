package input

import (
	"context"

	"agent-feasibility/internal/domain/entity"
)

// EvaluationRunner scores one input. It never fails: an unusable upstream
// answer degrades to the heuristic estimate.
type EvaluationRunner interface {
	Run(ctx context.Context, in entity.EvaluationInput) entity.EvaluationResult
}

type SubmitResult struct {
	Evaluation *entity.Evaluation
	Result     entity.EvaluationResult
}

type EvaluationService interface {
	Submit(ctx context.Context, in entity.EvaluationInput) (*SubmitResult, error)
	Get(ctx context.Context, id string) (*entity.Evaluation, error)
	List(ctx context.Context, limit int) ([]entity.Evaluation, error)
}
