package output

import (
	"context"
	"errors"

	"agent-feasibility/internal/domain/entity"
)

// ErrModelUnavailable is returned when no upstream answer can be obtained,
// e.g. because no credential is configured.
var ErrModelUnavailable = errors.New("model unavailable")

// ModelCaller asks the upstream model to evaluate a prompt. A nil response or
// any error means there is no usable answer.
type ModelCaller interface {
	Call(ctx context.Context, prompt string) (entity.RawResponse, error)
}
