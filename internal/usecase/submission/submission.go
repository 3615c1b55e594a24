package submission

import (
	"context"
	"fmt"
	"strings"
	"time"

	"agent-feasibility/internal/application/port/input"
	"agent-feasibility/internal/application/port/output"
	"agent-feasibility/internal/domain/entity"

	"github.com/google/uuid"
)

const (
	DefaultUserID    = "user_demo"
	DefaultListLimit = 10
	MaxListLimit     = 100
)

type Config struct {
	DefaultModelID string
	UserID         string
}

func DefaultConfig() Config {
	return Config{
		DefaultModelID: "gpt-5",
		UserID:         DefaultUserID,
	}
}

type Service struct {
	repo   output.EvaluationRepository
	runner input.EvaluationRunner
	logger output.LoggerPort
	cfg    Config
	newID  func() string
	now    func() time.Time
}

var _ input.EvaluationService = (*Service)(nil)

func NewService(
	repo output.EvaluationRepository,
	runner input.EvaluationRunner,
	logger output.LoggerPort,
	cfg Config,
) *Service {
	if cfg.DefaultModelID == "" {
		cfg.DefaultModelID = DefaultConfig().DefaultModelID
	}
	if cfg.UserID == "" {
		cfg.UserID = DefaultUserID
	}
	return &Service{
		repo:   repo,
		runner: runner,
		logger: logger,
		cfg:    cfg,
		newID:  newEvaluationID,
		now:    time.Now,
	}
}

func newEvaluationID() string {
	return "eval_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// Normalize trims the submission, drops blank list entries and fills in the
// default model.
func Normalize(in entity.EvaluationInput, defaultModel string) entity.EvaluationInput {
	out := entity.EvaluationInput{
		ProjectName: strings.TrimSpace(in.ProjectName),
		Description: strings.TrimSpace(in.Description),
		TargetUsers: strings.TrimSpace(in.TargetUsers),
		Features:    compact(in.Features),
		Constraints: compact(in.Constraints),
		ModelID:     strings.TrimSpace(in.ModelID),
	}
	if out.ModelID == "" {
		out.ModelID = defaultModel
	}
	return out
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func Validate(in entity.EvaluationInput) error {
	if in.ProjectName == "" {
		return &entity.ValidationError{Field: "projectName", Reason: "is required"}
	}
	if in.Description == "" {
		return &entity.ValidationError{Field: "description", Reason: "is required"}
	}
	return nil
}

func (s *Service) Submit(ctx context.Context, in entity.EvaluationInput) (*input.SubmitResult, error) {
	in = Normalize(in, s.cfg.DefaultModelID)
	if err := Validate(in); err != nil {
		return nil, err
	}

	e := &entity.Evaluation{
		ID:          s.newID(),
		UserID:      s.cfg.UserID,
		ProjectName: in.ProjectName,
		Description: in.Description,
		TargetUsers: in.TargetUsers,
		Features:    in.Features,
		Constraints: in.Constraints,
		ModelID:     in.ModelID,
		Status:      entity.StatusProcessing,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create evaluation: %w", err)
	}

	log := s.logger.WithFields(map[string]any{
		"evaluation_id": e.ID,
		"model_id":      e.ModelID,
	})
	log.Info("Evaluation started", "project", e.ProjectName)

	result := s.runner.Run(ctx, in)

	if err := s.persistResult(ctx, e.ID, result); err != nil {
		log.Error("Failed to persist evaluation", "error", err)
		// The request context may already be gone; the status update must
		// still land.
		if markErr := s.repo.MarkFailed(context.WithoutCancel(ctx), e.ID); markErr != nil {
			log.Warn("Failed to mark evaluation as failed", "error", markErr)
		}
		return nil, err
	}

	completed := s.now().UTC()
	total := result.TotalScore
	metrics := result.Metrics
	e.Status = entity.StatusCompleted
	e.TotalScore = &total
	e.CompletedAt = &completed
	e.Metrics = &metrics

	log.Info("Evaluation stored", "total_score", total, "source", result.Source)
	return &input.SubmitResult{Evaluation: e, Result: result}, nil
}

func (s *Service) persistResult(ctx context.Context, id string, result entity.EvaluationResult) error {
	if err := s.repo.SaveMetrics(ctx, id, result.Metrics); err != nil {
		return fmt.Errorf("save metrics: %w", err)
	}
	if err := s.repo.Complete(ctx, id, result.TotalScore); err != nil {
		return fmt.Errorf("complete evaluation: %w", err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*entity.Evaluation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, &entity.ValidationError{Field: "id", Reason: "is required"}
	}
	return s.repo.Get(ctx, id)
}

// List returns the newest evaluations. Non-positive limits select the
// default; larger ones are capped.
func (s *Service) List(ctx context.Context, limit int) ([]entity.Evaluation, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	return s.repo.ListRecent(ctx, limit)
}
