package evaluator

import (
	"context"
	"fmt"
	"time"

	"agent-feasibility/internal/application/port/input"
	"agent-feasibility/internal/application/port/output"
	"agent-feasibility/internal/domain/entity"
)

var _ input.EvaluationRunner = (*Evaluator)(nil)

const defaultCallTimeout = 60 * time.Second

type Evaluator struct {
	caller     output.ModelCaller
	estimator  *Estimator
	aggregator *Aggregator
	logger     output.LoggerPort
	timeout    time.Duration
}

type Option func(*Evaluator)

func WithEstimator(est *Estimator) Option {
	return func(e *Evaluator) {
		e.estimator = est
	}
}

func WithAggregator(agg *Aggregator) Option {
	return func(e *Evaluator) {
		e.aggregator = agg
	}
}

// WithCallTimeout bounds a single model call. Zero disables the bound.
func WithCallTimeout(d time.Duration) Option {
	return func(e *Evaluator) {
		e.timeout = d
	}
}

func New(caller output.ModelCaller, logger output.LoggerPort, opts ...Option) *Evaluator {
	e := &Evaluator{
		caller:     caller,
		estimator:  NewEstimator(),
		aggregator: defaultAggregator,
		logger:     logger,
		timeout:    defaultCallTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run produces exactly one complete result per input. Upstream failures of
// any kind fall back to the heuristic estimate and are only logged.
func (e *Evaluator) Run(ctx context.Context, in entity.EvaluationInput) entity.EvaluationResult {
	start := time.Now()
	log := e.logger.WithField("project", in.ProjectName)

	prompt := BuildPrompt(in)
	metrics, source := e.metricsFor(ctx, log, in, prompt)
	total := e.aggregator.Aggregate(metrics)

	log.Info("Evaluation completed",
		"source", source,
		"total_score", total,
		"zone", metrics.Zone,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return entity.EvaluationResult{
		Metrics:    metrics,
		TotalScore: total,
		Source:     source,
	}
}

func (e *Evaluator) metricsFor(ctx context.Context, log output.LoggerPort, in entity.EvaluationInput, prompt string) (entity.EvaluationMetrics, entity.MetricsSource) {
	raw, err := e.call(ctx, prompt)
	if err != nil {
		log.Warn("Model call failed, using fallback estimate", "error", err)
		return e.estimator.Estimate(in), entity.SourceFallback
	}
	if raw == nil {
		log.Info("Model returned no answer, using fallback estimate")
		return e.estimator.Estimate(in), entity.SourceFallback
	}

	metrics, err := ParseMetrics(raw)
	if err != nil {
		log.Warn("Failed to parse model response, using fallback estimate", "error", err)
		return e.estimator.Estimate(in), entity.SourceFallback
	}
	return metrics, entity.SourceModel
}

func (e *Evaluator) call(ctx context.Context, prompt string) (raw entity.RawResponse, err error) {
	if e.caller == nil {
		return nil, output.ErrModelUnavailable
	}

	defer func() {
		if r := recover(); r != nil {
			raw, err = nil, fmt.Errorf("model caller panicked: %v", r)
		}
	}()

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	return e.caller.Call(ctx, prompt)
}
