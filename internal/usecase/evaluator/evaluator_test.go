package evaluator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"agent-feasibility/internal/application/port/output"
	"agent-feasibility/internal/domain/entity"
	"agent-feasibility/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCaller struct {
	raw     entity.RawResponse
	err     error
	panics  bool
	prompts []string
}

func (m *mockCaller) Call(ctx context.Context, prompt string) (entity.RawResponse, error) {
	m.prompts = append(m.prompts, prompt)
	if m.panics {
		panic("boom")
	}
	return m.raw, m.err
}

type blockingCaller struct{}

func (blockingCaller) Call(ctx context.Context, _ string) (entity.RawResponse, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func demoInput() entity.EvaluationInput {
	return entity.EvaluationInput{
		ProjectName: "Demo",
		Description: strings.Repeat("x", 10),
		Features:    []string{},
		Constraints: []string{},
		ModelID:     "gpt-5",
	}
}

func validRaw() entity.RawResponse {
	return entity.RawResponse{
		"clarityScore":     80.0,
		"capabilityScore":  75.0,
		"objectivityScore": 60.0,
		"dataScore":        55.0,
		"toleranceScore":   90.0,
		"matrixX":          70.0,
		"matrixY":          80.0,
		"zone":             "optimal",
		"suggestions":      []any{"narrow the scope"},
		"risks":            []any{"hallucinations"},
		"reasoning":        "Feasible.",
	}
}

func assertInRange(t *testing.T, r entity.EvaluationResult) {
	t.Helper()
	m := r.Metrics
	for name, v := range map[string]int{
		"clarity":     m.ClarityScore,
		"capability":  m.CapabilityScore,
		"objectivity": m.ObjectivityScore,
		"data":        m.DataScore,
		"tolerance":   m.ToleranceScore,
		"matrixX":     m.MatrixX,
		"matrixY":     m.MatrixY,
		"total":       r.TotalScore,
	} {
		assert.True(t, v >= 0 && v <= 100, "%s out of range: %d", name, v)
	}
	assert.True(t, m.Zone.Valid(), "zone %q", m.Zone)
}

func TestRun_ModelAnswer(t *testing.T) {
	caller := &mockCaller{raw: validRaw()}
	e := New(caller, logger.NewNop())

	result := e.Run(context.Background(), demoInput())

	assert.Equal(t, entity.SourceModel, result.Source)
	assert.Equal(t, 80, result.Metrics.ClarityScore)
	assert.Equal(t, 72, result.TotalScore)
	assert.Equal(t, []string{"narrow the scope"}, result.Metrics.Suggestions)
	require.Len(t, caller.prompts, 1)
	assert.Contains(t, caller.prompts[0], "Demo")
}

func TestRun_NilAnswerFallsBack(t *testing.T) {
	e := New(&mockCaller{}, logger.NewNop())

	result := e.Run(context.Background(), demoInput())

	assert.Equal(t, entity.SourceFallback, result.Source)
	assert.Equal(t, entity.ZoneOptimal, result.Metrics.Zone)
	assert.True(t, result.Metrics.ClarityScore >= 50 && result.Metrics.ClarityScore <= 59)
	assert.Equal(t, Aggregate(result.Metrics), result.TotalScore)
	assertInRange(t, result)
}

func TestRun_NilCallerFallsBack(t *testing.T) {
	e := New(nil, logger.NewNop())

	result := e.Run(context.Background(), demoInput())

	assert.Equal(t, entity.SourceFallback, result.Source)
	assert.Equal(t, entity.ZoneOptimal, result.Metrics.Zone)
}

func TestRun_CallerErrorFallsBack(t *testing.T) {
	e := New(&mockCaller{err: errors.New("503 service unavailable")}, logger.NewNop())

	result := e.Run(context.Background(), demoInput())

	assert.Equal(t, entity.SourceFallback, result.Source)
	assertInRange(t, result)
}

func TestRun_UnavailableSentinelFallsBack(t *testing.T) {
	e := New(&mockCaller{err: output.ErrModelUnavailable}, logger.NewNop())

	result := e.Run(context.Background(), demoInput())

	assert.Equal(t, entity.SourceFallback, result.Source)
}

func TestRun_CallerPanicFallsBack(t *testing.T) {
	e := New(&mockCaller{panics: true}, logger.NewNop())

	assert.NotPanics(t, func() {
		result := e.Run(context.Background(), demoInput())
		assert.Equal(t, entity.SourceFallback, result.Source)
	})
}

func TestRun_MissingCapabilityScoreFallsBack(t *testing.T) {
	raw := validRaw()
	delete(raw, "capabilityScore")
	raw["clarityScore"] = 3.0
	e := New(&mockCaller{raw: raw}, logger.NewNop(), WithEstimator(NewEstimator(WithJitter(jitterOf(fixedJitter{})))))

	result := e.Run(context.Background(), demoInput())

	assert.Equal(t, entity.SourceFallback, result.Source)
	assert.Equal(t, 50, result.Metrics.ClarityScore, "no field from the partial answer may leak through")
	assert.Equal(t, 75, result.Metrics.CapabilityScore)
	assert.Equal(t, entity.ZoneOptimal, result.Metrics.Zone)
}

func TestRun_TimeoutFallsBack(t *testing.T) {
	e := New(blockingCaller{}, logger.NewNop(), WithCallTimeout(20*time.Millisecond))

	start := time.Now()
	result := e.Run(context.Background(), demoInput())

	assert.Equal(t, entity.SourceFallback, result.Source)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestRun_CustomAggregator(t *testing.T) {
	agg, err := NewAggregator(Weights{Capability: 1})
	require.NoError(t, err)
	e := New(&mockCaller{raw: validRaw()}, logger.NewNop(), WithAggregator(agg))

	result := e.Run(context.Background(), demoInput())

	assert.Equal(t, 75, result.TotalScore)
}

func TestRun_DemoScenarioWithoutModel(t *testing.T) {
	e := New(&mockCaller{err: output.ErrModelUnavailable}, logger.NewNop())

	for i := 0; i < 100; i++ {
		result := e.Run(context.Background(), demoInput())

		assert.True(t, result.Metrics.ClarityScore >= 50 && result.Metrics.ClarityScore <= 59)
		assertInRange(t, result)
	}
}
