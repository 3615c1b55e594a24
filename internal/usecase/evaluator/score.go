package evaluator

import (
	"errors"
	"fmt"
	"math"

	"agent-feasibility/internal/domain/entity"
)

var ErrInvalidWeights = errors.New("invalid scoring weights")

// weightScale expresses weights in basis points so the weighted sum is exact
// integer arithmetic.
const weightScale = 10000

type Weights struct {
	Clarity     float64 `yaml:"clarity"`
	Capability  float64 `yaml:"capability"`
	Objectivity float64 `yaml:"objectivity"`
	Data        float64 `yaml:"data"`
	Tolerance   float64 `yaml:"tolerance"`
}

func DefaultWeights() Weights {
	return Weights{
		Clarity:     0.20,
		Capability:  0.30,
		Objectivity: 0.15,
		Data:        0.20,
		Tolerance:   0.15,
	}
}

func (w Weights) named() []namedWeight {
	return []namedWeight{
		{"clarity", w.Clarity},
		{"capability", w.Capability},
		{"objectivity", w.Objectivity},
		{"data", w.Data},
		{"tolerance", w.Tolerance},
	}
}

type namedWeight struct {
	name  string
	value float64
}

// Validate requires each weight in [0,1] at basis-point precision and the
// weights to sum to exactly 1.
func (w Weights) Validate() error {
	total := 0
	for _, nw := range w.named() {
		if math.IsNaN(nw.value) || nw.value < 0 || nw.value > 1 {
			return fmt.Errorf("%w: %s weight %v is outside [0,1]", ErrInvalidWeights, nw.name, nw.value)
		}
		scaled := nw.value * weightScale
		if math.Abs(scaled-math.Round(scaled)) > 1e-6 {
			return fmt.Errorf("%w: %s weight %v is finer than 0.0001", ErrInvalidWeights, nw.name, nw.value)
		}
		total += int(math.Round(scaled))
	}
	if total != weightScale {
		return fmt.Errorf("%w: weights sum to %.4f, want 1.0000", ErrInvalidWeights, float64(total)/weightScale)
	}
	return nil
}

type Aggregator struct {
	basis [5]int
}

func NewAggregator(w Weights) (*Aggregator, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	a := &Aggregator{}
	for i, nw := range w.named() {
		a.basis[i] = int(math.Round(nw.value * weightScale))
	}
	return a, nil
}

var defaultAggregator = mustAggregator(DefaultWeights())

func mustAggregator(w Weights) *Aggregator {
	a, err := NewAggregator(w)
	if err != nil {
		panic(err)
	}
	return a
}

// Aggregate scores metrics with the default weights.
func Aggregate(m entity.EvaluationMetrics) int {
	return defaultAggregator.Aggregate(m)
}

// Aggregate returns the weighted total rounded half up, in [0,100].
func (a *Aggregator) Aggregate(m entity.EvaluationMetrics) int {
	scores := [5]int{
		clampInt(m.ClarityScore),
		clampInt(m.CapabilityScore),
		clampInt(m.ObjectivityScore),
		clampInt(m.DataScore),
		clampInt(m.ToleranceScore),
	}

	sum := 0
	for i, s := range scores {
		sum += s * a.basis[i]
	}
	return clampInt((sum + weightScale/2) / weightScale)
}
