package evaluator

import (
	"math/rand/v2"
	"unicode/utf8"

	"agent-feasibility/internal/domain/entity"
)

// Heuristic used when the model gives no usable answer. Each score is a base
// plus a jitter drawn from [0, spread).
const (
	detailedDescriptionLen = 50
	detailedBase           = 70
	sparseBase             = 50
	featureBonus           = 10

	claritySpread     = 10
	capabilityBase    = 75
	capabilitySpread  = 15
	objectivitySpread = 20
	dataBase          = 60
	dataSpread        = 20
	toleranceBase     = 70
	toleranceSpread   = 15
	matrixXBase       = 45
	matrixXSpread     = 30
	matrixYBase       = 60
	matrixYSpread     = 30
)

var (
	fallbackSuggestions = []string{
		"Define and prioritise the core features explicitly",
		"Build incrementally and validate an MVP first",
		"Add a mechanism for collecting user feedback",
		"Consider combining several AI models to improve accuracy",
	}
	fallbackRisks = []string{
		"Model response latency may hurt the user experience",
		"Ongoing model tuning and optimisation adds cost",
		"Data privacy and security compliance need close attention",
	}
	fallbackReasoning = "The project shows clear business value and technical feasibility. " +
		"Current AI technology can support the core functions, but performance and cost need attention. " +
		"An MVP is recommended to validate demand quickly."
)

// Jitter supplies the random component of fallback scores. IntN returns a
// value in [0, n).
type Jitter interface {
	IntN(n int) int
}

type Estimator struct {
	newJitter  func() Jitter
	deriveZone bool
}

type EstimatorOption func(*Estimator)

// WithJitter replaces the jitter source. The factory is called once per estimate.
func WithJitter(factory func() Jitter) EstimatorOption {
	return func(e *Estimator) {
		e.newJitter = factory
	}
}

// WithSeed makes every estimate draw from a PCG seeded with seed.
func WithSeed(seed uint64) EstimatorOption {
	return WithJitter(func() Jitter {
		return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	})
}

// WithDerivedZone classifies the fallback zone from its matrix position
// instead of always reporting optimal.
func WithDerivedZone(enabled bool) EstimatorOption {
	return func(e *Estimator) {
		e.deriveZone = enabled
	}
}

func NewEstimator(opts ...EstimatorOption) *Estimator {
	e := &Estimator{newJitter: entropyJitter}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func entropyJitter() Jitter {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func (e *Estimator) Estimate(in entity.EvaluationInput) entity.EvaluationMetrics {
	j := e.newJitter()

	base := sparseBase
	if utf8.RuneCountInString(in.Description) > detailedDescriptionLen {
		base = detailedBase
	}
	bonus := 0
	if len(in.Features) > 0 {
		bonus = featureBonus
	}

	m := entity.EvaluationMetrics{
		ClarityScore:     clampInt(base + bonus + draw(j, claritySpread)),
		CapabilityScore:  clampInt(capabilityBase + draw(j, capabilitySpread)),
		ObjectivityScore: clampInt(base + draw(j, objectivitySpread)),
		DataScore:        clampInt(dataBase + draw(j, dataSpread)),
		ToleranceScore:   clampInt(toleranceBase + draw(j, toleranceSpread)),
		MatrixX:          clampInt(matrixXBase + draw(j, matrixXSpread)),
		MatrixY:          clampInt(matrixYBase + draw(j, matrixYSpread)),
		Zone:             entity.ZoneOptimal,
		Suggestions:      append([]string(nil), fallbackSuggestions...),
		Risks:            append([]string(nil), fallbackRisks...),
		Reasoning:        fallbackReasoning,
	}
	if e.deriveZone {
		m.Zone = entity.ClassifyZone(m.MatrixX, m.MatrixY)
	}
	return m
}

// draw keeps a misbehaving jitter source inside its declared spread.
func draw(j Jitter, spread int) int {
	v := j.IntN(spread)
	if v < 0 || v >= spread {
		return 0
	}
	return v
}
