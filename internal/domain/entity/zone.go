package entity

// Zone places a project on the technical difficulty × business value matrix.
type Zone string

const (
	ZoneOptimal        Zone = "optimal"
	ZoneEasy           Zone = "easy"
	ZoneChallenge      Zone = "challenge"
	ZoneInfeasible     Zone = "infeasible"
	ZoneOverInvestment Zone = "over-investment"
)

var Zones = []Zone{ZoneOptimal, ZoneEasy, ZoneChallenge, ZoneInfeasible, ZoneOverInvestment}

const (
	matrixMidpoint      = 50
	overInvestmentFloor = 80
)

func (z Zone) Valid() bool {
	switch z {
	case ZoneOptimal, ZoneEasy, ZoneChallenge, ZoneInfeasible, ZoneOverInvestment:
		return true
	}
	return false
}

func (z Zone) String() string {
	return string(z)
}

// ClassifyZone maps matrix coordinates to a zone. x is technical difficulty,
// y is business value.
func ClassifyZone(x, y int) Zone {
	switch {
	case x >= overInvestmentFloor && y < matrixMidpoint:
		return ZoneOverInvestment
	case y >= matrixMidpoint && x < matrixMidpoint:
		return ZoneEasy
	case y >= matrixMidpoint:
		return ZoneOptimal
	case x < matrixMidpoint:
		return ZoneInfeasible
	default:
		return ZoneChallenge
	}
}

type Recommendation string

const (
	RecommendStrongly Recommendation = "strongly-recommended"
	RecommendCautious Recommendation = "cautious"
	RecommendAgainst  Recommendation = "not-recommended"
)

// RecommendationFor buckets a total score into the advice shown with a report.
func RecommendationFor(totalScore int) Recommendation {
	switch {
	case totalScore >= 85:
		return RecommendStrongly
	case totalScore >= 70:
		return RecommendCautious
	default:
		return RecommendAgainst
	}
}
