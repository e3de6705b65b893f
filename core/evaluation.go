package core

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Criterion maxima. The four maxima sum to 100, so the weighted total is
// already on a 0-100 scale and is never scaled a second time.
const (
	MaxPriceScore       float64 = 30
	MaxQualityScore     float64 = 40
	MaxDeliveryScore    float64 = 20
	MaxReliabilityScore float64 = 10
)

// Criterion weights. These must sum to 1.0 for any criterion set used.
var (
	priceWeight       = decimal.NewFromFloat(0.3)
	qualityWeight     = decimal.NewFromFloat(0.4)
	deliveryWeight    = decimal.NewFromFloat(0.2)
	reliabilityWeight = decimal.NewFromFloat(0.1)
)

// EvaluationCriteria carries one evaluator's per-criterion scores.
type EvaluationCriteria struct {
	PriceScore       float64 `json:"price_score"`       // max 30
	QualityScore     float64 `json:"quality_score"`     // max 40
	DeliveryScore    float64 `json:"delivery_score"`    // max 20
	ReliabilityScore float64 `json:"reliability_score"` // max 10
}

// Grade is the informational letter grade derived from a weighted total.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// Score computes the weighted composite score from per-criterion inputs.
//
// Formula: price×0.3 + quality×0.4 + delivery×0.2 + reliability×0.1
//
// Each criterion must lie within [0, max]; anything outside fails with
// ErrInvalidScoreRange. Uses decimal arithmetic for precise weighting.
func Score(c EvaluationCriteria) (float64, error) {
	if err := validateCriterion("priceScore", c.PriceScore, MaxPriceScore); err != nil {
		return 0, err
	}
	if err := validateCriterion("qualityScore", c.QualityScore, MaxQualityScore); err != nil {
		return 0, err
	}
	if err := validateCriterion("deliveryScore", c.DeliveryScore, MaxDeliveryScore); err != nil {
		return 0, err
	}
	if err := validateCriterion("reliabilityScore", c.ReliabilityScore, MaxReliabilityScore); err != nil {
		return 0, err
	}

	total := decimal.NewFromFloat(c.PriceScore).Mul(priceWeight).
		Add(decimal.NewFromFloat(c.QualityScore).Mul(qualityWeight)).
		Add(decimal.NewFromFloat(c.DeliveryScore).Mul(deliveryWeight)).
		Add(decimal.NewFromFloat(c.ReliabilityScore).Mul(reliabilityWeight))

	weightedTotal, _ := total.Float64()
	return weightedTotal, nil
}

func validateCriterion(name string, value, max float64) error {
	if value < 0 || value > max {
		return fmt.Errorf("%w: %s %.2f outside [0, %.0f]", ErrInvalidScoreRange, name, value, max)
	}
	return nil
}

// GradeFor maps a 0-100 weighted total to its letter grade.
func GradeFor(weightedTotal float64) Grade {
	switch {
	case weightedTotal >= 90:
		return GradeA
	case weightedTotal >= 80:
		return GradeB
	case weightedTotal >= 70:
		return GradeC
	default:
		return GradeD
	}
}

// Evaluate creates or overwrites the Evaluation for a participation, marks it
// evaluated and records the weighted total on the participation itself.
//
// Evaluation is permitted only while the owning notice is ONGOING or CLOSED;
// a PENDING or CANCELED notice fails with ErrInvalidLifecycleState. All
// validation runs before any field is written, so a failed call leaves the
// participation untouched.
func Evaluate(notice *BiddingNotice, p *Participation, evaluatorID string, c EvaluationCriteria, comments string) (*Evaluation, error) {
	if notice.Status != StatusOngoing && notice.Status != StatusClosed {
		return nil, fmt.Errorf("%w: cannot evaluate a %s bidding", ErrInvalidLifecycleState, notice.Status)
	}
	if p.BiddingID != notice.ID {
		return nil, fmt.Errorf("%w: participation %s does not belong to bidding %s", ErrNotFound, p.ID, notice.ID)
	}

	weightedTotal, err := Score(c)
	if err != nil {
		return nil, err
	}

	evaluation := &Evaluation{
		ParticipationID:    p.ID,
		EvaluatorID:        evaluatorID,
		PriceScore:         c.PriceScore,
		QualityScore:       c.QualityScore,
		DeliveryScore:      c.DeliveryScore,
		ReliabilityScore:   c.ReliabilityScore,
		WeightedTotalScore: weightedTotal,
		Comments:           comments,
		EvaluatedAt:        time.Now(),
	}

	p.IsEvaluated = true
	score := weightedTotal
	p.EvaluationScore = &score

	return evaluation, nil
}
