package forecast

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/models"
	domsvc "github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/service"
)

const (
	MinConfidence = 0.1
	MaxConfidence = 0.95

	// fallbackConfidence is reported if scoring still ends in NaN.
	fallbackConfidence = 0.5
	cvWeight           = 0.5
)

// VolatilityScorer lowers confidence as the variance-to-mean ratio of a
// history grows.
type VolatilityScorer struct{}

func NewVolatilityScorer() *VolatilityScorer { return &VolatilityScorer{} }

// Confidence returns a score in [MinConfidence, MaxConfidence].
func (VolatilityScorer) Confidence(history models.SalesHistory) float64 {
	mean, variance := meanVariance(history)

	var cv float64
	if mean == 0 || math.IsNaN(mean) {
		if variance != 0 {
			cv = 1
		}
	} else {
		cv = variance / mean
	}
	cv = notNaNOr(cv, 1)

	conf := clamp(1-cv*cvWeight, MinConfidence, MaxConfidence)
	return notNaNOr(conf, fallbackConfidence)
}

// meanVariance returns the population mean and variance. An empty history
// reports mean 1 and variance 0 so that it scores as fully stable.
func meanVariance(history models.SalesHistory) (mean, variance float64) {
	if len(history) == 0 {
		return 1, 0
	}
	return stat.PopMeanVariance(history, nil)
}

var _ domsvc.ConfidenceScorer = VolatilityScorer{}
