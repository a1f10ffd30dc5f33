package forecast

import (
	"gonum.org/v1/gonum/stat"

	"github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/models"
	domsvc "github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/service"
)

// MinTrendHistory is the shortest history fit with a linear trend. Shorter
// histories are projected from their mean.
const MinTrendHistory = 5

// TrendForecaster fits an ordinary least-squares line of sales against day
// index and sums the line over the forecast horizon.
type TrendForecaster struct{}

func NewTrendForecaster() *TrendForecaster { return &TrendForecaster{} }

// Forecast returns the non-negative total demand over the next horizon days.
func (TrendForecaster) Forecast(history models.SalesHistory, horizon int) float64 {
	if horizon <= 0 || len(history) == 0 {
		return 0
	}
	if len(history) < MinTrendHistory {
		mean := stat.Mean(history, nil)
		return nonNegative(mean * float64(horizon))
	}

	slope, intercept := fitLine(history)
	n := len(history)
	total := 0.0
	for i := n; i < n+horizon; i++ {
		total += intercept + slope*float64(i)
	}
	return nonNegative(total)
}

// fitLine regresses history against indices 0..n-1.
func fitLine(history models.SalesHistory) (slope, intercept float64) {
	xs := make([]float64, len(history))
	for i := range xs {
		xs[i] = float64(i)
	}
	intercept, slope = stat.LinearRegression(xs, history, nil, false)
	return slope, intercept
}

func nonNegative(v float64) float64 {
	v = finiteOr(v, 0)
	if v < 0 {
		return 0
	}
	return v
}

var _ domsvc.Forecaster = TrendForecaster{}
