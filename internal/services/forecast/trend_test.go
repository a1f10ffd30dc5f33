package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/models"
)

func TestTrendForecaster_Forecast(t *testing.T) {
	f := NewTrendForecaster()

	tests := []struct {
		name      string
		history   models.SalesHistory
		horizon   int
		expected  float64
		tolerance float64
	}{
		{name: "empty history", history: nil, horizon: 30, expected: 0},
		{name: "short history uses mean", history: []float64{2, 4, 6}, horizon: 10, expected: 40, tolerance: 1e-9},
		{name: "single observation", history: []float64{7}, horizon: 3, expected: 21, tolerance: 1e-9},
		{name: "four observations still mean", history: []float64{1, 2, 3, 10}, horizon: 2, expected: 8, tolerance: 1e-9},
		{name: "linear trend continues", history: []float64{1, 2, 3, 4, 5, 6, 7, 8}, horizon: 2, expected: 19, tolerance: 1e-9},
		{name: "alternating series", history: []float64{1, 2, 1, 2, 1, 2, 1, 2}, horizon: 7, expected: 13, tolerance: 1e-9},
		{name: "constant history", history: []float64{4, 4, 4, 4, 4, 4}, horizon: 9, expected: 36, tolerance: 1e-9},
		{name: "all zero", history: []float64{0, 0, 0, 0, 0, 0}, horizon: 10, expected: 0},
		{name: "declining trend clamps to zero", history: []float64{50, 40, 30, 20, 10, 0}, horizon: 10, expected: 0},
		{name: "zero horizon", history: []float64{1, 2, 3, 4, 5, 6}, horizon: 0, expected: 0},
		{name: "negative horizon", history: []float64{1, 2, 3, 4, 5, 6}, horizon: -3, expected: 0},
		{name: "nan in history", history: []float64{1, math.NaN(), 3, 4, 5}, horizon: 5, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.Forecast(tt.history, tt.horizon)
			assert.InDelta(t, tt.expected, got, tt.tolerance)
		})
	}
}

func TestTrendForecaster_ShortHistoryMatchesMean(t *testing.T) {
	f := NewTrendForecaster()
	histories := []models.SalesHistory{
		{},
		{3},
		{0, 5},
		{1.5, 2.5, 9},
		{10, 0, 0, 2},
	}
	for _, h := range histories {
		for _, horizon := range []int{0, 1, 7, 30} {
			want := 0.0
			if len(h) > 0 {
				sum := 0.0
				for _, v := range h {
					sum += v
				}
				want = math.Max(0, sum/float64(len(h))*float64(horizon))
			}
			assert.InDelta(t, want, f.Forecast(h, horizon), 1e-9, "history=%v horizon=%d", h, horizon)
		}
	}
}

func TestTrendForecaster_NeverNegative(t *testing.T) {
	f := NewTrendForecaster()
	h := make(models.SalesHistory, 0, 60)
	for i := 60; i > 0; i-- {
		h = append(h, float64(i))
	}
	for horizon := 0; horizon <= 120; horizon += 15 {
		got := f.Forecast(h, horizon)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.False(t, math.IsInf(got, 0) || math.IsNaN(got))
	}
}
