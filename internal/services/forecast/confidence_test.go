package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/models"
)

func TestVolatilityScorer_Confidence(t *testing.T) {
	s := NewVolatilityScorer()

	tests := []struct {
		name      string
		history   models.SalesHistory
		expected  float64
		tolerance float64
	}{
		{name: "empty history is fully stable", history: nil, expected: 0.95},
		{name: "all zero", history: []float64{0, 0, 0, 0, 0, 0}, expected: 0.95},
		{name: "constant non-zero", history: []float64{5, 5, 5, 5, 5}, expected: 0.95, tolerance: 1e-9},
		// mean 1.5, variance 0.25, cv 1/6
		{name: "alternating series", history: []float64{1, 2, 1, 2, 1, 2, 1, 2}, expected: 1 - 0.5/6, tolerance: 1e-9},
		{name: "very volatile hits floor", history: []float64{0, 0, 0, 100, 0, 0}, expected: 0.1},
		{name: "nan history falls back to max volatility", history: []float64{1, math.NaN(), 2}, expected: 0.5},
		{name: "infinite spread", history: []float64{1, math.Inf(1)}, expected: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, s.Confidence(tt.history), tt.tolerance)
		})
	}
}

func TestVolatilityScorer_Bounds(t *testing.T) {
	s := NewVolatilityScorer()
	histories := []models.SalesHistory{
		nil,
		{0},
		{0, 0, 0},
		{1, 1000},
		{0.001, 0.002, 0.0},
		{math.NaN()},
		{-5, 5},
		{math.Inf(1), math.Inf(1)},
	}
	for _, h := range histories {
		got := s.Confidence(h)
		assert.GreaterOrEqual(t, got, MinConfidence, "history=%v", h)
		assert.LessOrEqual(t, got, MaxConfidence, "history=%v", h)
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 0.92, Round2(1-0.5/6))
	assert.Equal(t, 19.0, Round2(19.000000000001))
	assert.Equal(t, 0.12, Round2(0.125))
	assert.Equal(t, 0.62, Round2(0.625))
	assert.Equal(t, 0.38, Round2(0.375))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 3e307, Round2(3e307))
	assert.Equal(t, math.MaxFloat64, Round2(math.MaxFloat64))
}
