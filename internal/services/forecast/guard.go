package forecast

import (
	"math"
	"strconv"
)

// finiteOr returns v unless it is NaN or infinite, in which case it returns fallback.
func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// notNaNOr returns fallback only for NaN, letting infinities reach a clamp.
func notNaNOr(v, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return v
}

// clamp bounds v to [lo, hi]. NaN passes through unchanged.
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Round2 rounds the exact binary value to two decimal places, ties to even.
// Non-finite values are returned unchanged.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}
