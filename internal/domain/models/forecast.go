package models

import "time"

// DefaultHorizon is the number of days forecast when a request omits it.
const DefaultHorizon = 30

// SalesHistory is a chronological sequence of daily sales counts, oldest first.
type SalesHistory []float64

// Item is one SKU and its cleaned history.
type Item struct {
	SKU     string
	History SalesHistory
}

// ForecastRequest is the sanitized batch request consumed by the batch driver.
// Horizon is always populated.
type ForecastRequest struct {
	Horizon int
	Items   []Item
}

// ItemForecast holds the rounded outputs for one SKU.
type ItemForecast struct {
	Prediction float64 `json:"prediction"`
	Confidence float64 `json:"confidence"`
}

// ForecastResult maps SKU to its forecast. encoding/json emits keys sorted,
// so serialized output is deterministic.
type ForecastResult map[string]ItemForecast

// BatchEnvelope wraps a raw request travelling over Kafka or the job queue.
type BatchEnvelope struct {
	ID string `json:"id"`
	RawForecastRequest
}

// BatchOutcome is published once a queued or streamed batch is computed.
type BatchOutcome struct {
	ID         string         `json:"id"`
	Results    ForecastResult `json:"results"`
	ComputedAt time.Time      `json:"computed_at"`
}
