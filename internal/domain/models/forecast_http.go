package models

import "time"

// Requests for forecast HTTP endpoints. Defined in domain for consistency and reuse.

type SKUForecastRequest struct {
	SKU     string `param:"sku" validate:"required"`
	Days    int    `query:"days" default:"90" validate:"gte=1,lte=730"`
	Horizon int    `query:"horizon" default:"30" validate:"gte=1,lte=3650"`
	Store   string `query:"store"`
	To      string `query:"to"`
}

type JobStatusRequest struct {
	ID string `param:"id" validate:"required"`
}

// SKUForecast is returned by the per-SKU endpoint.
type SKUForecast struct {
	SKU        string       `json:"sku"`
	Store      string       `json:"store,omitempty"`
	Days       int          `json:"days"`
	Horizon    int          `json:"horizon"`
	From       time.Time    `json:"from"`
	To         time.Time    `json:"to"`
	History    SalesHistory `json:"history"`
	Prediction float64      `json:"prediction"`
	Confidence float64      `json:"confidence"`
}

// DailySales is one aggregated day read from the sales store.
type DailySales struct {
	Day time.Time
	Qty float64
}

// JobAccepted is returned when a batch is queued.
type JobAccepted struct {
	JobID string `json:"job_id"`
}
