package service

import "github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/models"

// Forecaster projects total demand over a horizon from one item's history.
type Forecaster interface {
	Forecast(history models.SalesHistory, horizon int) float64
}

// ConfidenceScorer rates how far a history's volatility allows a forecast to be trusted.
type ConfidenceScorer interface {
	Confidence(history models.SalesHistory) float64
}
