package usecase

import "github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/models"

// Sanitize turns a wire request into a fully populated ForecastRequest.
// A nil horizon takes defaultHorizon; null history entries become 0.
func Sanitize(raw *models.RawForecastRequest, defaultHorizon int) models.ForecastRequest {
	req := models.ForecastRequest{Horizon: defaultHorizon}
	if raw == nil {
		return req
	}
	if raw.Horizon != nil {
		req.Horizon = *raw.Horizon
	}
	req.Items = make([]models.Item, 0, len(raw.Details))
	for _, d := range raw.Details {
		sku := string(d.SKU)
		history := make(models.SalesHistory, len(d.History))
		for i, v := range d.History {
			history[i] = v.Float()
		}
		req.Items = append(req.Items, models.Item{SKU: sku, History: history})
	}
	return req
}
