package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/models"
	domrepo "github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/repository"
	"github.com/elysenoe925-creator/NTS-PROJECT/internal/services/features"
)

// SKUForecaster forecasts one SKU from the daily sales held in the store.
type SKUForecaster struct {
	store   domrepo.SalesStore
	batch   *BatchForecaster
	metrics domrepo.Metrics
	now     func() time.Time
}

func NewSKUForecaster(store domrepo.SalesStore, batch *BatchForecaster, m domrepo.Metrics) *SKUForecaster {
	return &SKUForecaster{store: store, batch: batch, metrics: m, now: time.Now}
}

// Forecast reads `days` whole UTC days ending at the day containing `to`
// (now when zero) and forecasts `horizon` days forward.
func (s *SKUForecaster) Forecast(ctx context.Context, sku, store string, days, horizon int, to time.Time) (*models.SKUForecast, error) {
	if to.IsZero() {
		to = s.now()
	}
	from, end := features.WindowEndingAt(to.UTC(), days)

	start := time.Now()
	rows, err := s.store.DailySales(ctx, sku, store, from, end)
	s.metrics.RecordLatency("daily_sales", time.Since(start).Seconds())
	if err != nil {
		s.metrics.RecordError("sales_store")
		return nil, fmt.Errorf("load sales for %s: %w", sku, err)
	}

	history := features.BuildDailyHistory(rows, from, days)
	item := s.batch.ForecastItem(history, horizon)
	s.metrics.RecordBatch("sku", 1)

	return &models.SKUForecast{
		SKU:        sku,
		Store:      store,
		Days:       days,
		Horizon:    horizon,
		From:       from,
		To:         end,
		History:    history,
		Prediction: item.Prediction,
		Confidence: item.Confidence,
	}, nil
}
