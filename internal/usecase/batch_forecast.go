package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/models"
	domrepo "github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/repository"
	domsvc "github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/service"
	icache "github.com/elysenoe925-creator/NTS-PROJECT/internal/service/cache"
	"github.com/elysenoe925-creator/NTS-PROJECT/internal/services/forecast"
)

// BatchForecaster runs the forecaster and confidence scorer over every item
// of a request. Items are independent and fanned out over a bounded pool.
type BatchForecaster struct {
	forecaster     domsvc.Forecaster
	scorer         domsvc.ConfidenceScorer
	metrics        domrepo.Metrics
	workers        int
	defaultHorizon int
	cache          icache.BytesCache
	cacheTTL       time.Duration
}

type BatchOption func(*BatchForecaster)

// WithWorkers bounds the number of items computed concurrently.
func WithWorkers(n int) BatchOption {
	return func(b *BatchForecaster) {
		if n > 0 {
			b.workers = n
		}
	}
}

// WithDefaultHorizon sets the horizon used when a request omits one.
func WithDefaultHorizon(h int) BatchOption {
	return func(b *BatchForecaster) {
		if h > 0 {
			b.defaultHorizon = h
		}
	}
}

// WithResultCache caches whole batch results keyed by the sanitized request.
func WithResultCache(c icache.BytesCache, ttl time.Duration) BatchOption {
	return func(b *BatchForecaster) {
		b.cache = c
		b.cacheTTL = ttl
	}
}

func NewBatchForecaster(f domsvc.Forecaster, s domsvc.ConfidenceScorer, m domrepo.Metrics, opts ...BatchOption) *BatchForecaster {
	b := &BatchForecaster{
		forecaster:     f,
		scorer:         s,
		metrics:        m,
		workers:        4,
		defaultHorizon: models.DefaultHorizon,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// DefaultHorizon returns the horizon applied to requests without one.
func (b *BatchForecaster) DefaultHorizon() int { return b.defaultHorizon }

// ForecastItem computes the rounded forecast for a single history.
func (b *BatchForecaster) ForecastItem(history models.SalesHistory, horizon int) models.ItemForecast {
	path := "trend"
	if len(history) < forecast.MinTrendHistory {
		path = "mean"
	}
	b.metrics.RecordItemForecast(path)
	return models.ItemForecast{
		Prediction: forecast.Round2(b.forecaster.Forecast(history, horizon)),
		Confidence: forecast.Round2(b.scorer.Confidence(history)),
	}
}

// Run forecasts every item. Results are joined in input order so a repeated
// SKU keeps the forecast of its last occurrence.
func (b *BatchForecaster) Run(ctx context.Context, req models.ForecastRequest) (models.ForecastResult, error) {
	start := time.Now()
	out := make([]models.ItemForecast, len(req.Items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for i := range req.Items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = b.ForecastItem(req.Items[i].History, req.Horizon)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		b.metrics.RecordError("batch_cancelled")
		return nil, fmt.Errorf("forecast batch: %w", err)
	}

	res := make(models.ForecastResult, len(req.Items))
	for i, it := range req.Items {
		res[it.SKU] = out[i]
	}
	b.metrics.RecordLatency("batch", time.Since(start).Seconds())
	return res, nil
}

// RunRaw sanitizes a wire request, serves it from the result cache when
// possible and otherwise runs it.
func (b *BatchForecaster) RunRaw(ctx context.Context, source string, raw *models.RawForecastRequest) (models.ForecastResult, error) {
	req := Sanitize(raw, b.defaultHorizon)
	b.metrics.RecordBatch(source, len(req.Items))

	key := ""
	if b.cache != nil {
		key = resultCacheKey(req)
	}
	if key != "" {
		var cached models.ForecastResult
		err := icache.LoadJSON(b.cache, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, icache.ErrCacheMiss) {
			b.metrics.RecordError("cache_get")
		}
	}

	res, err := b.Run(ctx, req)
	if err != nil {
		return nil, err
	}
	if key != "" {
		if err := icache.StoreJSON(b.cache, key, res, b.cacheTTL); err != nil {
			b.metrics.RecordError("cache_set")
		}
	}
	return res, nil
}

// resultCacheKey returns "" when the request cannot be encoded (NaN values),
// which bypasses the cache.
func resultCacheKey(req models.ForecastRequest) string {
	b, err := json.Marshal(req)
	if err != nil {
		return ""
	}
	return icache.GenerateKey("forecast", icache.HashKey(b))
}
