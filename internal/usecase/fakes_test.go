package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/models"
	"github.com/elysenoe925-creator/NTS-PROJECT/internal/services/forecast"
	"github.com/elysenoe925-creator/NTS-PROJECT/pkg/metrics"
)

func newTestBatch(opts ...BatchOption) *BatchForecaster {
	return NewBatchForecaster(forecast.NewTrendForecaster(), forecast.NewVolatilityScorer(), metrics.Nop{}, opts...)
}

type fakeSalesStore struct {
	rows []models.DailySales
	err  error

	sku, store string
	from, to   time.Time
}

func (f *fakeSalesStore) DailySales(_ context.Context, sku, store string, from, to time.Time) ([]models.DailySales, error) {
	f.sku, f.store, f.from, f.to = sku, store, from, to
	return f.rows, f.err
}

func (f *fakeSalesStore) Health(context.Context) error { return f.err }

type fakeSalesWriter struct {
	mu    sync.Mutex
	sales []models.Sale
	calls int
	err   error
}

func (f *fakeSalesWriter) RecordSales(_ context.Context, sales []models.Sale) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.sales = append(f.sales, sales...)
	return nil
}

type fakePublisher struct {
	mu  sync.Mutex
	out []*models.BatchOutcome
	err error
}

func (f *fakePublisher) PublishOutcome(_ context.Context, out *models.BatchOutcome) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.out = append(f.out, out)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

type queued struct {
	msgType string
	payload interface{}
}

type fakeQueue struct {
	items []queued
	err   error
}

func (f *fakeQueue) Enqueue(_ context.Context, msgType string, payload interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.items = append(f.items, queued{msgType, payload})
	return nil
}
