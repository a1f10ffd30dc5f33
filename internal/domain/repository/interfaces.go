package repository

import (
	"context"
	"time"

	"github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/models"
)

// SalesStore provides read-only access to aggregated daily sales.
type SalesStore interface {
	// DailySales returns one row per day with sales in [from, to), ascending.
	// An empty store filter covers every store.
	DailySales(ctx context.Context, sku, store string, from, to time.Time) ([]models.DailySales, error)
	Health(ctx context.Context) error
}

// SalesWriter records raw sale lines.
type SalesWriter interface {
	RecordSales(ctx context.Context, sales []models.Sale) error
}

// ResultPublisher delivers computed batches to downstream consumers.
type ResultPublisher interface {
	PublishOutcome(ctx context.Context, out *models.BatchOutcome) error
	Close() error
}

// JobQueue accepts batches for asynchronous computation.
type JobQueue interface {
	Enqueue(ctx context.Context, msgType string, payload interface{}) error
}

type Metrics interface {
	RecordItemForecast(path string)
	RecordBatch(source string, items int)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
