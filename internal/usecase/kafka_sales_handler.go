package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/models"
	domrepo "github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/repository"
	pkgkafka "github.com/elysenoe925-creator/NTS-PROJECT/pkg/kafka"
	"github.com/elysenoe925-creator/NTS-PROJECT/pkg/logger"
)

// KafkaSalesHandler records sale events coming from the point of sale.
type KafkaSalesHandler struct {
	topic   string
	writer  domrepo.SalesWriter
	metrics domrepo.Metrics
	l       *logger.Logger
}

func NewKafkaSalesHandler(topic string, w domrepo.SalesWriter, m domrepo.Metrics, l *logger.Logger) *KafkaSalesHandler {
	if l == nil {
		l = logger.NewNop()
	}
	return &KafkaSalesHandler{topic: topic, writer: w, metrics: m, l: l}
}

func (h *KafkaSalesHandler) Topic() string { return h.topic }

// Handle accepts a single event or an array of events. Invalid events are
// dropped and logged; the rest are written in one call.
func (h *KafkaSalesHandler) Handle(ctx context.Context, b []byte) error {
	events, err := decodeSaleEvents(b)
	if err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return fmt.Errorf("decode sale events: %w", err)
	}

	sales := make([]models.Sale, 0, len(events))
	for i, ev := range events {
		if err := ev.Validate(); err != nil {
			h.metrics.RecordError("sale_invalid")
			h.l.Warn("dropping sale event",
				logger.Int("index", i),
				logger.String("sku", ev.SKU),
				logger.Error(err))
			continue
		}
		sales = append(sales, ev.Sale())
	}
	if len(sales) == 0 {
		return nil
	}

	start := time.Now()
	err = h.writer.RecordSales(ctx, sales)
	h.metrics.RecordLatency("ch_insert_seconds", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	return nil
}

func decodeSaleEvents(b []byte) ([]models.SaleEvent, error) {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var evs []models.SaleEvent
		if err := json.Unmarshal(b, &evs); err != nil {
			return nil, err
		}
		return evs, nil
	}
	var ev models.SaleEvent
	if err := json.Unmarshal(b, &ev); err != nil {
		return nil, err
	}
	return []models.SaleEvent{ev}, nil
}

var _ pkgkafka.MessageHandler = (*KafkaSalesHandler)(nil)
