package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/models"
	domrepo "github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/repository"
	pkgkafka "github.com/elysenoe925-creator/NTS-PROJECT/pkg/kafka"
)

// KafkaForecastHandler computes batches arriving on the requests topic and
// publishes the outcome keyed by the envelope id.
type KafkaForecastHandler struct {
	topic     string
	batch     *BatchForecaster
	publisher domrepo.ResultPublisher
	metrics   domrepo.Metrics
	now       func() time.Time
}

func NewKafkaForecastHandler(topic string, batch *BatchForecaster, pub domrepo.ResultPublisher, m domrepo.Metrics) *KafkaForecastHandler {
	return &KafkaForecastHandler{topic: topic, batch: batch, publisher: pub, metrics: m, now: time.Now}
}

func (h *KafkaForecastHandler) Topic() string { return h.topic }

// incoming message schema: {id, horizon, details}
func (h *KafkaForecastHandler) Handle(ctx context.Context, b []byte) error {
	var env models.BatchEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return fmt.Errorf("decode envelope: %w", err)
	}

	res, err := h.batch.RunRaw(ctx, "kafka", &env.RawForecastRequest)
	if err != nil {
		return err
	}

	start := time.Now()
	err = h.publisher.PublishOutcome(ctx, &models.BatchOutcome{
		ID:         env.ID,
		Results:    res,
		ComputedAt: h.now().UTC(),
	})
	h.metrics.RecordLatency("publish_outcome", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("publish_outcome")
		return fmt.Errorf("publish outcome %s: %w", env.ID, err)
	}
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaForecastHandler)(nil)
