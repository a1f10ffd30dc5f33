package repository

import (
	"context"

	"github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/models"
	domrepo "github.com/elysenoe925-creator/NTS-PROJECT/internal/domain/repository"
	pkgkafka "github.com/elysenoe925-creator/NTS-PROJECT/pkg/kafka"
)

// KafkaResultPublisher writes batch outcomes keyed by request id.
type KafkaResultPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaResultPublisher(producer *pkgkafka.Producer, topic string) *KafkaResultPublisher {
	return &KafkaResultPublisher{producer: producer, topic: topic}
}

func (p *KafkaResultPublisher) PublishOutcome(ctx context.Context, out *models.BatchOutcome) error {
	return p.producer.Publish(ctx, p.topic, []byte(out.ID), out)
}

func (p *KafkaResultPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

var _ domrepo.ResultPublisher = (*KafkaResultPublisher)(nil)
