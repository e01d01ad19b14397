package repository

import (
	"context"

	"BizPulse/internal/domain/models"
	domrepo "BizPulse/internal/domain/repository"
	pkgkafka "BizPulse/pkg/kafka"
)

// KafkaPublisher implements Publisher for Kafka. Records are keyed by
// date so repeated uploads of the same day land in the same partition.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) domrepo.Publisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) PublishBatch(ctx context.Context, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(records))
	for i, rec := range records {
		msgs[i] = pkgkafka.Message{
			Key:   []byte(rec.Date.String()),
			Value: rec,
		}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
