package usecase

import (
	"context"
	"encoding/json"
	"time"

	"BizPulse/internal/domain/models"
	domrepo "BizPulse/internal/domain/repository"
	pkgkafka "BizPulse/pkg/kafka"
)

// KafkaRecordsHandler consumes published records and appends them to
// the dataset store. It is the persistence side of the kafka backend.
type KafkaRecordsHandler struct {
	topic   string
	store   domrepo.DatasetStore
	metrics domrepo.Metrics
}

func NewKafkaRecordsHandler(topic string, store domrepo.DatasetStore, metrics domrepo.Metrics) *KafkaRecordsHandler {
	return &KafkaRecordsHandler{topic: topic, store: store, metrics: metrics}
}

func (h *KafkaRecordsHandler) Topic() string { return h.topic }

func (h *KafkaRecordsHandler) Handle(ctx context.Context, b []byte) error {
	var rec models.Record
	if err := json.Unmarshal(b, &rec); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}

	start := time.Now()
	err := h.store.Append(ctx, []models.Record{rec})
	h.metrics.RecordLatency("ch_insert_seconds", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	h.metrics.RecordRowsIngested("kafka", 1)
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaRecordsHandler)(nil)
