package usecase

import (
	"context"
	"fmt"
	"time"

	"BizPulse/internal/domain/models"
	drepo "BizPulse/internal/domain/repository"
)

// Ingest backends.
const (
	BackendKafka      = "kafka"
	BackendClickHouse = "clickhouse"
)

// IngestProcessor routes a validated dataset to the configured backend.
// The clickhouse backend replaces the stored dataset synchronously; the
// kafka backend publishes records for the consumer side to persist.
type IngestProcessor struct {
	pub     drepo.Publisher
	store   drepo.DatasetStore
	metrics drepo.Metrics
	backend string
}

func NewIngestProcessor(
	pub drepo.Publisher,
	store drepo.DatasetStore,
	metrics drepo.Metrics,
	backend string,
) *IngestProcessor {
	return &IngestProcessor{
		pub:     pub,
		store:   store,
		metrics: metrics,
		backend: backend,
	}
}

// StoreDataset persists rows as the current dataset. Source labels the
// ingestion origin for metrics ("upload", "sample", "inline").
//
// The kafka backend first replaces the stored dataset with an empty one,
// which truncates the previous records and pins the department flag, then
// publishes the rows for the consumer side to append. Reads between the
// publish and the last consumed append see a partial dataset.
func (p *IngestProcessor) StoreDataset(ctx context.Context, rows models.ValidatedRows, source string) error {
	start := time.Now()
	var err error

	switch p.backend {
	case BackendKafka:
		if err = p.store.Replace(ctx, nil, rows.HasDepartment); err == nil {
			err = p.pub.PublishBatch(ctx, rows.Records)
		}
	case BackendClickHouse:
		err = p.store.Replace(ctx, rows.Records, rows.HasDepartment)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("store_dataset")
		return fmt.Errorf("store dataset: %w", err)
	}

	p.metrics.RecordRowsIngested(source, len(rows.Records))
	for _, w := range rows.Warnings {
		p.metrics.RecordRowsDropped(string(w.Kind), w.Rows)
	}
	p.metrics.RecordDatasetSize(len(rows.Records))
	p.metrics.RecordLatency("store_dataset", time.Since(start).Seconds())

	return nil
}

// Close closes underlying resources if available.
func (p *IngestProcessor) Close() {
	if p.pub != nil {
		_ = p.pub.Close()
	}
	if p.store != nil {
		_ = p.store.Close()
	}
}
