package repository

import (
	"context"

	"BizPulse/internal/domain/models"
)

// DatasetStore owns the persisted dataset lifecycle. The analytics engine
// never touches storage; the service layer loads records through this
// interface and hands them to the engine by value.
type DatasetStore interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Replace(ctx context.Context, records []models.Record, hasDepartment bool) error
	Append(ctx context.Context, records []models.Record) error
	LoadAll(ctx context.Context) (models.ValidatedRows, error)
	Count(ctx context.Context) (int, error)
	Health(ctx context.Context) error // ping
	Close() error
}

// Publisher forwards ingested records to the message backend.
type Publisher interface {
	PublishBatch(ctx context.Context, records []models.Record) error
	Close() error
}

// Metrics records operational counters for ingestion and analytics.
type Metrics interface {
	RecordRowsIngested(source string, n int)
	RecordRowsDropped(reason string, n int)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
	RecordDatasetSize(n int)
}
