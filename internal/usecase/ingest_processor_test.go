package usecase

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BizPulse/internal/domain/models"
	domrepo "BizPulse/internal/domain/repository"
)

func testRecord(t *testing.T, date string, revenue, costs float64, customers int64) models.Record {
	t.Helper()
	ts, err := time.Parse(models.DateLayout, date)
	require.NoError(t, err)
	return models.Record{
		Date:      models.DateOf(ts),
		Revenue:   revenue,
		Costs:     costs,
		Customers: customers,
	}
}

type capturePublisher struct {
	batches [][]models.Record
	closed  bool
}

var _ domrepo.Publisher = (*capturePublisher)(nil)

func (p *capturePublisher) PublishBatch(ctx context.Context, records []models.Record) error {
	p.batches = append(p.batches, records)
	return nil
}

func (p *capturePublisher) Close() error {
	p.closed = true
	return nil
}

func ingestRows(t *testing.T) models.ValidatedRows {
	t.Helper()
	return models.ValidatedRows{
		Records: []models.Record{
			testRecord(t, "2024-01-01", 100, 40, 10),
			testRecord(t, "2024-02-01", 200, 60, 20),
		},
		HasDepartment: false,
	}
}

func TestIngestProcessorClickHouseBackend(t *testing.T) {
	store := &memStore{}
	proc := NewIngestProcessor(nil, store, newStubMetrics(), BackendClickHouse)

	require.NoError(t, proc.StoreDataset(context.Background(), ingestRows(t), "upload"))

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestIngestProcessorKafkaBackend(t *testing.T) {
	store := &memStore{}
	require.NoError(t, store.Replace(context.Background(), []models.Record{
		testRecord(t, "2023-12-01", 999, 0, 0),
	}, false))

	pub := &capturePublisher{}
	proc := NewIngestProcessor(pub, store, newStubMetrics(), BackendKafka)

	require.NoError(t, proc.StoreDataset(context.Background(), ingestRows(t), "upload"))

	require.Len(t, pub.batches, 1)
	assert.Len(t, pub.batches[0], 2)

	// the kafka route truncates the previous dataset up front and
	// leaves the record writes to the consumer side
	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestIngestProcessorKafkaBackendKeepsDepartmentFlag(t *testing.T) {
	store := &memStore{}
	pub := &capturePublisher{}
	proc := NewIngestProcessor(pub, store, newStubMetrics(), BackendKafka)

	rows := models.ValidatedRows{
		Records: []models.Record{
			testRecord(t, "2024-01-01", 100, 40, 10),
		},
		HasDepartment: true,
	}
	rows.Records[0].Department = "Sales"

	require.NoError(t, proc.StoreDataset(context.Background(), rows, "upload"))

	// consume the published records the way the kafka handler does
	handler := NewKafkaRecordsHandler("records", store, newStubMetrics())
	require.Len(t, pub.batches, 1)
	for _, rec := range pub.batches[0] {
		b, err := json.Marshal(rec)
		require.NoError(t, err)
		require.NoError(t, handler.Handle(context.Background(), b))
	}

	loaded, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.True(t, loaded.HasDepartment)
	require.Len(t, loaded.Records, 1)
	assert.Equal(t, "Sales", loaded.Records[0].Department)
}

func TestIngestProcessorUnknownBackend(t *testing.T) {
	metrics := newStubMetrics()
	proc := NewIngestProcessor(nil, &memStore{}, metrics, "bogus")

	err := proc.StoreDataset(context.Background(), ingestRows(t), "upload")
	assert.Error(t, err)
	assert.Equal(t, 1, metrics.errors["store_dataset"])
}
