package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"BizPulse/internal/domain/models"
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

func testDataset(t *testing.T, dates []string, revenue, costs float64, customers int64) models.Dataset {
	t.Helper()
	records := make([]models.Record, 0, len(dates))
	for _, d := range dates {
		records = append(records, testRecord(t, d, revenue, costs, customers))
	}
	return models.Dataset{Records: records}
}
