package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BizPulse/internal/domain/models"
)

func TestCleanDeduplicatesKeepingLast(t *testing.T) {
	rows := models.ValidatedRows{
		Records: []models.Record{
			testRecord(t, "2024-01-01", 100, 40, 10),
			testRecord(t, "2024-01-02", 200, 80, 20),
			testRecord(t, "2024-01-01", 150, 60, 15),
		},
	}

	ds := Clean(rows)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, 150.0, ds.Records[0].Revenue)
	assert.Equal(t, 200.0, ds.Records[1].Revenue)
}

func TestCleanSortsAscending(t *testing.T) {
	rows := models.ValidatedRows{
		Records: []models.Record{
			testRecord(t, "2024-03-01", 300, 0, 0),
			testRecord(t, "2024-01-01", 100, 0, 0),
			testRecord(t, "2024-02-01", 200, 0, 0),
		},
	}

	ds := Clean(rows)
	require.Equal(t, 3, ds.Len())
	assert.Equal(t, "2024-01-01", ds.Records[0].Date.String())
	assert.Equal(t, "2024-02-01", ds.Records[1].Date.String())
	assert.Equal(t, "2024-03-01", ds.Records[2].Date.String())
}

func TestCleanDerivesProfitAndMargin(t *testing.T) {
	rows := models.ValidatedRows{
		Records: []models.Record{
			testRecord(t, "2024-01-01", 200, 50, 0),
			testRecord(t, "2024-01-02", 0, 30, 0),
		},
	}

	ds := Clean(rows)
	require.Equal(t, 2, ds.Len())

	assert.Equal(t, 150.0, ds.Records[0].Profit)
	assert.Equal(t, 75.0, ds.Records[0].ProfitMargin)

	assert.Equal(t, -30.0, ds.Records[1].Profit)
	assert.Equal(t, 0.0, ds.Records[1].ProfitMargin)
}

func TestCleanPreservesDepartmentFlag(t *testing.T) {
	ds := Clean(models.ValidatedRows{HasDepartment: true})
	assert.True(t, ds.HasDepartment)
	assert.Equal(t, 0, ds.Len())
}
