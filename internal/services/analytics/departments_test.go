package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BizPulse/internal/domain/models"
)

func deptRecord(t *testing.T, date, dept string, revenue, costs float64, customers int64) models.Record {
	t.Helper()
	rec := testRecord(t, date, revenue, costs, customers)
	rec.Department = dept
	return rec
}

func TestAggregateDepartmentsWithoutColumn(t *testing.T) {
	ds := models.Dataset{Records: []models.Record{
		testRecord(t, "2024-01-01", 100, 40, 10),
	}}
	assert.Empty(t, AggregateDepartments(ds))
}

func TestAggregateDepartments(t *testing.T) {
	ds := models.Dataset{
		HasDepartment: true,
		Records: []models.Record{
			deptRecord(t, "2024-01-01", "Sales", 100, 40, 10),
			deptRecord(t, "2024-01-02", "Marketing", 50, 30, 5),
			deptRecord(t, "2024-01-03", "Sales", 200, 60, 20),
		},
	}

	rollups := AggregateDepartments(ds)
	require.Len(t, rollups, 2)

	assert.Equal(t, "Marketing", rollups[0].Department)
	assert.Equal(t, 50.0, rollups[0].Revenue)
	assert.Equal(t, 20.0, rollups[0].Profit)

	assert.Equal(t, "Sales", rollups[1].Department)
	assert.Equal(t, 300.0, rollups[1].Revenue)
	assert.Equal(t, 100.0, rollups[1].Costs)
	assert.Equal(t, int64(30), rollups[1].Customers)
	assert.Equal(t, 200.0, rollups[1].Profit)
}

func TestFilterDepartment(t *testing.T) {
	ds := models.Dataset{
		HasDepartment: true,
		Records: []models.Record{
			deptRecord(t, "2024-01-01", "Sales", 100, 40, 10),
			deptRecord(t, "2024-01-02", "Marketing", 50, 30, 5),
		},
	}

	filtered := FilterDepartment(ds, "Sales")
	require.Equal(t, 1, filtered.Len())
	assert.Equal(t, "Sales", filtered.Records[0].Department)

	all := FilterDepartment(ds, "all")
	assert.Equal(t, 2, all.Len())

	blank := FilterDepartment(ds, "")
	assert.Equal(t, 2, blank.Len())

	none := FilterDepartment(ds, "Engineering")
	assert.Equal(t, 0, none.Len())
}
