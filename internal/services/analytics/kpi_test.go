package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"BizPulse/internal/domain/models"
)

func TestCalculateKpisEmptyDataset(t *testing.T) {
	kpis := CalculateKpis(models.Dataset{})
	assert.Equal(t, models.Kpis{}, kpis)
}

func TestCalculateKpisTotals(t *testing.T) {
	ds := models.Dataset{Records: []models.Record{
		testRecord(t, "2024-01-01", 100, 40, 10),
		testRecord(t, "2024-02-01", 200, 60, 20),
	}}

	kpis := CalculateKpis(ds)
	assert.Equal(t, 300.0, kpis.TotalRevenue)
	assert.Equal(t, 100.0, kpis.TotalCosts)
	assert.Equal(t, 200.0, kpis.TotalProfit)
	assert.Equal(t, 15.0, kpis.AvgCustomers)
	assert.InDelta(t, 66.667, kpis.ProfitMargin, 0.001)
}

func TestCalculateKpisTrendNeedsSixRecords(t *testing.T) {
	ds := models.Dataset{Records: []models.Record{
		testRecord(t, "2024-01-01", 100, 0, 10),
		testRecord(t, "2024-02-01", 200, 0, 20),
		testRecord(t, "2024-03-01", 300, 0, 30),
		testRecord(t, "2024-04-01", 400, 0, 40),
		testRecord(t, "2024-05-01", 500, 0, 50),
	}}

	kpis := CalculateKpis(ds)
	assert.Equal(t, 0.0, kpis.RevenueChange)
	assert.Equal(t, 0.0, kpis.CustomerChange)
}

func TestCalculateKpisTrend(t *testing.T) {
	dates := []string{"2024-01-01", "2024-02-01", "2024-03-01", "2024-04-01", "2024-05-01", "2024-06-01"}
	records := make([]models.Record, 0, len(dates))
	for i, d := range dates {
		records = append(records, testRecord(t, d, 100+float64(i)*10, 50, int64(10+i)))
	}
	ds := models.Dataset{Records: records}

	kpis := CalculateKpis(ds)
	// previous window sums to 330, recent to 420
	assert.InDelta(t, 27.2727, kpis.RevenueChange, 0.0001)
	assert.InDelta(t, 27.2727, kpis.CustomerChange, 0.0001)
}

func TestCalculateKpisZeroRevenueMarginGuard(t *testing.T) {
	ds := models.Dataset{Records: []models.Record{
		testRecord(t, "2024-01-01", 0, 50, 10),
	}}

	kpis := CalculateKpis(ds)
	assert.Equal(t, 0.0, kpis.ProfitMargin)
	assert.Equal(t, -50.0, kpis.TotalProfit)
}
