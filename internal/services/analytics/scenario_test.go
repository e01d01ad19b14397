package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BizPulse/internal/domain/models"
)

func TestModelScenarioAdjustsRevenue(t *testing.T) {
	ds := models.Dataset{Records: []models.Record{
		testRecord(t, "2024-01-01", 100, 40, 10),
		testRecord(t, "2024-02-01", 200, 60, 20),
	}}

	out := ModelScenario(ds, 20)
	require.Len(t, out, 2)

	assert.InDelta(t, 120, out[0].ScenarioRevenue, 1e-9)
	assert.InDelta(t, 80, out[0].ScenarioProfit, 1e-9)
	assert.InDelta(t, 66.667, out[0].ScenarioMargin, 0.001)

	// base figures ride along untouched
	assert.Equal(t, 100.0, out[0].Revenue)
	assert.Equal(t, 40.0, out[0].Costs)
}

func TestModelScenarioIdentity(t *testing.T) {
	ds := models.Dataset{Records: []models.Record{
		testRecord(t, "2024-01-01", 100, 40, 10),
	}}

	out := ModelScenario(ds, 0)
	require.Len(t, out, 1)
	assert.Equal(t, 100.0, out[0].ScenarioRevenue)
	assert.Equal(t, 60.0, out[0].ScenarioProfit)
}

func TestModelScenarioFullCut(t *testing.T) {
	ds := models.Dataset{Records: []models.Record{
		testRecord(t, "2024-01-01", 100, 40, 10),
	}}

	out := ModelScenario(ds, -100)
	require.Len(t, out, 1)
	assert.Equal(t, 0.0, out[0].ScenarioRevenue)
	assert.Equal(t, -40.0, out[0].ScenarioProfit)
	assert.Equal(t, 0.0, out[0].ScenarioMargin)
}

func TestScenarioTotals(t *testing.T) {
	ds := models.Dataset{Records: []models.Record{
		testRecord(t, "2024-01-01", 100, 40, 10),
		testRecord(t, "2024-02-01", 200, 60, 20),
	}}

	totals := ScenarioTotals(ModelScenario(ds, 10))
	assert.InDelta(t, 330, totals.TotalRevenue, 1e-9)
	assert.InDelta(t, 100, totals.TotalCosts, 1e-9)
	assert.InDelta(t, 230, totals.TotalProfit, 1e-9)
	assert.InDelta(t, 69.697, totals.ProfitMargin, 0.001)
}

func TestScenarioTotalsEmpty(t *testing.T) {
	totals := ScenarioTotals(nil)
	assert.Equal(t, models.ScenarioKpis{}, totals)
}
