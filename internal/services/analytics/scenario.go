package analytics

import "BizPulse/internal/domain/models"

// ModelScenario applies a revenue adjustment percentage to every record
// and derives the resulting profit and margin. Base figures are kept
// alongside so callers can render before and after views.
func ModelScenario(ds models.Dataset, adjustmentPercent float64) []models.ScenarioRecord {
	factor := 1 + adjustmentPercent/100

	out := make([]models.ScenarioRecord, 0, len(ds.Records))
	for _, rec := range ds.Records {
		sr := models.ScenarioRecord{Record: rec}
		sr.ScenarioRevenue = rec.Revenue * factor
		sr.ScenarioProfit = sr.ScenarioRevenue - rec.Costs
		if sr.ScenarioRevenue > 0 {
			sr.ScenarioMargin = sr.ScenarioProfit / sr.ScenarioRevenue * 100
		}
		out = append(out, sr)
	}
	return out
}

// ScenarioTotals reduces a modeled scenario to aggregate figures.
func ScenarioTotals(records []models.ScenarioRecord) models.ScenarioKpis {
	var totals models.ScenarioKpis
	for _, rec := range records {
		totals.TotalRevenue += rec.ScenarioRevenue
		totals.TotalCosts += rec.Costs
		totals.TotalProfit += rec.ScenarioProfit
	}
	if totals.TotalRevenue > 0 {
		totals.ProfitMargin = totals.TotalProfit / totals.TotalRevenue * 100
	}
	return totals
}
