package analytics

import "BizPulse/internal/domain/models"

// CalculateKpis aggregates a cleaned dataset into headline figures.
// Trend figures compare the last three records against the three before
// them and stay zero when fewer than six records exist.
func CalculateKpis(ds models.Dataset) models.Kpis {
	if len(ds.Records) == 0 {
		return models.Kpis{}
	}

	var kpis models.Kpis
	var customers float64
	for _, rec := range ds.Records {
		kpis.TotalRevenue += rec.Revenue
		kpis.TotalCosts += rec.Costs
		customers += float64(rec.Customers)
	}
	kpis.TotalProfit = kpis.TotalRevenue - kpis.TotalCosts
	kpis.AvgCustomers = customers / float64(len(ds.Records))
	if kpis.TotalRevenue > 0 {
		kpis.ProfitMargin = kpis.TotalProfit / kpis.TotalRevenue * 100
	}

	if len(ds.Records) >= 6 {
		recent := ds.Records[len(ds.Records)-3:]
		previous := ds.Records[len(ds.Records)-6 : len(ds.Records)-3]
		kpis.RevenueChange = percentChange(sumRevenue(previous), sumRevenue(recent))
		kpis.CustomerChange = percentChange(sumCustomers(previous), sumCustomers(recent))
	}

	return kpis
}

func sumRevenue(records []models.Record) float64 {
	var total float64
	for _, rec := range records {
		total += rec.Revenue
	}
	return total
}

func sumCustomers(records []models.Record) float64 {
	var total float64
	for _, rec := range records {
		total += float64(rec.Customers)
	}
	return total
}

func percentChange(previous, recent float64) float64 {
	if previous == 0 {
		return 0
	}
	return (recent - previous) / previous * 100
}
