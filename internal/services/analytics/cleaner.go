package analytics

import (
	"sort"
	"time"

	"BizPulse/internal/domain/models"
)

// Clean deduplicates records by date keeping the last occurrence, sorts
// ascending and derives profit and margin for every record.
func Clean(rows models.ValidatedRows) models.Dataset {
	byDate := make(map[time.Time]models.Record, len(rows.Records))
	for _, rec := range rows.Records {
		byDate[rec.Date.Time] = rec
	}

	records := make([]models.Record, 0, len(byDate))
	for _, rec := range byDate {
		rec.Profit = rec.Revenue - rec.Costs
		if rec.Revenue > 0 {
			rec.ProfitMargin = rec.Profit / rec.Revenue * 100
		} else {
			rec.ProfitMargin = 0
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Date.Time.Before(records[j].Date.Time)
	})

	return models.Dataset{
		Records:       records,
		HasDepartment: rows.HasDepartment,
	}
}
