package analytics

import "BizPulse/internal/domain/models"

// projectionStrideDays is the calendar gap between projected points.
const projectionStrideDays = 30

// Forecast fits an ordinary least squares line over the record index
// and extends it months points into the future, 30 days apart, clamping
// predictions at zero. Fewer than two records is not enough signal to
// fit a line, so the result is empty.
func Forecast(ds models.Dataset, months int) []models.ForecastPoint {
	n := len(ds.Records)
	if n < 2 || months <= 0 {
		return []models.ForecastPoint{}
	}

	slope, intercept := fitLine(ds.Records)
	lastDate := ds.Records[n-1].Date

	points := make([]models.ForecastPoint, 0, months)
	for k := 1; k <= months; k++ {
		predicted := intercept + slope*float64(n-1+k)
		if predicted < 0 {
			predicted = 0
		}
		points = append(points, models.ForecastPoint{
			Date:         lastDate.AddDays(projectionStrideDays * k),
			Revenue:      predicted,
			Forecast:     predicted,
			IsProjection: true,
		})
	}

	return points
}

// fitLine regresses revenue on the record index. A degenerate spread
// yields a flat line at the mean.
func fitLine(records []models.Record) (slope, intercept float64) {
	n := float64(len(records))

	var sumX, sumY float64
	for i, rec := range records {
		sumX += float64(i)
		sumY += rec.Revenue
	}
	meanX := sumX / n
	meanY := sumY / n

	var num, denom float64
	for i, rec := range records {
		dx := float64(i) - meanX
		num += dx * (rec.Revenue - meanY)
		denom += dx * dx
	}
	if denom == 0 {
		return 0, meanY
	}
	slope = num / denom
	return slope, meanY - slope*meanX
}
