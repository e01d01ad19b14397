package analytics

import (
	"fmt"
	"math"

	"BizPulse/internal/domain/models"
)

// DefaultAlertThreshold is the revenue change percentage that trips an
// alert when the caller does not supply one.
const DefaultAlertThreshold = 10.0

// highSeverityCutoff promotes a revenue change alert to high severity.
const highSeverityCutoff = 20.0

// DetectAlerts inspects the KPI set and emits at most three alerts: a
// revenue swing past the threshold and low or strong margin signals.
// The margin rules are mutually exclusive.
func DetectAlerts(kpis models.Kpis, threshold float64) []models.Alert {
	alerts := []models.Alert{}

	if math.Abs(kpis.RevenueChange) > threshold {
		alertType := models.AlertWarning
		direction := "decreased"
		if kpis.RevenueChange > 0 {
			alertType = models.AlertSuccess
			direction = "increased"
		}
		severity := models.SeverityMedium
		if math.Abs(kpis.RevenueChange) > highSeverityCutoff {
			severity = models.SeverityHigh
		}
		alerts = append(alerts, models.Alert{
			Type:     alertType,
			Message:  fmt.Sprintf("Revenue %s by %.1f%%", direction, math.Abs(kpis.RevenueChange)),
			Severity: severity,
		})
	}

	if kpis.ProfitMargin < 10 {
		alerts = append(alerts, models.Alert{
			Type:     models.AlertWarning,
			Message:  fmt.Sprintf("Low profit margin: %.1f%%", kpis.ProfitMargin),
			Severity: models.SeverityHigh,
		})
	}

	if kpis.ProfitMargin > 30 {
		alerts = append(alerts, models.Alert{
			Type:     models.AlertSuccess,
			Message:  fmt.Sprintf("Strong profit margin: %.1f%%", kpis.ProfitMargin),
			Severity: models.SeverityLow,
		})
	}

	return alerts
}
