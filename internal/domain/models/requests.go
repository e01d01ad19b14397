package models

// Requests for the dashboard HTTP endpoints. Defined in domain for consistency and reuse.

// InlineRow is a wire-typed raw row supplied inline in an analytics request.
// Pointer numerics distinguish absent/null cells from explicit zeros.
type InlineRow struct {
	Date       string   `json:"date"`
	Revenue    *float64 `json:"revenue"`
	Costs      *float64 `json:"costs"`
	Customers  *float64 `json:"customers"`
	Department string   `json:"department"`
}

type AnalyticsRequest struct {
	Data               []InlineRow `json:"data,omitempty"`
	Department         string      `json:"department" default:"all"`
	ForecastMonths     int         `json:"forecast_months" default:"3" validate:"gte=1,lte=36"`
	AlertThreshold     float64     `json:"alert_threshold" default:"10" validate:"gte=0"`
	ScenarioAdjustment *float64    `json:"scenario_adjustment,omitempty" validate:"omitempty,gte=-100,lte=1000"`
}

type ForecastRequest struct {
	Months int `json:"months" default:"3" validate:"gte=1,lte=36"`
}

type ScenarioRequest struct {
	Adjustment float64 `json:"adjustment" validate:"gte=-100,lte=1000"`
}
