package models

// Kpis is a single aggregate snapshot computed from one Dataset. It is never
// persisted; callers recompute it on demand.
type Kpis struct {
	TotalRevenue   float64 `json:"total_revenue"`
	TotalCosts     float64 `json:"total_costs"`
	TotalProfit    float64 `json:"total_profit"`
	AvgCustomers   float64 `json:"avg_customers"`
	ProfitMargin   float64 `json:"profit_margin"`
	RevenueChange  float64 `json:"revenue_change"`
	CustomerChange float64 `json:"customer_change"`
}

// ForecastPoint is one projected revenue value. IsProjection is always true
// for produced points so clients can tell projections from observed records.
type ForecastPoint struct {
	Date         Date    `json:"date"`
	Revenue      float64 `json:"revenue"`
	Forecast     float64 `json:"forecast"`
	IsProjection bool    `json:"is_projection"`
}

// DepartmentRollup sums one department's records.
type DepartmentRollup struct {
	Department string  `json:"department"`
	Revenue    float64 `json:"revenue"`
	Costs      float64 `json:"costs"`
	Customers  int64   `json:"customers"`
	Profit     float64 `json:"profit"`
}

type AlertType string

const (
	AlertSuccess AlertType = "success"
	AlertWarning AlertType = "warning"
)

type AlertSeverity string

const (
	SeverityLow    AlertSeverity = "low"
	SeverityMedium AlertSeverity = "medium"
	SeverityHigh   AlertSeverity = "high"
)

// Alert is an ephemeral threshold finding derived solely from a Kpis snapshot.
type Alert struct {
	Type     AlertType     `json:"type"`
	Message  string        `json:"message"`
	Severity AlertSeverity `json:"severity"`
}

// ScenarioRecord is a Record plus counterfactual revenue fields. The source
// Dataset is never mutated; scenario output is owned by the caller.
type ScenarioRecord struct {
	Record
	ScenarioRevenue float64 `json:"scenario_revenue"`
	ScenarioProfit  float64 `json:"scenario_profit"`
	ScenarioMargin  float64 `json:"scenario_margin"`
}

// ScenarioKpis aggregates a scenario sequence (caller-side reduction).
type ScenarioKpis struct {
	TotalRevenue float64 `json:"total_revenue"`
	TotalCosts   float64 `json:"total_costs"`
	TotalProfit  float64 `json:"total_profit"`
	ProfitMargin float64 `json:"profit_margin"`
}

// Report bundles a full analysis pass over one Dataset.
// Note: no transport (json naming follows the wire contract directly).
type Report struct {
	Records     []Record           `json:"data"`
	Kpis        Kpis               `json:"kpis"`
	Forecast    []ForecastPoint    `json:"forecast"`
	Departments []DepartmentRollup `json:"departments"`
	Alerts      []Alert            `json:"alerts"`
	Scenario    []ScenarioRecord   `json:"scenario,omitempty"`
	Warnings    []Warning          `json:"warnings,omitempty"`
	RecordCount int                `json:"record_count"`
}
