package http

// APIResponse is the envelope every endpoint writes. Status carries the
// application status code; the HTTP layer itself always answers 200.
type APIResponse struct {
	Status  int         `json:"status" example:"200"`
	Message string      `json:"message" example:"OK"`
	Data    interface{} `json:"data,omitempty"`
}

// ValidationError describes a single failed request field.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"forecast_months"`
	Message string                 `json:"message,omitempty" example:"forecast_months must be at least 1"`
	Params  map[string]interface{} `json:"params,omitempty"`
}
