package analytics

import (
	"fmt"
	"strings"
)

// Validation failure kinds.
const (
	ErrMissingColumns = "missing_columns"
	ErrTypeCoercion   = "type_coercion_failure"
)

// ValidationError is returned when an uploaded table cannot be turned
// into a dataset. Kind tells the caller which class of failure it is so
// the API layer can map it to a response code.
type ValidationError struct {
	Kind    string
	Columns []string
	Detail  string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case ErrMissingColumns:
		return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
	case ErrTypeCoercion:
		return fmt.Sprintf("invalid value: %s", e.Detail)
	default:
		return e.Detail
	}
}

func newMissingColumnsError(cols []string) *ValidationError {
	return &ValidationError{Kind: ErrMissingColumns, Columns: cols}
}

func newTypeCoercionError(detail string) *ValidationError {
	return &ValidationError{Kind: ErrTypeCoercion, Detail: detail}
}
