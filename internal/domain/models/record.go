package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Date is a day-precision calendar date. It marshals as "2006-01-02" and
// accepts RFC3339 timestamps on input for compatibility with exports that
// carry full timestamps.
type Date struct {
	time.Time
}

// NewDate builds a Date truncated to day precision in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to day precision in UTC.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return NewDate(y, m, d)
}

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time.AddDate(0, 0, n))
}

func (d Date) String() string {
	return d.Time.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		*d = DateOf(t)
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", s, err)
	}
	*d = DateOf(t)
	return nil
}

// RawTable is an untyped row set as decoded from CSV/XLSX/JSON: a header and
// cell values per row, before any validation or coercion.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// Record is a single business observation. Profit and ProfitMargin are
// derived fields populated by the cleaner; they are zero on validated rows
// that have not passed through cleaning yet.
type Record struct {
	Date         Date    `json:"date"`
	Revenue      float64 `json:"revenue"`
	Costs        float64 `json:"costs"`
	Customers    int64   `json:"customers"`
	Department   string  `json:"department,omitempty"`
	Profit       float64 `json:"profit"`
	ProfitMargin float64 `json:"profit_margin"`
}

// ValidatedRows is the validator output: coerced rows plus non-fatal warnings.
// HasDepartment records whether the input carried a department column at all,
// which the department aggregation needs to distinguish "no column" from
// "empty labels".
type ValidatedRows struct {
	Records       []Record
	HasDepartment bool
	Warnings      []Warning
}

// Dataset is a cleaned, date-unique, ascending-sorted record sequence.
type Dataset struct {
	Records       []Record
	HasDepartment bool
}

// Len returns the record count.
func (d Dataset) Len() int { return len(d.Records) }

// WarningKind enumerates non-fatal validation defects.
type WarningKind string

const (
	WarnDroppedNullRevenue     WarningKind = "dropped_null_revenue"
	WarnNegativeRevenueClamped WarningKind = "negative_revenue_clamped"
)

// Warning is a recoverable defect attached to a successful validation.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
	Rows    int         `json:"rows,omitempty"`
}
