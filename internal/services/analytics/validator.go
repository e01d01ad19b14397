package analytics

import (
	"fmt"
	"strconv"
	"strings"

	"BizPulse/internal/domain/models"
	"BizPulse/pkg/util"
)

const (
	colDate       = "date"
	colRevenue    = "revenue"
	colCosts      = "costs"
	colCustomers  = "customers"
	colDepartment = "department"
)

var requiredColumns = []string{colDate, colRevenue}

type columnIndex struct {
	date       int
	revenue    int
	costs      int
	customers  int
	department int
}

// findColumns matches headers case-insensitively, ignoring surrounding
// whitespace and BOM junk that spreadsheet exports tend to carry.
func findColumns(header []string) columnIndex {
	idx := columnIndex{date: -1, revenue: -1, costs: -1, customers: -1, department: -1}
	for i, h := range header {
		switch util.NormalizeColumn(h) {
		case colDate:
			if idx.date == -1 {
				idx.date = i
			}
		case colRevenue:
			if idx.revenue == -1 {
				idx.revenue = i
			}
		case colCosts:
			if idx.costs == -1 {
				idx.costs = i
			}
		case colCustomers:
			if idx.customers == -1 {
				idx.customers = i
			}
		case colDepartment:
			if idx.department == -1 {
				idx.department = i
			}
		}
	}
	return idx
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Validate turns a raw table into typed records. Rows with an empty
// revenue cell are dropped with a warning; an unparseable date or a
// non-empty unparseable revenue is fatal. Costs and customers fall back
// to zero when absent or malformed, and negatives are clamped.
func Validate(table models.RawTable) (*models.ValidatedRows, error) {
	idx := findColumns(table.Header)

	var missing []string
	if idx.date == -1 {
		missing = append(missing, colDate)
	}
	if idx.revenue == -1 {
		missing = append(missing, colRevenue)
	}
	if len(missing) > 0 {
		return nil, newMissingColumnsError(missing)
	}

	out := &models.ValidatedRows{
		Records:       make([]models.Record, 0, len(table.Rows)),
		HasDepartment: idx.department != -1,
	}

	droppedNull := 0
	negativeRevenue := 0

	for i, row := range table.Rows {
		dateCell := cellAt(row, idx.date)
		ts, ok := util.ParseDate(dateCell)
		if !ok {
			return nil, newTypeCoercionError(fmt.Sprintf("row %d: invalid date %q", i+1, dateCell))
		}

		revCell := cellAt(row, idx.revenue)
		if revCell == "" {
			droppedNull++
			continue
		}
		revenue, err := strconv.ParseFloat(revCell, 64)
		if err != nil {
			return nil, newTypeCoercionError(fmt.Sprintf("row %d: invalid revenue %q", i+1, revCell))
		}
		if revenue < 0 {
			revenue = 0
			negativeRevenue++
		}

		costs := parseNonNegative(cellAt(row, idx.costs))
		customers := int64(parseNonNegative(cellAt(row, idx.customers)))

		rec := models.Record{
			Date:      models.DateOf(ts),
			Revenue:   revenue,
			Costs:     costs,
			Customers: customers,
		}
		if out.HasDepartment {
			rec.Department = cellAt(row, idx.department)
		}
		out.Records = append(out.Records, rec)
	}

	if droppedNull > 0 {
		out.Warnings = append(out.Warnings, models.Warning{
			Kind:    models.WarnDroppedNullRevenue,
			Message: fmt.Sprintf("%d rows with invalid revenue values will be removed", droppedNull),
			Rows:    droppedNull,
		})
	}
	if negativeRevenue > 0 {
		out.Warnings = append(out.Warnings, models.Warning{
			Kind:    models.WarnNegativeRevenueClamped,
			Message: "Negative revenue values found and will be set to 0",
			Rows:    negativeRevenue,
		})
	}

	return out, nil
}

func parseNonNegative(cell string) float64 {
	if cell == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
