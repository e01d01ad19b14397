package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"BizPulse/internal/domain/models"
)

// ParseCSV decodes a CSV stream into a raw table. The first row is the
// header; ragged rows are tolerated and padded by the validator.
func ParseCSV(r io.Reader) (models.RawTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return models.RawTable{}, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return models.RawTable{}, fmt.Errorf("empty csv input")
	}

	return models.RawTable{Header: rows[0], Rows: rows[1:]}, nil
}

// ParseXLSX decodes the first sheet of a workbook into a raw table.
func ParseXLSX(r io.Reader) (models.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return models.RawTable{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return models.RawTable{}, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return models.RawTable{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return models.RawTable{}, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	return models.RawTable{Header: rows[0], Rows: rows[1:]}, nil
}

// FromInlineRows converts request-body rows to a raw table so inline
// payloads run through the same validation path as file uploads.
// Optional columns appear in the table only when at least one row
// carries them, which keeps the department flag honest downstream.
func FromInlineRows(rows []models.InlineRow) models.RawTable {
	var hasCosts, hasCustomers, hasDepartment bool
	for _, row := range rows {
		hasCosts = hasCosts || row.Costs != nil
		hasCustomers = hasCustomers || row.Customers != nil
		hasDepartment = hasDepartment || row.Department != ""
	}

	header := []string{"date", "revenue"}
	if hasCosts {
		header = append(header, "costs")
	}
	if hasCustomers {
		header = append(header, "customers")
	}
	if hasDepartment {
		header = append(header, "department")
	}

	table := models.RawTable{Header: header, Rows: make([][]string, 0, len(rows))}
	for _, row := range rows {
		cells := []string{row.Date, formatOptional(row.Revenue)}
		if hasCosts {
			cells = append(cells, formatOptional(row.Costs))
		}
		if hasCustomers {
			cells = append(cells, formatOptional(row.Customers))
		}
		if hasDepartment {
			cells = append(cells, row.Department)
		}
		table.Rows = append(table.Rows, cells)
	}
	return table
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
