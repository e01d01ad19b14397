package ingest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"BizPulse/internal/domain/models"
)

func TestParseCSV(t *testing.T) {
	input := "date,revenue,costs\n2024-01-01,100,40\n2024-01-02,200,60\n"

	table, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"date", "revenue", "costs"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"2024-01-01", "100", "40"}, table.Rows[0])
}

func TestParseCSVRaggedRows(t *testing.T) {
	input := "date,revenue,costs\n2024-01-01,100\n"

	table, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Len(t, table.Rows[0], 2)
}

func TestParseCSVEmpty(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"date", "revenue"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"2024-01-01", 100}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	table, err := ParseXLSX(&buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"date", "revenue"}, table.Header)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "100", table.Rows[0][1])
}

func TestFromInlineRows(t *testing.T) {
	rev := func(v float64) *float64 { return &v }

	rows := []models.InlineRow{
		{Date: "2024-01-01", Revenue: rev(100), Costs: rev(40), Department: "Sales"},
		{Date: "2024-01-02", Revenue: nil, Costs: nil, Department: "Sales"},
	}

	table := FromInlineRows(rows)
	assert.Equal(t, []string{"date", "revenue", "costs", "department"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"2024-01-01", "100", "40", "Sales"}, table.Rows[0])
	assert.Equal(t, []string{"2024-01-02", "", "", "Sales"}, table.Rows[1])
}

func TestFromInlineRowsOmitsAbsentColumns(t *testing.T) {
	rev := func(v float64) *float64 { return &v }

	table := FromInlineRows([]models.InlineRow{
		{Date: "2024-01-01", Revenue: rev(100)},
	})
	assert.Equal(t, []string{"date", "revenue"}, table.Header)
}
