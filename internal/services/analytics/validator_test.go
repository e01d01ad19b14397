package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BizPulse/internal/domain/models"
)

func TestValidateMissingColumns(t *testing.T) {
	tests := []struct {
		name    string
		header  []string
		missing []string
	}{
		{"no date", []string{"revenue", "costs"}, []string{"date"}},
		{"no revenue", []string{"date", "costs"}, []string{"revenue"}},
		{"empty header", []string{}, []string{"date", "revenue"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(models.RawTable{Header: tt.header})
			require.Error(t, err)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, ErrMissingColumns, verr.Kind)
			assert.Equal(t, tt.missing, verr.Columns)
		})
	}
}

func TestValidateHeaderNormalization(t *testing.T) {
	table := models.RawTable{
		Header: []string{"\uFEFFDate", "  REVENUE ", "Costs", "Customers", "Department"},
		Rows: [][]string{
			{"2024-01-01", "100.5", "40", "12", "Sales"},
		},
	}

	rows, err := Validate(table)
	require.NoError(t, err)
	require.Len(t, rows.Records, 1)
	assert.True(t, rows.HasDepartment)

	rec := rows.Records[0]
	assert.Equal(t, "2024-01-01", rec.Date.String())
	assert.Equal(t, 100.5, rec.Revenue)
	assert.Equal(t, 40.0, rec.Costs)
	assert.Equal(t, int64(12), rec.Customers)
	assert.Equal(t, "Sales", rec.Department)
}

func TestValidateInvalidDateIsFatal(t *testing.T) {
	table := models.RawTable{
		Header: []string{"date", "revenue"},
		Rows: [][]string{
			{"2024-01-01", "100"},
			{"not-a-date", "200"},
		},
	}

	_, err := Validate(table)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, ErrTypeCoercion, verr.Kind)
	assert.Contains(t, verr.Detail, "row 2")
}

func TestValidateInvalidRevenueIsFatal(t *testing.T) {
	table := models.RawTable{
		Header: []string{"date", "revenue"},
		Rows:   [][]string{{"2024-01-01", "abc"}},
	}

	_, err := Validate(table)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, ErrTypeCoercion, verr.Kind)
	assert.Contains(t, verr.Detail, "revenue")
}

func TestValidateEmptyRevenueDropsRowWithWarning(t *testing.T) {
	table := models.RawTable{
		Header: []string{"date", "revenue"},
		Rows: [][]string{
			{"2024-01-01", "100"},
			{"2024-01-02", ""},
			{"2024-01-03", "  "},
			{"2024-01-04", "300"},
		},
	}

	rows, err := Validate(table)
	require.NoError(t, err)
	assert.Len(t, rows.Records, 2)

	require.Len(t, rows.Warnings, 1)
	assert.Equal(t, models.WarnDroppedNullRevenue, rows.Warnings[0].Kind)
	assert.Equal(t, 2, rows.Warnings[0].Rows)
	assert.Contains(t, rows.Warnings[0].Message, "2 rows")
}

func TestValidateNegativeRevenueClamped(t *testing.T) {
	table := models.RawTable{
		Header: []string{"date", "revenue"},
		Rows: [][]string{
			{"2024-01-01", "-50"},
			{"2024-01-02", "200"},
		},
	}

	rows, err := Validate(table)
	require.NoError(t, err)
	require.Len(t, rows.Records, 2)
	assert.Equal(t, 0.0, rows.Records[0].Revenue)
	assert.Equal(t, 200.0, rows.Records[1].Revenue)

	require.Len(t, rows.Warnings, 1)
	assert.Equal(t, models.WarnNegativeRevenueClamped, rows.Warnings[0].Kind)
}

func TestValidateOptionalColumnsDefaultToZero(t *testing.T) {
	table := models.RawTable{
		Header: []string{"date", "revenue", "costs", "customers"},
		Rows: [][]string{
			{"2024-01-01", "100", "", ""},
			{"2024-01-02", "100", "junk", "-5"},
			{"2024-01-03", "100"},
		},
	}

	rows, err := Validate(table)
	require.NoError(t, err)
	require.Len(t, rows.Records, 3)
	assert.False(t, rows.HasDepartment)

	for _, rec := range rows.Records {
		assert.Equal(t, 0.0, rec.Costs)
		assert.Equal(t, int64(0), rec.Customers)
	}
}
