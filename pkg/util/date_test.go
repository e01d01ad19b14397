package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateLayouts(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-10-10", time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)},
		{"2024/10/10", time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)},
		{"01/15/2024", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"Jan 2, 2024", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{" 2024-10-10 ", time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, ok := ParseDate(tt.in)
		require.True(t, ok, "ParseDate(%q)", tt.in)
		assert.True(t, got.Equal(tt.want), "ParseDate(%q) = %v", tt.in, got)
	}
}

func TestParseDateTruncatesToDay(t *testing.T) {
	got, ok := ParseDate("2024-10-10T15:04:05Z")
	require.True(t, ok)
	assert.Zero(t, got.Hour())
	assert.Equal(t, 10, got.Day())
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "not a date", "2024-13-40"} {
		_, ok := ParseDate(in)
		assert.False(t, ok, "ParseDate(%q)", in)
	}
}

func TestNormalizeColumn(t *testing.T) {
	assert.Equal(t, "revenue", NormalizeColumn("\uFEFF  Revenue "))
	assert.Equal(t, "profit margin", NormalizeColumn("Profit Margin"))
}
