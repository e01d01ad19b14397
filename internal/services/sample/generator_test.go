package sample

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BizPulse/internal/domain/repository"
)

func fixedNow() time.Time {
	return time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC)
}

func TestGenerateShape(t *testing.T) {
	g := NewGenerator(WithSeed(1), WithNow(fixedNow))

	for _, st := range repository.SampleTypes() {
		t.Run(string(st), func(t *testing.T) {
			rows := g.Generate(st)
			require.Len(t, rows.Records, 12)
			assert.True(t, rows.HasDepartment)

			for _, rec := range rows.Records {
				assert.GreaterOrEqual(t, rec.Revenue, 0.0)
				assert.GreaterOrEqual(t, rec.Costs, 0.0)
				assert.GreaterOrEqual(t, rec.Customers, int64(0))
				assert.NotEmpty(t, rec.Department)
			}
		})
	}
}

func TestGenerateDateSpine(t *testing.T) {
	g := NewGenerator(WithSeed(1), WithNow(fixedNow))
	rows := g.Generate(repository.SampleFinance)

	start := fixedNow().AddDate(0, 0, -365)
	for i, rec := range rows.Records {
		want := start.AddDate(0, 0, 30*i).Format("2006-01-02")
		assert.Equal(t, want, rec.Date.String())
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	a := NewGenerator(WithSeed(42), WithNow(fixedNow)).Generate(repository.SampleSales)
	b := NewGenerator(WithSeed(42), WithNow(fixedNow)).Generate(repository.SampleSales)
	assert.Equal(t, a, b)
}

func TestGenerateDepartmentsRotate(t *testing.T) {
	g := NewGenerator(WithSeed(1), WithNow(fixedNow))
	rows := g.Generate(repository.SampleOperations)

	assert.Equal(t, "Sales", rows.Records[0].Department)
	assert.Equal(t, "Customer Success", rows.Records[4].Department)
	assert.Equal(t, "Sales", rows.Records[5].Department)
}

func TestStartupProfileCompounds(t *testing.T) {
	g := NewGenerator(WithSeed(7), WithNow(fixedNow))
	rows := g.Generate(repository.SampleStartup)

	// 50000 * 1.25^11 dwarfs the noise term, so the tail must sit well
	// above the base revenue.
	assert.Greater(t, rows.Records[11].Revenue, 300000.0)
}

func TestProfileForUnknownFallsBack(t *testing.T) {
	assert.Equal(t, ProfileFor(repository.SampleFinance), ProfileFor(repository.SampleType("bogus")))
}

func TestCatalog(t *testing.T) {
	catalog := Catalog()
	require.Len(t, catalog, 4)
	assert.Equal(t, "finance", catalog[0].Key)
	assert.Equal(t, "Financial Performance", catalog[0].Name)
	for _, ds := range catalog {
		assert.NotEmpty(t, ds.Description)
		assert.NotEmpty(t, ds.Features)
	}
}
