package sample

import (
	"math"
	"math/rand"
	"time"

	"BizPulse/internal/domain/models"
	"BizPulse/internal/domain/repository"
)

// Profile drives the shape of one generated dataset.
type Profile struct {
	Name            string
	Description     string
	Features        []string
	BaseRevenue     float64
	RevenueVariance float64
	GrowthRate      float64
	CostRatio       float64
	// Compounding applies GrowthRate multiplicatively per period instead
	// of as a flat monthly increment.
	Compounding bool
}

var profiles = map[repository.SampleType]Profile{
	repository.SampleFinance: {
		Name:            "Financial Performance",
		Description:     "12 months of revenue, costs, and profit data",
		Features:        []string{"Revenue trends", "Cost analysis", "Profit margins", "Multi-department"},
		BaseRevenue:     500000,
		RevenueVariance: 200000,
		GrowthRate:      30000,
		CostRatio:       0.6,
	},
	repository.SampleSales: {
		Name:            "Sales Analytics",
		Description:     "Multi-department sales and customer metrics",
		Features:        []string{"Sales performance", "Customer growth", "Department comparison", "Trend analysis"},
		BaseRevenue:     800000,
		RevenueVariance: 300000,
		GrowthRate:      40000,
		CostRatio:       0.5,
	},
	repository.SampleStartup: {
		Name:            "Startup Growth",
		Description:     "High-growth startup metrics with scaling challenges",
		Features:        []string{"Exponential growth", "Burn rate", "Customer acquisition", "Scaling metrics"},
		BaseRevenue:     50000,
		RevenueVariance: 20000,
		GrowthRate:      1.25,
		CostRatio:       0.8,
		Compounding:     true,
	},
	repository.SampleOperations: {
		Name:            "Operational Efficiency",
		Description:     "Operations and productivity metrics",
		Features:        []string{"Efficiency metrics", "Cost optimization", "Resource allocation", "Performance tracking"},
		BaseRevenue:     600000,
		RevenueVariance: 150000,
		GrowthRate:      25000,
		CostRatio:       0.75,
	},
}

var departments = []string{"Sales", "Marketing", "Engineering", "Operations", "Customer Success"}

const (
	recordCount     = 12
	periodDays      = 30
	costsNoise      = 50000
	baseCustomers   = 1000
	customersGrowth = 100
	customersNoise  = 50
)

// ProfileFor returns the profile for a sample type, falling back to the
// default when the type is unknown.
func ProfileFor(st repository.SampleType) Profile {
	if p, ok := profiles[st]; ok {
		return p
	}
	return profiles[repository.DefaultSampleType()]
}

// Catalog lists the available sample datasets for discovery endpoints.
func Catalog() []models.SampleDataset {
	types := repository.SampleTypes()
	out := make([]models.SampleDataset, 0, len(types))
	for _, st := range types {
		p := profiles[st]
		out = append(out, models.SampleDataset{
			Key:         string(st),
			Name:        p.Name,
			Description: p.Description,
			Features:    p.Features,
		})
	}
	return out
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes generation deterministic, used by tests.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithNow overrides the clock the date spine is anchored on.
func WithNow(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// Generator produces synthetic monthly business records per profile.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds twelve monthly records ending near the current date.
// Revenue follows the profile's growth curve with gaussian noise, costs
// track revenue by the cost ratio and customers grow linearly. All
// values are clamped at zero and departments rotate per record.
func (g *Generator) Generate(st repository.SampleType) models.ValidatedRows {
	profile := ProfileFor(st)
	start := g.now().AddDate(0, 0, -365)

	records := make([]models.Record, 0, recordCount)
	for i := 0; i < recordCount; i++ {
		var revenue float64
		if profile.Compounding {
			revenue = profile.BaseRevenue*math.Pow(profile.GrowthRate, float64(i)) +
				g.rng.NormFloat64()*profile.RevenueVariance
		} else {
			revenue = profile.BaseRevenue +
				g.rng.NormFloat64()*profile.RevenueVariance +
				float64(i)*profile.GrowthRate
		}

		costs := revenue*profile.CostRatio + g.rng.NormFloat64()*costsNoise
		customers := int64(baseCustomers + i*customersGrowth + int(g.rng.NormFloat64()*customersNoise))

		if revenue < 0 {
			revenue = 0
		}
		if costs < 0 {
			costs = 0
		}
		if customers < 0 {
			customers = 0
		}

		records = append(records, models.Record{
			Date:       models.DateOf(start.AddDate(0, 0, periodDays*i)),
			Revenue:    revenue,
			Costs:      costs,
			Customers:  customers,
			Department: departments[i%len(departments)],
		})
	}

	return models.ValidatedRows{Records: records, HasDepartment: true}
}
