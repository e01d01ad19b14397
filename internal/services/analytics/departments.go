package analytics

import (
	"sort"

	"BizPulse/internal/domain/models"
)

// AggregateDepartments groups records by department and sums revenue,
// costs and customers per group. Datasets without a department column
// produce an empty slice.
func AggregateDepartments(ds models.Dataset) []models.DepartmentRollup {
	if !ds.HasDepartment {
		return []models.DepartmentRollup{}
	}

	byName := make(map[string]*models.DepartmentRollup)
	for _, rec := range ds.Records {
		rollup, ok := byName[rec.Department]
		if !ok {
			rollup = &models.DepartmentRollup{Department: rec.Department}
			byName[rec.Department] = rollup
		}
		rollup.Revenue += rec.Revenue
		rollup.Costs += rec.Costs
		rollup.Customers += rec.Customers
	}

	rollups := make([]models.DepartmentRollup, 0, len(byName))
	for _, rollup := range byName {
		rollup.Profit = rollup.Revenue - rollup.Costs
		rollups = append(rollups, *rollup)
	}
	sort.Slice(rollups, func(i, j int) bool {
		return rollups[i].Department < rollups[j].Department
	})

	return rollups
}

// FilterDepartment returns a dataset restricted to one department. The
// sentinel "all" and the empty string leave the dataset untouched.
func FilterDepartment(ds models.Dataset, department string) models.Dataset {
	if department == "" || department == "all" || !ds.HasDepartment {
		return ds
	}

	filtered := make([]models.Record, 0, len(ds.Records))
	for _, rec := range ds.Records {
		if rec.Department == department {
			filtered = append(filtered, rec)
		}
	}
	return models.Dataset{Records: filtered, HasDepartment: ds.HasDepartment}
}
