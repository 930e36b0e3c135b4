package services

import (
	"fmt"
	"math"

	"github.com/firstresponse-ai/firstresponse-core/internal/core/domain"
)

// Survival thresholds per person per day
const (
	WaterCriticalLiters  = 2.0
	FoodCriticalKcal     = 1800.0
	MedicineCriticalUnit = 1.0
)

// Guidelines shown next to each allocation
const (
	GuidelineWater     = "Aim for 2.5–3L/day. Use sparingly if below."
	GuidelineFoodKcal  = "Aim for ~2100 kcal/day. Prioritize children, elderly, injured."
	GuidelineFoodItems = "Food items will be interpreted and converted to kcal by the AI."
	GuidelineMedicine  = "Ensure priority for most vulnerable if supply limited."
)

// Allocate computes one row per present resource in the order water,
// food kcal, food items, medicine. Status uses the unrounded daily value;
// the reported value is rounded (water 2 decimals, kcal integer, medicine
// 1 decimal). Deterministic for identical input.
func Allocate(res domain.Resources, people, days int) ([]domain.RationResult, error) {
	req := domain.RationRequest{Resources: res, People: people, Days: days}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := validateQuantities(res); err != nil {
		return nil, err
	}

	// float64 before multiplying: the int product can wrap to zero
	personDays := float64(people) * float64(days)
	results := make([]domain.RationResult, 0, 4)

	if res.WaterLiters != nil {
		row, err := perDayRow("water", *res.WaterLiters, personDays, 2, WaterCriticalLiters)
		if err != nil {
			return nil, err
		}
		row.Resource, row.Key, row.Days, row.Guideline = "Water", domain.ResourceWater, days, GuidelineWater
		results = append(results, row)
	}

	if res.FoodKcal != nil {
		row, err := perDayRow("food kcal", *res.FoodKcal, personDays, 0, FoodCriticalKcal)
		if err != nil {
			return nil, err
		}
		row.Resource, row.Key, row.Days, row.Guideline = "Food", domain.ResourceFoodKcal, days, GuidelineFoodKcal
		results = append(results, row)
	}

	if res.FoodItems != nil {
		results = append(results, domain.RationResult{
			Resource:  "Food",
			Key:       domain.ResourceFoodItems,
			Items:     *res.FoodItems,
			Days:      days,
			Status:    domain.RationNeedsEstimation,
			Guideline: GuidelineFoodItems,
		})
	}

	if res.MedicineUnits != nil {
		row, err := perDayRow("medicine", float64(*res.MedicineUnits), personDays, 1, MedicineCriticalUnit)
		if err != nil {
			return nil, err
		}
		row.Resource, row.Key, row.Days, row.Guideline = "Medicine", domain.ResourceMedicine, days, GuidelineMedicine
		results = append(results, row)
	}

	return results, nil
}

// ResourceStatuses condenses an allocation into the status block shown next
// to an explanation
func ResourceStatuses(allocation []domain.RationResult) []domain.ResourceStatus {
	statuses := make([]domain.ResourceStatus, 0, len(allocation))
	for _, r := range allocation {
		var details string
		switch r.Key {
		case domain.ResourceWater:
			details = fmt.Sprintf("%.1fL per person per day", *r.PerPersonPerDay)
		case domain.ResourceFoodKcal:
			details = fmt.Sprintf("%.0f kcal per person per day", *r.PerPersonPerDay)
		case domain.ResourceFoodItems:
			details = "Based on available items: " + r.Items
		case domain.ResourceMedicine:
			details = fmt.Sprintf("%.1f units per person", *r.PerPersonPerDay)
		}
		statuses = append(statuses, domain.ResourceStatus{
			Resource: r.Resource,
			Status:   r.Status,
			Label:    r.Status.Label(),
			Details:  details,
		})
	}
	return statuses
}

func validateQuantities(res domain.Resources) error {
	if res.WaterLiters != nil && (*res.WaterLiters < 0 || math.IsNaN(*res.WaterLiters) || math.IsInf(*res.WaterLiters, 0)) {
		return fmt.Errorf("%w: water must be a non-negative number", domain.ErrInvalidInput)
	}
	if res.FoodKcal != nil && (*res.FoodKcal < 0 || math.IsNaN(*res.FoodKcal) || math.IsInf(*res.FoodKcal, 0)) {
		return fmt.Errorf("%w: food kcal must be a non-negative number", domain.ErrInvalidInput)
	}
	if res.MedicineUnits != nil && *res.MedicineUnits < 0 {
		return fmt.Errorf("%w: medicine units must be non-negative", domain.ErrInvalidInput)
	}
	return nil
}

func threshold(daily, critical float64) domain.RationStatus {
	if daily < critical {
		return domain.RationCritical
	}
	return domain.RationAdequate
}

// perDayRow fills the per-person-per-day value and status. Quantities too
// large to divide and round as finite numbers are rejected.
func perDayRow(name string, total, personDays float64, decimals int, critical float64) (domain.RationResult, error) {
	daily := total / personDays
	rounded, ok := roundTo(daily, decimals)
	if !ok {
		return domain.RationResult{}, fmt.Errorf("%w: %s quantity out of range", domain.ErrInvalidInput, name)
	}
	return domain.RationResult{
		PerPersonPerDay: &rounded,
		Status:          threshold(daily, critical),
	}, nil
}

func roundTo(v float64, decimals int) (float64, bool) {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	p := math.Pow(10, float64(decimals))
	r := math.Round(v*p) / p
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return 0, false
	}
	return r, true
}
