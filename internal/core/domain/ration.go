package domain

import "fmt"

// RationStatus classifies a per-person-per-day allocation
type RationStatus string

const (
	RationAdequate        RationStatus = "Adequate"
	RationCritical        RationStatus = "Critical"
	RationNeedsEstimation RationStatus = "NeedsEstimation"
)

// Label returns the display label shown to users
func (s RationStatus) Label() string {
	switch s {
	case RationAdequate:
		return "✅ Adequate"
	case RationCritical:
		return "⚠ Critical"
	case RationNeedsEstimation:
		return "ℹ Needs Estimation"
	default:
		return string(s)
	}
}

// ResourceKey identifies one kind of rationed resource
type ResourceKey string

const (
	ResourceWater     ResourceKey = "water_l"
	ResourceFoodKcal  ResourceKey = "food_kcal"
	ResourceFoodItems ResourceKey = "food_items"
	ResourceMedicine  ResourceKey = "medicine_units"
)

// Resources holds the optional quantities of a rationing request.
// A nil field is absent, which is different from a zero quantity.
type Resources struct {
	WaterLiters   *float64 `json:"water_l,omitempty"`
	FoodKcal      *float64 `json:"food_kcal,omitempty"`
	FoodItems     *string  `json:"food_items,omitempty"`
	MedicineUnits *int     `json:"medicine_units,omitempty"`
}

// Empty reports whether no resource is present
func (r Resources) Empty() bool {
	return r.WaterLiters == nil && r.FoodKcal == nil && r.FoodItems == nil && r.MedicineUnits == nil
}

// Float64 returns a pointer to v, for building Resources
func Float64(v float64) *float64 { return &v }

// Int returns a pointer to v, for building Resources
func Int(v int) *int { return &v }

// String returns a pointer to v, for building Resources
func String(v string) *string { return &v }

// RationRequest is a rationing request over a population and a horizon
type RationRequest struct {
	Resources Resources `json:"resources"`
	People    int       `json:"people"`
	Days      int       `json:"days"`
}

// Validate checks the preconditions of the rationing engine
func (r RationRequest) Validate() error {
	if r.People <= 0 || r.Days <= 0 {
		return fmt.Errorf("%w: people and days must be greater than 0", ErrInvalidInput)
	}
	if r.Resources.Empty() {
		return fmt.Errorf("%w: at least one resource must be provided", ErrInvalidInput)
	}
	return nil
}

// RationResult is one allocation row. PerPersonPerDay is nil for food items.
type RationResult struct {
	Resource        string       `json:"resource"`
	Key             ResourceKey  `json:"key"`
	PerPersonPerDay *float64     `json:"per_person_per_day,omitempty"`
	Items           string       `json:"items,omitempty"`
	Days            int          `json:"days"`
	Status          RationStatus `json:"status"`
	Guideline       string       `json:"guideline"`
}

// ResourceStatus is the condensed status block shown next to an explanation
type ResourceStatus struct {
	Resource string       `json:"resource"`
	Status   RationStatus `json:"status"`
	Label    string       `json:"label"`
	Details  string       `json:"details"`
}

// RationExplanation is a natural-language explanation of an allocation
type RationExplanation struct {
	Lines          []string         `json:"explanation"`
	ResourceStatus []ResourceStatus `json:"resource_status"`
	Allocation     []RationResult   `json:"allocation"`
	Generated      bool             `json:"generated"`
}

// MessageExplanationFailed is the explanation used when generation fails
const MessageExplanationFailed = "⚠ The AI could not generate an explanation. Follow the allocation above and prioritize children, elderly, and injured."

// ExplainRequest asks for a natural-language explanation of an allocation
type ExplainRequest struct {
	RationRequest
	Language string `json:"lang"` // display name or code
}
