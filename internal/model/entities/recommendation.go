package entities

// Priority orders amendment urgency: high > medium > low.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank maps a priority onto an integer scale so callers can take a max.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Max returns the more urgent of two priorities.
func (p Priority) Max(other Priority) Priority {
	if other.Rank() > p.Rank() {
		return other
	}
	return p
}

// Nutrient identifies which measurement an Action addresses.
type Nutrient string

const (
	NutrientPH         Nutrient = "pH adjustment"
	NutrientNitrogen   Nutrient = "nitrogen"
	NutrientPhosphorus Nutrient = "phosphorus"
	NutrientPotassium  Nutrient = "potassium"
)

// Action is one concrete amendment step: what to apply, how much, how urgent.
// Amount is either a dosage ("12 lbs per 1000 sq ft") or a monitoring
// instruction for excess levels.
type Action struct {
	Nutrient Nutrient `json:"type"`
	Action   string   `json:"action"`
	Amount   string   `json:"amount"`
	Priority Priority `json:"priority"`
}

// Recommendation is the engine output: per-nutrient narrative, the rolled-up
// priority and the ordered amendment actions. It carries no identity and is
// rebuilt from the measurements on every call.
type Recommendation struct {
	Overall                  string   `json:"overall"`
	PHRecommendation         string   `json:"ph_recommendation"`
	NitrogenRecommendation   string   `json:"nitrogen_recommendation"`
	PhosphorusRecommendation string   `json:"phosphorus_recommendation"`
	PotassiumRecommendation  string   `json:"potassium_recommendation"`
	Priority                 Priority `json:"priority"`
	Actions                  []Action `json:"actions"`
}

// HealthReport is the secondary banded soil-health score (0-100).
type HealthReport struct {
	Score       float64 `json:"score"`
	Status      string  `json:"status"`
	Description string  `json:"description"`
}
