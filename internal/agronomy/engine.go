// Package agronomy implements the fertilizer recommendation engine: a pure,
// deterministic classifier from four raw soil measurements (pH, nitrogen,
// phosphorus, potassium) to per-nutrient diagnoses, amendment actions and a
// rolled-up priority. It performs no I/O, reads no clock and never fails:
// every real-numbered input yields a structurally valid Recommendation, so
// physical-plausibility validation belongs to the caller.
package agronomy

import (
	"fmt"
	"strconv"

	"github.com/agrotech-lab/soiltrack/internal/model/entities"
)

// Level is the tagged outcome of a single nutrient classification.
type Level int

const (
	LevelLow Level = iota
	LevelAdequate
	LevelHigh
)

// Classification thresholds. The adequate band is boundary-inclusive on
// both sides; values exactly on a boundary never emit an action.
const (
	phAcidicBelow   = 6.0
	phAlkalineAbove = 7.5
	nitrogenLow     = 20.0
	nitrogenHigh    = 50.0
	phosphorusLow   = 15.0
	phosphorusHigh  = 50.0
	potassiumLow    = 100.0
	potassiumHigh   = 300.0
)

func classifyPH(ph float64) Level {
	switch {
	case ph < phAcidicBelow:
		return LevelLow
	case ph > phAlkalineAbove:
		return LevelHigh
	default:
		return LevelAdequate
	}
}

func classifyBand(v, low, high float64) Level {
	switch {
	case v < low:
		return LevelLow
	case v > high:
		return LevelHigh
	default:
		return LevelAdequate
	}
}

// Recommend maps the four measurements to the full recommendation structure.
// It is total over all float64 inputs and bit-for-bit deterministic; actions
// are emitted in fixed pH, N, P, K order.
func Recommend(ph, nitrogen, phosphorus, potassium float64) entities.Recommendation {
	rec := entities.Recommendation{Actions: []entities.Action{}}

	switch classifyPH(ph) {
	case LevelLow:
		rec.PHRecommendation = fmt.Sprintf(
			"Soil is acidic (pH %s). Apply lime to raise pH to 6.0-7.0 range for optimal nutrient availability.", num(ph))
		rec.Actions = append(rec.Actions, entities.Action{
			Nutrient: entities.NutrientPH,
			Action:   "Apply agricultural lime",
			Amount:   fmt.Sprintf("%d lbs per 1000 sq ft", LimeRequirement(ph)),
			Priority: entities.PriorityHigh,
		})
	case LevelHigh:
		rec.PHRecommendation = fmt.Sprintf(
			"Soil is alkaline (pH %s). Apply sulfur or organic matter to lower pH.", num(ph))
		rec.Actions = append(rec.Actions, entities.Action{
			Nutrient: entities.NutrientPH,
			Action:   "Apply elemental sulfur",
			Amount:   fmt.Sprintf("%d lbs per 1000 sq ft", SulfurRequirement(ph)),
			Priority: entities.PriorityHigh,
		})
	default:
		rec.PHRecommendation = fmt.Sprintf("pH level (%s) is optimal for most crops.", num(ph))
	}

	switch classifyBand(nitrogen, nitrogenLow, nitrogenHigh) {
	case LevelLow:
		rec.NitrogenRecommendation = fmt.Sprintf(
			"Low nitrogen levels (%s ppm). Apply nitrogen-rich fertilizer or compost.", num(nitrogen))
		rec.Actions = append(rec.Actions, entities.Action{
			Nutrient: entities.NutrientNitrogen,
			Action:   "Apply nitrogen fertilizer (21-0-0 or similar)",
			Amount:   fmt.Sprintf("%d lbs per 1000 sq ft", NitrogenRequirement(nitrogen)),
			Priority: entities.PriorityMedium,
		})
	case LevelHigh:
		rec.NitrogenRecommendation = fmt.Sprintf(
			"High nitrogen levels (%s ppm). Reduce nitrogen fertilization to prevent burning and runoff.", num(nitrogen))
		rec.Actions = append(rec.Actions, entities.Action{
			Nutrient: entities.NutrientNitrogen,
			Action:   "Reduce or skip nitrogen fertilization",
			Amount:   "Monitor and test again in 6 months",
			Priority: entities.PriorityLow,
		})
	default:
		rec.NitrogenRecommendation = fmt.Sprintf("Nitrogen levels (%s ppm) are adequate.", num(nitrogen))
	}

	switch classifyBand(phosphorus, phosphorusLow, phosphorusHigh) {
	case LevelLow:
		rec.PhosphorusRecommendation = fmt.Sprintf(
			"Low phosphorus levels (%s ppm). Apply phosphorus fertilizer for strong root development.", num(phosphorus))
		rec.Actions = append(rec.Actions, entities.Action{
			Nutrient: entities.NutrientPhosphorus,
			Action:   "Apply phosphorus fertilizer (0-46-0 or bone meal)",
			Amount:   fmt.Sprintf("%d lbs per 1000 sq ft", PhosphorusRequirement(phosphorus)),
			Priority: entities.PriorityMedium,
		})
	case LevelHigh:
		rec.PhosphorusRecommendation = fmt.Sprintf(
			"High phosphorus levels (%s ppm). Avoid phosphorus fertilizers.", num(phosphorus))
		rec.Actions = append(rec.Actions, entities.Action{
			Nutrient: entities.NutrientPhosphorus,
			Action:   "Skip phosphorus fertilization",
			Amount:   "Use low or no-phosphorus fertilizers",
			Priority: entities.PriorityLow,
		})
	default:
		rec.PhosphorusRecommendation = fmt.Sprintf("Phosphorus levels (%s ppm) are sufficient.", num(phosphorus))
	}

	switch classifyBand(potassium, potassiumLow, potassiumHigh) {
	case LevelLow:
		rec.PotassiumRecommendation = fmt.Sprintf(
			"Low potassium levels (%s ppm). Apply potassium fertilizer for plant health and disease resistance.", num(potassium))
		rec.Actions = append(rec.Actions, entities.Action{
			Nutrient: entities.NutrientPotassium,
			Action:   "Apply potassium fertilizer (0-0-60 or potash)",
			Amount:   fmt.Sprintf("%d lbs per 1000 sq ft", PotassiumRequirement(potassium)),
			Priority: entities.PriorityMedium,
		})
	case LevelHigh:
		rec.PotassiumRecommendation = fmt.Sprintf(
			"High potassium levels (%s ppm). Reduce potassium fertilization.", num(potassium))
		rec.Actions = append(rec.Actions, entities.Action{
			Nutrient: entities.NutrientPotassium,
			Action:   "Reduce potassium fertilization",
			Amount:   "Monitor levels and retest in 12 months",
			Priority: entities.PriorityLow,
		})
	default:
		rec.PotassiumRecommendation = fmt.Sprintf("Potassium levels (%s ppm) are adequate.", num(potassium))
	}

	// Roll-up: overall priority is the max severity over the emitted
	// actions; the order above never influences it.
	rec.Priority = entities.PriorityLow
	for _, a := range rec.Actions {
		rec.Priority = rec.Priority.Max(a.Priority)
	}
	switch rec.Priority {
	case entities.PriorityHigh:
		rec.Overall = "Immediate attention required for soil pH adjustment. Address pH issues first, then nutrient deficiencies."
	case entities.PriorityMedium:
		rec.Overall = "Moderate nutrient deficiencies detected. Apply recommended fertilizers for optimal plant growth."
	default:
		rec.Overall = "Soil nutrient levels are generally good. Continue regular monitoring and maintenance."
	}

	return rec
}

// RecommendTest is a convenience wrapper over the engine for stored records.
func RecommendTest(t entities.SoilTest) entities.Recommendation {
	return Recommend(t.PH, t.Nitrogen, t.Phosphorus, t.Potassium)
}

// num renders a measurement the shortest way that round-trips ("5.5", "30").
func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
