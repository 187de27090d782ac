package agronomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrotech-lab/soiltrack/internal/model/entities"
)

func TestRecommendDeterministic(t *testing.T) {
	a := Recommend(5.5, 10, 10, 50)
	b := Recommend(5.5, 10, 10, 50)
	assert.Equal(t, a, b)
}

func TestRecommendAcidicSoilWithDeficiencies(t *testing.T) {
	rec := Recommend(5.5, 10, 10, 50)

	require.Len(t, rec.Actions, 4)
	assert.Equal(t, entities.PriorityHigh, rec.Priority)
	assert.Contains(t, rec.Overall, "Immediate attention")

	lime := rec.Actions[0]
	assert.Equal(t, entities.NutrientPH, lime.Nutrient)
	assert.Equal(t, "Apply agricultural lime", lime.Action)
	assert.Equal(t, "8 lbs per 1000 sq ft", lime.Amount)
	assert.Equal(t, entities.PriorityHigh, lime.Priority)

	assert.Equal(t, "2 lbs per 1000 sq ft", rec.Actions[1].Amount)
	assert.Equal(t, "2 lbs per 1000 sq ft", rec.Actions[2].Amount)
	assert.Equal(t, "4 lbs per 1000 sq ft", rec.Actions[3].Amount)
}

func TestRecommendAllOptimal(t *testing.T) {
	rec := Recommend(6.5, 30, 30, 200)

	assert.Empty(t, rec.Actions)
	assert.Equal(t, entities.PriorityLow, rec.Priority)
	assert.Contains(t, rec.Overall, "generally good")
	assert.Contains(t, rec.PHRecommendation, "optimal")
	assert.Contains(t, rec.NitrogenRecommendation, "adequate")
	assert.Contains(t, rec.PhosphorusRecommendation, "sufficient")
	assert.Contains(t, rec.PotassiumRecommendation, "adequate")
}

func TestRecommendAlkalineSoilWithExcesses(t *testing.T) {
	rec := Recommend(8.0, 60, 60, 350)

	require.Len(t, rec.Actions, 4)
	assert.Equal(t, entities.PriorityHigh, rec.Priority)

	sulfur := rec.Actions[0]
	assert.Equal(t, "Apply elemental sulfur", sulfur.Action)
	assert.Equal(t, "6 lbs per 1000 sq ft", sulfur.Amount)
	assert.Equal(t, entities.PriorityHigh, sulfur.Priority)

	// excesses are advisory only
	for _, a := range rec.Actions[1:] {
		assert.Equal(t, entities.PriorityLow, a.Priority)
	}
	assert.Equal(t, "Monitor and test again in 6 months", rec.Actions[1].Amount)
	assert.Equal(t, "Use low or no-phosphorus fertilizers", rec.Actions[2].Amount)
	assert.Equal(t, "Monitor levels and retest in 12 months", rec.Actions[3].Amount)
}

func TestRecommendMixedMediumPriority(t *testing.T) {
	rec := Recommend(7.0, 15, 60, 100)

	require.Len(t, rec.Actions, 2)
	assert.Equal(t, entities.PriorityMedium, rec.Priority)
	assert.Contains(t, rec.Overall, "Moderate nutrient deficiencies")

	assert.Equal(t, entities.NutrientNitrogen, rec.Actions[0].Nutrient)
	assert.Equal(t, "2 lbs per 1000 sq ft", rec.Actions[0].Amount)
	assert.Equal(t, entities.PriorityMedium, rec.Actions[0].Priority)
	assert.Equal(t, entities.NutrientPhosphorus, rec.Actions[1].Nutrient)
	assert.Equal(t, entities.PriorityLow, rec.Actions[1].Priority)
}

func TestPHBoundariesAreOptimal(t *testing.T) {
	for _, ph := range []float64{6.0, 7.5} {
		rec := Recommend(ph, 30, 30, 200)
		assert.Empty(t, rec.Actions, "pH %v must not emit an action", ph)
		assert.Contains(t, rec.PHRecommendation, "optimal")
	}

	assert.Equal(t, LevelLow, classifyPH(5.999))
	assert.Equal(t, LevelHigh, classifyPH(7.5001))
}

func TestAdequateBandBoundariesEmitNoActions(t *testing.T) {
	cases := []struct{ ph, n, p, k float64 }{
		{6.5, 20, 30, 200},
		{6.5, 50, 30, 200},
		{6.5, 30, 15, 200},
		{6.5, 30, 50, 200},
		{6.5, 30, 30, 100},
		{6.5, 30, 30, 300},
	}
	for _, c := range cases {
		rec := Recommend(c.ph, c.n, c.p, c.k)
		assert.Empty(t, rec.Actions, "inputs %+v", c)
		assert.Equal(t, entities.PriorityLow, rec.Priority)
	}
}

func TestPriorityIsMaxOverActions(t *testing.T) {
	cases := []struct {
		name        string
		ph, n, p, k float64
		want        entities.Priority
	}{
		{"no actions", 6.5, 30, 30, 200, entities.PriorityLow},
		{"only excess advisories", 6.5, 60, 60, 350, entities.PriorityLow},
		{"one deficiency", 6.5, 10, 30, 200, entities.PriorityMedium},
		{"deficiency plus excess", 6.5, 10, 60, 200, entities.PriorityMedium},
		{"ph dominates", 5.0, 10, 60, 200, entities.PriorityHigh},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := Recommend(c.ph, c.n, c.p, c.k)
			assert.Equal(t, c.want, rec.Priority)
			max := entities.PriorityLow
			for _, a := range rec.Actions {
				max = max.Max(a.Priority)
			}
			assert.Equal(t, max, rec.Priority)
		})
	}
}

func TestDosageTables(t *testing.T) {
	assert.Equal(t, 15, LimeRequirement(4.2))
	assert.Equal(t, 12, LimeRequirement(5.0))
	assert.Equal(t, 8, LimeRequirement(5.5))
	assert.Equal(t, 5, LimeRequirement(6.5))

	assert.Equal(t, 10, SulfurRequirement(8.5))
	assert.Equal(t, 6, SulfurRequirement(8.0))
	assert.Equal(t, 3, SulfurRequirement(7.0))

	assert.Equal(t, 4, NitrogenRequirement(5))
	assert.Equal(t, 2, NitrogenRequirement(15))
	assert.Equal(t, 1, NitrogenRequirement(40))

	assert.Equal(t, 3, PhosphorusRequirement(2))
	assert.Equal(t, 2, PhosphorusRequirement(10))
	assert.Equal(t, 1, PhosphorusRequirement(30))

	assert.Equal(t, 4, PotassiumRequirement(25))
	assert.Equal(t, 3, PotassiumRequirement(75))
	assert.Equal(t, 1, PotassiumRequirement(150))
}

// LimeRequirement never increases as pH rises toward the optimal band, and
// SulfurRequirement never decreases as pH rises past it.
func TestDosageMonotonicity(t *testing.T) {
	prev := 16
	for ph := 4.0; ph < 6.0; ph += 0.1 {
		d := LimeRequirement(ph)
		assert.LessOrEqual(t, d, prev, "ph=%v", ph)
		prev = d
	}

	prev = 0
	for ph := 7.6; ph < 9.0; ph += 0.1 {
		d := SulfurRequirement(ph)
		assert.GreaterOrEqual(t, d, prev, "ph=%v", ph)
		prev = d
	}
}

// The engine is total: implausible inputs still produce a valid structure.
func TestRecommendImplausibleInputs(t *testing.T) {
	rec := Recommend(-3, -10, 9999, -1)
	assert.Equal(t, entities.PriorityHigh, rec.Priority)
	require.NotEmpty(t, rec.Actions)
	for _, a := range rec.Actions {
		assert.NotEmpty(t, a.Action)
		assert.NotEmpty(t, a.Amount)
	}
}

func TestRecommendTestWrapper(t *testing.T) {
	st := entities.SoilTest{PH: 7.0, Nitrogen: 15, Phosphorus: 60, Potassium: 100}
	assert.Equal(t, Recommend(7.0, 15, 60, 100), RecommendTest(st))
}
