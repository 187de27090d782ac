package agronomy

import (
	"math"

	"github.com/agrotech-lab/soiltrack/internal/model/entities"
)

// healthBand scores one measurement against nested tolerance bands around
// its ideal range: tightest band 1.0, then 0.7, then 0.4, outside all 0.
type healthBand struct {
	loIdeal, hiIdeal float64
	loGood, hiGood   float64
	loFair, hiFair   float64
}

func (b healthBand) score(v float64) float64 {
	switch {
	case v >= b.loIdeal && v <= b.hiIdeal:
		return 1.0
	case v >= b.loGood && v <= b.hiGood:
		return 0.7
	case v >= b.loFair && v <= b.hiFair:
		return 0.4
	default:
		return 0
	}
}

var (
	phBand         = healthBand{6.0, 7.0, 5.5, 7.5, 5.0, 8.0}
	nitrogenBand   = healthBand{20, 50, 15, 60, 10, 80}
	phosphorusBand = healthBand{15, 50, 10, 60, 5, 80}
	potassiumBand  = healthBand{100, 300, 75, 400, 50, 500}
)

// HealthScore computes the banded 0-100 soil-health score. It is independent
// of Recommend and may be evaluated in isolation.
func HealthScore(ph, nitrogen, phosphorus, potassium float64) entities.HealthReport {
	total := phBand.score(ph) +
		nitrogenBand.score(nitrogen) +
		phosphorusBand.score(phosphorus) +
		potassiumBand.score(potassium)

	pct := math.Round(total/4*100*10) / 10

	var status, desc string
	switch {
	case pct >= 80:
		status = "Excellent"
		desc = "Your soil is in excellent condition with optimal nutrient levels."
	case pct >= 60:
		status = "Good"
		desc = "Your soil is in good condition with minor adjustments needed."
	case pct >= 40:
		status = "Fair"
		desc = "Your soil needs some attention to improve nutrient levels."
	default:
		status = "Poor"
		desc = "Your soil requires significant improvement in multiple areas."
	}

	return entities.HealthReport{Score: pct, Status: status, Description: desc}
}
