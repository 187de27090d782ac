package soiltest

import (
	"strings"

	"github.com/agrotech-lab/soiltrack/internal/model/entities"
)

// Validate checks the physical plausibility of a record before it reaches
// the store or the engine (the engine itself never re-validates). It returns
// the full list of violations, not just the first.
func Validate(t *entities.SoilTest) []string {
	var errs []string

	if strings.TrimSpace(t.Location) == "" {
		errs = append(errs, "Location is required")
	}
	if t.PH < 0 || t.PH > 14 {
		errs = append(errs, "pH must be between 0 and 14")
	}
	if t.Nitrogen < 0 {
		errs = append(errs, "Nitrogen must be a positive number")
	}
	if t.Phosphorus < 0 {
		errs = append(errs, "Phosphorus must be a positive number")
	}
	if t.Potassium < 0 {
		errs = append(errs, "Potassium must be a positive number")
	}
	if t.Latitude != nil && (*t.Latitude < -90 || *t.Latitude > 90) {
		errs = append(errs, "Latitude must be between -90 and 90")
	}
	if t.Longitude != nil && (*t.Longitude < -180 || *t.Longitude > 180) {
		errs = append(errs, "Longitude must be between -180 and 180")
	}

	return errs
}
