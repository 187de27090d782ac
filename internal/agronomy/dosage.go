package agronomy

// Amendment dosage tables, in lbs per 1000 sq ft. Hand-authored agronomic
// rates without units conversion or crop-type sensitivity.

// LimeRequirement returns the agricultural lime rate to raise an acidic pH.
// Non-increasing as pH approaches the optimal band.
func LimeRequirement(ph float64) int {
	switch {
	case ph < 5.0:
		return 15
	case ph < 5.5:
		return 12
	case ph < 6.0:
		return 8
	default:
		return 5
	}
}

// SulfurRequirement returns the elemental sulfur rate to lower an alkaline pH.
func SulfurRequirement(ph float64) int {
	switch {
	case ph > 8.0:
		return 10
	case ph > 7.5:
		return 6
	default:
		return 3
	}
}

// NitrogenRequirement returns the 21-0-0 type fertilizer rate for low N (ppm).
func NitrogenRequirement(nitrogen float64) int {
	switch {
	case nitrogen < 10:
		return 4
	case nitrogen < 20:
		return 2
	default:
		return 1
	}
}

// PhosphorusRequirement returns the 0-46-0 type fertilizer rate for low P (ppm).
func PhosphorusRequirement(phosphorus float64) int {
	switch {
	case phosphorus < 5:
		return 3
	case phosphorus < 15:
		return 2
	default:
		return 1
	}
}

// PotassiumRequirement returns the 0-0-60 type fertilizer rate for low K (ppm).
func PotassiumRequirement(potassium float64) int {
	switch {
	case potassium < 50:
		return 4
	case potassium < 100:
		return 3
	default:
		return 1
	}
}
