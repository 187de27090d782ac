package soiltest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agrotech-lab/soiltrack/internal/model/entities"
)

func validTest() *entities.SoilTest {
	return &entities.SoilTest{
		Location:   "West vineyard",
		PH:         6.5,
		Nitrogen:   30,
		Phosphorus: 30,
		Potassium:  200,
	}
}

func TestValidateOK(t *testing.T) {
	assert.Empty(t, Validate(validTest()))
}

func TestValidateCollectsAllErrors(t *testing.T) {
	lat, lon := 120.0, -200.0
	bad := &entities.SoilTest{
		Location:   "  ",
		PH:         15,
		Nitrogen:   -1,
		Phosphorus: -1,
		Potassium:  -1,
		Latitude:   &lat,
		Longitude:  &lon,
	}
	errs := Validate(bad)
	assert.Len(t, errs, 7)
	assert.Contains(t, errs, "Location is required")
	assert.Contains(t, errs, "pH must be between 0 and 14")
	assert.Contains(t, errs, "Latitude must be between -90 and 90")
	assert.Contains(t, errs, "Longitude must be between -180 and 180")
}

func TestValidateRanges(t *testing.T) {
	tt := validTest()
	tt.PH = -0.1
	assert.Contains(t, Validate(tt), "pH must be between 0 and 14")

	tt = validTest()
	tt.PH = 0
	assert.Empty(t, Validate(tt), "pH 0 is implausible but inside the accepted range")

	tt = validTest()
	tt.Nitrogen = -0.5
	assert.Contains(t, Validate(tt), "Nitrogen must be a positive number")

	lat := 90.0
	tt = validTest()
	tt.Latitude = &lat
	assert.Empty(t, Validate(tt))
}

func TestValidateOptionalCoordinates(t *testing.T) {
	tt := validTest()
	tt.Latitude = nil
	tt.Longitude = nil
	assert.Empty(t, Validate(tt))
}
