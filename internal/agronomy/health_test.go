package agronomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthScoreExcellent(t *testing.T) {
	r := HealthScore(6.5, 30, 30, 200)
	assert.Equal(t, 100.0, r.Score)
	assert.Equal(t, "Excellent", r.Status)
	assert.Contains(t, r.Description, "excellent condition")
}

func TestHealthScorePoor(t *testing.T) {
	r := HealthScore(3.0, 0, 0, 0)
	assert.Equal(t, 0.0, r.Score)
	assert.Equal(t, "Poor", r.Status)
}

func TestHealthScoreBands(t *testing.T) {
	// pH in the 0.7 band, everything else ideal: (0.7+3)/4 = 92.5.
	r := HealthScore(5.7, 30, 30, 200)
	assert.Equal(t, 92.5, r.Score)
	assert.Equal(t, "Excellent", r.Status)

	// Two measurements in the 0.4 band: (0.4+0.4+1+1)/4 = 70.
	r = HealthScore(5.2, 12, 30, 200)
	assert.Equal(t, 70.0, r.Score)
	assert.Equal(t, "Good", r.Status)

	// All four in the 0.4 band: 40 is still Fair.
	r = HealthScore(5.2, 12, 7, 60)
	assert.Equal(t, 40.0, r.Score)
	assert.Equal(t, "Fair", r.Status)
}

func TestHealthScoreIndependentOfRecommend(t *testing.T) {
	// An excess that triggers advisory actions can still score well.
	r := HealthScore(6.5, 55, 30, 200)
	assert.Equal(t, "Excellent", r.Status)
	rec := Recommend(6.5, 55, 30, 200)
	assert.NotEmpty(t, rec.Actions)
}
