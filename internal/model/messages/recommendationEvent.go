package messages

import (
	"time"

	"github.com/agrotech-lab/soiltrack/internal/model/entities"
)

// RecommendationEvent is published by the ingest service after a submitted
// test has been stored and classified, to record WHAT was recommended.
type RecommendationEvent struct {
	DecisionID  string            `json:"decision_id"`
	StationID   string            `json:"station_id"`
	TestID      int64             `json:"test_id"`
	Priority    entities.Priority `json:"priority"`
	ActionCount int               `json:"action_count"`
	Timestamp   time.Time         `json:"timestamp"`
}
