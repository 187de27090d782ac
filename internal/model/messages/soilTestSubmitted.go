package messages

import "time"

// SoilTestSubmitted is the payload a field probe kit publishes on
// soiltest/submitted/{station} when a technician completes a reading.
type SoilTestSubmitted struct {
	StationID  string    `json:"station_id"`
	Location   string    `json:"location"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
	PH         float64   `json:"ph"`
	Nitrogen   float64   `json:"nitrogen"`
	Phosphorus float64   `json:"phosphorus"`
	Potassium  float64   `json:"potassium"`
	Notes      string    `json:"notes,omitempty"`
	TestDate   string    `json:"test_date,omitempty"` // YYYY-MM-DD, defaults to submission day
	Timestamp  time.Time `json:"timestamp"`
}
