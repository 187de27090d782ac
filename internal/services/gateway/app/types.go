package app

// TestRecord is the slice of a soil test the dashboard needs. It matches
// the JSON shape the soiltest service returns on its list endpoint.
type TestRecord struct {
	ID         int64   `json:"id"`
	Location   string  `json:"location"`
	PH         float64 `json:"ph"`
	Nitrogen   float64 `json:"nitrogen"`
	Phosphorus float64 `json:"phosphorus"`
	Potassium  float64 `json:"potassium"`
	TestDate   string  `json:"testDate"`
	Priority   string  `json:"priority"` // filled in by the gateway
}

// TrendPoint mirrors the trend service response.
type TrendPoint struct {
	StationID string  `json:"station_id,omitempty"`
	Nutrient  string  `json:"nutrient"`
	Value     float64 `json:"value"`
	Time      string  `json:"time"`
}

type DashboardData struct {
	Tests      []TestRecord       `json:"tests"`
	Trend      []TrendPoint       `json:"trend"`
	Stats      map[string]float64 `json:"stats"`
	Priorities map[string]int     `json:"priorities"`
	Degraded   bool               `json:"degraded"`
}
