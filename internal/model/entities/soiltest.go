package entities

// SoilTest is a single laboratory (or field-kit) soil measurement record.
// The engine reads only PH/Nitrogen/Phosphorus/Potassium; the rest is
// descriptive payload carried by the store and the API.
type SoilTest struct {
	ID         int64    `json:"id"`
	Location   string   `json:"location"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	PH         float64  `json:"ph"`
	Nitrogen   float64  `json:"nitrogen"`   // ppm
	Phosphorus float64  `json:"phosphorus"` // ppm
	Potassium  float64  `json:"potassium"`  // ppm
	Notes      string   `json:"notes"`
	TestDate   string   `json:"testDate"` // YYYY-MM-DD
}
