package soiltest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAPI(t *testing.T) *http.ServeMux {
	t.Helper()
	return NewHTTPMux(NewService(newTestStore(t), nil))
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

const createBody = `{
	"location": "North field",
	"latitude": 41.9,
	"longitude": 12.5,
	"ph": 5.5,
	"nitrogen": 10,
	"phosphorus": 10,
	"potassium": 50,
	"notes": "spring sampling",
	"testDate": "2026-03-14"
}`

func TestAPICreateReturnsRecommendations(t *testing.T) {
	mux := newTestAPI(t)

	rr := doJSON(t, mux, http.MethodPost, "/api/soil-tests", createBody)
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp struct {
		ID              int64  `json:"id"`
		Location        string `json:"location"`
		TestDate        string `json:"testDate"`
		Recommendations struct {
			Priority string `json:"priority"`
			Actions  []struct {
				Type   string `json:"type"`
				Amount string `json:"amount"`
			} `json:"actions"`
		} `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Positive(t, resp.ID)
	assert.Equal(t, "North field", resp.Location)
	assert.Equal(t, "2026-03-14", resp.TestDate)
	assert.Equal(t, "high", resp.Recommendations.Priority)
	require.Len(t, resp.Recommendations.Actions, 4)
	assert.Equal(t, "pH adjustment", resp.Recommendations.Actions[0].Type)
	assert.Equal(t, "8 lbs per 1000 sq ft", resp.Recommendations.Actions[0].Amount)
}

func TestAPICreateValidationErrors(t *testing.T) {
	mux := newTestAPI(t)

	rr := doJSON(t, mux, http.MethodPost, "/api/soil-tests",
		`{"location":"","ph":15,"nitrogen":-1,"phosphorus":1,"potassium":1}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp struct {
		Errors []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Errors, "Location is required")
	assert.Contains(t, resp.Errors, "pH must be between 0 and 14")
}

func TestAPICreateInvalidJSON(t *testing.T) {
	mux := newTestAPI(t)
	rr := doJSON(t, mux, http.MethodPost, "/api/soil-tests", `{"ph": "not a number"`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAPIGetAndNotFound(t *testing.T) {
	mux := newTestAPI(t)

	rr := doJSON(t, mux, http.MethodPost, "/api/soil-tests", createBody)
	require.Equal(t, http.StatusCreated, rr.Code)
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	rr = doJSON(t, mux, http.MethodGet, fmt.Sprintf("/api/soil-tests/%d", created.ID), "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"recommendations"`)

	rr = doJSON(t, mux, http.MethodGet, "/api/soil-tests/9999", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Test not found")

	rr = doJSON(t, mux, http.MethodGet, "/api/soil-tests/abc", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAPIListAndLocationFilter(t *testing.T) {
	mux := newTestAPI(t)

	rr := doJSON(t, mux, http.MethodPost, "/api/soil-tests", createBody)
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = doJSON(t, mux, http.MethodPost, "/api/soil-tests",
		`{"location":"South orchard","ph":6.5,"nitrogen":30,"phosphorus":30,"potassium":200}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(t, mux, http.MethodGet, "/api/soil-tests", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var all []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &all))
	assert.Len(t, all, 2)

	rr = doJSON(t, mux, http.MethodGet, "/api/soil-tests?location=orchard", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var filtered []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &filtered))
	require.Len(t, filtered, 1)
	assert.Equal(t, "South orchard", filtered[0]["location"])
}

func TestAPIUpdate(t *testing.T) {
	mux := newTestAPI(t)

	rr := doJSON(t, mux, http.MethodPost, "/api/soil-tests", createBody)
	require.Equal(t, http.StatusCreated, rr.Code)
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	// testDate omitted: the stored one must survive the update
	rr = doJSON(t, mux, http.MethodPut, fmt.Sprintf("/api/soil-tests/%d", created.ID),
		`{"location":"North field","ph":6.8,"nitrogen":30,"phosphorus":30,"potassium":200}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var updated struct {
		PH       float64 `json:"ph"`
		TestDate string  `json:"testDate"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, 6.8, updated.PH)
	assert.Equal(t, "2026-03-14", updated.TestDate)

	rr = doJSON(t, mux, http.MethodPut, "/api/soil-tests/9999",
		`{"location":"Nowhere","ph":6.8,"nitrogen":30,"phosphorus":30,"potassium":200}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAPIDelete(t *testing.T) {
	mux := newTestAPI(t)

	rr := doJSON(t, mux, http.MethodPost, "/api/soil-tests", createBody)
	require.Equal(t, http.StatusCreated, rr.Code)
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	rr = doJSON(t, mux, http.MethodDelete, fmt.Sprintf("/api/soil-tests/%d", created.ID), "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Test deleted successfully")

	rr = doJSON(t, mux, http.MethodDelete, fmt.Sprintf("/api/soil-tests/%d", created.ID), "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAPIExportCSV(t *testing.T) {
	mux := newTestAPI(t)

	rr := doJSON(t, mux, http.MethodPost, "/api/soil-tests", createBody)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(t, mux, http.MethodGet, "/api/soil-tests/export", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "attachment; filename=soil_tests_")

	lines := strings.Split(strings.TrimSpace(rr.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ID,Location,Latitude,Longitude,pH,Nitrogen (ppm),Phosphorus (ppm),Potassium (ppm),Test Date,Notes", lines[0])
	assert.Contains(t, lines[1], "North field")
	assert.Contains(t, lines[1], "5.5")
}

func TestAPIRecommendationsLookup(t *testing.T) {
	mux := newTestAPI(t)

	rr := doJSON(t, mux, http.MethodPost, "/api/soil-tests", createBody)
	require.Equal(t, http.StatusCreated, rr.Code)
	var created struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	rr = doJSON(t, mux, http.MethodGet, fmt.Sprintf("/api/recommendations/%d", created.ID), "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Priority string `json:"priority"`
		Health   struct {
			Score  float64 `json:"score"`
			Status string  `json:"status"`
		} `json:"health"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "high", resp.Priority)
	assert.NotEmpty(t, resp.Health.Status)

	rr = doJSON(t, mux, http.MethodGet, "/api/recommendations/9999", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAPIHealth(t *testing.T) {
	mux := newTestAPI(t)

	rr := doJSON(t, mux, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "connected", resp["database"])

	rr = doJSON(t, mux, http.MethodGet, "/healthz", "")
	assert.Equal(t, "ok", rr.Body.String())
}
