package trend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
)

// TrendPoint is one historical measurement exposed to the gateway.
type TrendPoint struct {
	StationID string  `json:"station_id,omitempty"`
	Nutrient  string  `json:"nutrient"`
	Value     float64 `json:"value"`
	Time      string  `json:"time"` // RFC3339
}

var allowedNutrients = map[string]bool{
	"ph": true, "nitrogen": true, "phosphorus": true, "potassium": true,
}

type trendQueryParams struct {
	Nutrient  string
	Minutes   int
	Limit     int
	TimeoutMS int
}

func parseTrend(r *http.Request, defMin, defLim, defTOms int) trendQueryParams {
	q := r.URL.Query()
	get := func(k string, def, min, max int) int {
		if v := strings.TrimSpace(q.Get(k)); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				if n < min {
					return min
				}
				if max > 0 && n > max {
					return max
				}
				return n
			}
		}
		return def
	}
	nutrient := strings.ToLower(strings.TrimSpace(q.Get("nutrient")))
	if !allowedNutrients[nutrient] {
		nutrient = "ph"
	}
	return trendQueryParams{
		Nutrient:  nutrient,
		Minutes:   get("minutes", defMin, 1, 30*24*60),
		Limit:     get("limit", defLim, 1, 500),
		TimeoutMS: get("timeout_ms", defTOms, 200, 5000),
	}
}

func buildFlux(bucket, measurement, nutrient string, minutes, limit int) string {
	return fmt.Sprintf(`
from(bucket: %q)
  |> range(start: -%dm)
  |> filter(fn: (r) => r._measurement == %q)
  |> filter(fn: (r) => r._field == %q)
  |> keep(columns: ["_time","_value","station_id"])
  |> sort(columns: ["_time"], desc: true)
  |> limit(n:%d)
`, bucket, minutes, measurement, nutrient, limit)
}

// NewNutrientTrendHandler serves
// GET /trends/nutrients?nutrient=ph&minutes=1440&limit=50
func NewNutrientTrendHandler(influx influxdb2.Client, org, bucket, measurement string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := parseTrend(r, 1440, 50, 2000)

		ctx, cancel := context.WithTimeout(r.Context(), time.Duration(p.TimeoutMS)*time.Millisecond)
		defer cancel()

		api := influx.QueryAPI(org)
		res, err := api.Query(ctx, buildFlux(bucket, measurement, p.Nutrient, p.Minutes, p.Limit))
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Error", "influx-query-error")
			_, _ = w.Write([]byte("[]"))
			return
		}
		defer func() { _ = res.Close() }()

		out := make([]TrendPoint, 0, p.Limit)
		for res.Next() {
			rec := res.Record()

			var value float64
			switch v := rec.Value().(type) {
			case float64:
				value = v
			case int64:
				value = float64(v)
			case int:
				value = float64(v)
			case string:
				if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
					value = f
				}
			}

			var stationID string
			if v := rec.ValueByKey("station_id"); v != nil {
				if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
					stationID = s
				}
			}

			out = append(out, TrendPoint{
				StationID: stationID,
				Nutrient:  p.Nutrient,
				Value:     value,
				Time:      rec.Time().UTC().Format(time.RFC3339),
			})
		}
		if res.Err() != nil {
			w.Header().Set("X-Error", "influx-iter-error")
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	})
}
