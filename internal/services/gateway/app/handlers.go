package app

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"sort"

	"github.com/agrotech-lab/soiltrack/internal/agronomy"
)

func (g *Gateway) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), g.cfg.HTTPTimeout)
	defer cancel()

	type res struct {
		key string
		val any
		err error
	}
	ch := make(chan res, 2)

	// fetch both upstreams in parallel
	go func() {
		var tests []TestRecord
		err := g.soilTests.GetJSON(ctx, &tests)
		ch <- res{"tests", tests, err}
	}()
	go func() {
		var points []TrendPoint
		err := g.trends.GetJSON(ctx, &points)
		ch <- res{"trend", points, err}
	}()

	data := DashboardData{
		Tests:      []TestRecord{},
		Trend:      []TrendPoint{},
		Stats:      map[string]float64{},
		Priorities: map[string]int{},
	}

	for i := 0; i < 2; i++ {
		rv := <-ch
		switch rv.key {
		case "tests":
			if rv.err != nil {
				g.cfg.Logger.Printf("gateway: soiltest upstream: %v", rv.err)
				data.Degraded = true
				continue
			}
			if t, ok := rv.val.([]TestRecord); ok && t != nil {
				data.Tests = t
			}
		case "trend":
			if rv.err != nil {
				// trend history is non critical, serve the last good snapshot
				g.cfg.Logger.Printf("gateway: trend upstream: %v", rv.err)
				data.Degraded = true
				data.Trend = g.lastGoodTrend()
				continue
			}
			if p, ok := rv.val.([]TrendPoint); ok && p != nil {
				data.Trend = p
				g.rememberTrend(p)
			}
		}
	}

	// newest tests first for the UI
	sort.Slice(data.Tests, func(i, j int) bool { return data.Tests[i].ID > data.Tests[j].ID })

	for i := range data.Tests {
		t := &data.Tests[i]
		rec := agronomy.Recommend(t.PH, t.Nitrogen, t.Phosphorus, t.Potassium)
		t.Priority = string(rec.Priority)
		data.Priorities[t.Priority]++
	}

	if n := len(data.Tests); n > 0 {
		var sum float64
		minv := math.MaxFloat64
		maxv := -math.MaxFloat64
		for _, t := range data.Tests {
			sum += t.PH
			if t.PH < minv {
				minv = t.PH
			}
			if t.PH > maxv {
				maxv = t.PH
			}
		}
		data.Stats["mean_ph"] = math.Round(sum/float64(n)*100) / 100
		data.Stats["min_ph"] = minv
		data.Stats["max_ph"] = maxv
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

func (g *Gateway) HandleHealthz(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte("ok"))
}

// NewMux wires the gateway routes.
func NewMux(g *Gateway) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", g.HandleHealthz)
	mux.HandleFunc("GET /dashboard/data", g.HandleDashboard)
	return mux
}
