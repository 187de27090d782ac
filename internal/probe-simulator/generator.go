package probe_simulator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

const (
	// soilGridsURL: single fetch at startup, never called per tick.
	soilGridsURL = "https://rest.isric.org/soilgrids/v2.0/properties/query?lat=%f&lon=%f&property=phh2o"

	defaultPH         = 6.5
	defaultNitrogen   = 30.0
	defaultPhosphorus = 25.0
	defaultPotassium  = 150.0
)

// Reading is one synthetic soil chemistry sample.
type Reading struct {
	PH         float64
	Nitrogen   float64
	Phosphorus float64
	Potassium  float64
}

// DataGenerator holds the per-station soil state and drifts it with a
// bounded random walk between publishes. At most one optional fetch to
// SoilGrids happens at startup to seed the pH from real survey data.
type DataGenerator struct {
	mu         sync.Mutex
	seeded     bool
	cur        Reading
	rng        *rand.Rand
	httpClient *http.Client
	gridsURL   string
}

func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		cur: Reading{
			PH:         defaultPH,
			Nitrogen:   defaultNitrogen,
			Phosphorus: defaultPhosphorus,
			Potassium:  defaultPotassium,
		},
		rng:        rand.New(rand.NewSource(seed)),
		httpClient: &http.Client{Timeout: 8 * time.Second},
		gridsURL:   soilGridsURL,
	}
}

// SeedFromSoilGrids performs a single fetch of the phh2o layer and seeds
// the walk's pH from it. Any failure keeps the default seed.
func (g *DataGenerator) SeedFromSoilGrids(ctx context.Context, lat, lon float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.seeded {
		return
	}
	g.seeded = true

	if lat == 0 && lon == 0 {
		return
	}
	if ph, err := g.fetchPH(ctx, lat, lon); err == nil && ph > 0 {
		g.cur.PH = ph
	}
}

// Next advances the random walk one step and returns the new reading.
func (g *DataGenerator) Next() Reading {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.seeded = true
	g.cur.PH = clamp(g.cur.PH+g.step(0.05), 4.5, 9.0)
	g.cur.Nitrogen = clamp(g.cur.Nitrogen+g.step(1.5), 0, 80)
	g.cur.Phosphorus = clamp(g.cur.Phosphorus+g.step(1.0), 0, 80)
	g.cur.Potassium = clamp(g.cur.Potassium+g.step(5.0), 0, 500)
	return g.cur
}

func (g *DataGenerator) step(max float64) float64 {
	return (g.rng.Float64()*2 - 1) * max
}

func (g *DataGenerator) fetchPH(ctx context.Context, lat, lon float64) (float64, error) {
	url := fmt.Sprintf(g.gridsURL, lat, lon)
	var lastErr error

	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(g.rng.Intn(400)+600) * time.Millisecond)
		}
		val, retry, err := g.fetchOnce(ctx, url)
		if err == nil {
			return val, nil
		}
		lastErr = err
		if !retry {
			break
		}
	}
	return -1, lastErr
}

func (g *DataGenerator) fetchOnce(ctx context.Context, url string) (val float64, retry bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return -1, false, err
	}
	req.Header.Set("User-Agent", "soiltrack-probe-simulator/1.0")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return -1, true, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return -1, true, err
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		var parsed any
		if err := json.Unmarshal(body, &parsed); err != nil {
			return -1, true, err
		}
		if v := extractLayerValue(parsed); v >= 0 {
			return normalizePH(v), false, nil
		}
		return -1, true, errors.New("soilgrids: phh2o value not found")
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return -1, true, fmt.Errorf("soilgrids HTTP %d", resp.StatusCode)
	default:
		return -1, false, fmt.Errorf("soilgrids HTTP %d: %s", resp.StatusCode, string(body))
	}
}

// extractLayerValue digs the first layer's first depth values from the
// SoilGrids response shape {"properties":{"layers":[{"depths":[{"values":
// {"Q0.5":65}}]}]}}, preferring the median.
func extractLayerValue(v any) float64 {
	m, ok := v.(map[string]any)
	if !ok {
		return -1
	}
	p, ok := m["properties"].(map[string]any)
	if !ok {
		return -1
	}
	layers, ok := p["layers"].([]any)
	if !ok || len(layers) == 0 {
		return -1
	}
	l0, ok := layers[0].(map[string]any)
	if !ok {
		return -1
	}
	depths, ok := l0["depths"].([]any)
	if !ok || len(depths) == 0 {
		return -1
	}
	d0, ok := depths[0].(map[string]any)
	if !ok {
		return -1
	}
	vals, ok := d0["values"].(map[string]any)
	if !ok {
		return -1
	}
	for _, k := range []string{"Q0.5", "mean", "Q0.95", "Q0.05"} {
		if f, ok := vals[k].(float64); ok {
			return f
		}
	}
	return -1
}

// normalizePH maps SoilGrids phh2o values to the pH scale. The layer is
// published as pH*10 integers (65 means 6.5).
func normalizePH(x float64) float64 {
	if x > 14 {
		x = x / 10
	}
	return clamp(x, 0, 14)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
