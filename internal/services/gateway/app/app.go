package app

import (
	"log"
	"sync"
	"time"
)

type Config struct {
	SoilTestBaseURL string
	TrendBaseURL    string
	SoilTestPath    string
	TrendPath       string
	HTTPTimeout     time.Duration

	BreakerFailures int
	BreakerOpenFor  time.Duration

	Logger *log.Logger
}

type Gateway struct {
	cfg       Config
	soilTests *Upstream
	trends    *Upstream

	trendMu   sync.Mutex
	lastTrend []TrendPoint
}

func NewGateway(cfg Config) *Gateway {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	// one breaker per upstream
	st := NewUpstream("soiltest", cfg.SoilTestBaseURL, cfg.SoilTestPath, cfg.HTTPTimeout, cfg.BreakerFailures, cfg.BreakerOpenFor)
	tr := NewUpstream("trend", cfg.TrendBaseURL, cfg.TrendPath, cfg.HTTPTimeout, cfg.BreakerFailures, cfg.BreakerOpenFor)

	return &Gateway{cfg: cfg, soilTests: st, trends: tr}
}

// rememberTrend keeps the last snapshot that came back clean so the
// dashboard still shows history while the trend service is down.
func (g *Gateway) rememberTrend(points []TrendPoint) {
	g.trendMu.Lock()
	defer g.trendMu.Unlock()
	g.lastTrend = append([]TrendPoint(nil), points...)
}

func (g *Gateway) lastGoodTrend() []TrendPoint {
	g.trendMu.Lock()
	defer g.trendMu.Unlock()
	return append([]TrendPoint(nil), g.lastTrend...)
}
