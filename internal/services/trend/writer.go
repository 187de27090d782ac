package trend

import (
	"log"
	"sync"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// PointWriter is the slice of the Influx async write API the service needs;
// narrowed so tests can fake it.
type PointWriter interface {
	WritePoint(point *write.Point)
	Errors() <-chan error
	Flush()
}

// Writer wraps the async write API and tracks the last write error for
// /healthz and /readyz, plus a per-station ingest counter.
type Writer struct {
	api     PointWriter
	mu      sync.RWMutex
	lastErr time.Time
	counts  map[string]int64
}

// NewWriter starts the listener draining the async error channel.
func NewWriter(w PointWriter) *Writer {
	ww := &Writer{
		api:     w,
		lastErr: time.Now().Add(-24 * time.Hour), // "long ago" by default
		counts:  make(map[string]int64),
	}
	go func() {
		for err := range w.Errors() {
			if err != nil {
				ww.mu.Lock()
				ww.lastErr = time.Now()
				ww.mu.Unlock()
				log.Printf("trend: influx write error: %v", err)
			}
		}
	}()
	return ww
}

// WritePoint forwards to the async API.
func (w *Writer) WritePoint(p *write.Point) { w.api.WritePoint(p) }

// LastErrorAge returns how long ago the last write error happened.
func (w *Writer) LastErrorAge() time.Duration {
	if w == nil {
		return 99999 * time.Hour
	}
	w.mu.RLock()
	t := w.lastErr
	w.mu.RUnlock()
	return time.Since(t)
}

// MarkIngest bumps the per-station counter.
func (w *Writer) MarkIngest(stationID string) {
	if w == nil {
		return
	}
	w.mu.Lock()
	w.counts[stationID]++
	w.mu.Unlock()
}

// Count reads the per-station counter.
func (w *Writer) Count(stationID string) int64 {
	if w == nil {
		return 0
	}
	w.mu.RLock()
	c := w.counts[stationID]
	w.mu.RUnlock()
	return c
}
