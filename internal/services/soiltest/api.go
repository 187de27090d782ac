package soiltest

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agrotech-lab/soiltrack/internal/agronomy"
	"github.com/agrotech-lab/soiltrack/internal/model/entities"
)

// Service owns the record store and exposes the REST API. The engine is
// invoked per request; recommendations are derived, never stored.
type Service struct {
	store    *Store
	metrics  *Metrics
	registry *prometheus.Registry
}

// NewService wraps a store. reg may be nil to disable instrumentation.
func NewService(store *Store, reg *prometheus.Registry) *Service {
	svc := &Service{store: store, registry: reg}
	if reg != nil {
		svc.metrics = NewMetrics(reg)
	}
	return svc
}

// testResponse merges the stored record with the derived recommendations,
// mirroring the create/fetch payload contract.
type testResponse struct {
	entities.SoilTest
	Recommendations entities.Recommendation `json:"recommendations"`
}

// recommendationResponse is the standalone lookup payload: the engine output
// plus the secondary soil-health report.
type recommendationResponse struct {
	entities.Recommendation
	Health entities.HealthReport `json:"health"`
}

func NewHTTPMux(svc *Service) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("ok")) })
	mux.HandleFunc("GET /api/health", svc.handleHealth)

	m := svc.metrics
	mux.HandleFunc("GET /api/soil-tests", m.instrument("list", svc.handleList))
	mux.HandleFunc("POST /api/soil-tests", m.instrument("create", svc.handleCreate))
	mux.HandleFunc("GET /api/soil-tests/export", m.instrument("export", svc.handleExport))
	mux.HandleFunc("GET /api/soil-tests/{id}", m.instrument("get", svc.handleGet))
	mux.HandleFunc("PUT /api/soil-tests/{id}", m.instrument("update", svc.handleUpdate))
	mux.HandleFunc("DELETE /api/soil-tests/{id}", m.instrument("delete", svc.handleDelete))
	mux.HandleFunc("GET /api/recommendations/{id}", m.instrument("recommendations", svc.handleRecommendations))

	if svc.registry != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(svc.registry, promhttp.HandlerOpts{}))
	}

	return mux
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "connected"
	status := "healthy"
	if err := s.store.Ping(ctx); err != nil {
		dbStatus = "disconnected"
		status = "degraded"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  dbStatus,
	})
}

// GET /api/soil-tests[?location=partial]
func (s *Service) handleList(w http.ResponseWriter, r *http.Request) {
	var (
		tests []entities.SoilTest
		err   error
	)
	if loc := r.URL.Query().Get("location"); loc != "" {
		tests, err = s.store.SearchByLocation(r.Context(), loc)
	} else {
		tests, err = s.store.List(r.Context())
	}
	if err != nil {
		log.Printf("soiltest: list error: %v", err)
		writeError(w, http.StatusInternalServerError, "could not list soil tests")
		return
	}
	writeJSON(w, http.StatusOK, tests)
}

func (s *Service) handleCreate(w http.ResponseWriter, r *http.Request) {
	t, ok := decodeTest(w, r)
	if !ok {
		return
	}
	if errs := Validate(t); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
		return
	}
	if t.TestDate == "" {
		t.TestDate = time.Now().Format("2006-01-02")
	}

	if _, err := s.store.Create(r.Context(), t); err != nil {
		log.Printf("soiltest: create error: %v", err)
		writeError(w, http.StatusInternalServerError, "could not store soil test")
		return
	}

	rec := agronomy.RecommendTest(*t)
	s.metrics.MarkRecommendation(string(rec.Priority))
	writeJSON(w, http.StatusCreated, testResponse{SoilTest: *t, Recommendations: rec})
}

func (s *Service) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, err := s.store.GetByID(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "Test not found")
		return
	}
	if err != nil {
		log.Printf("soiltest: get %d error: %v", id, err)
		writeError(w, http.StatusInternalServerError, "could not load soil test")
		return
	}

	rec := agronomy.RecommendTest(*t)
	s.metrics.MarkRecommendation(string(rec.Priority))
	writeJSON(w, http.StatusOK, testResponse{SoilTest: *t, Recommendations: rec})
}

func (s *Service) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, ok := decodeTest(w, r)
	if !ok {
		return
	}
	if errs := Validate(t); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
		return
	}

	existing, err := s.store.GetByID(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "Test not found")
		return
	}
	if err != nil {
		log.Printf("soiltest: update lookup %d error: %v", id, err)
		writeError(w, http.StatusInternalServerError, "could not load soil test")
		return
	}

	t.ID = id
	if t.TestDate == "" {
		t.TestDate = existing.TestDate
	}
	if err := s.store.Update(r.Context(), t); err != nil {
		log.Printf("soiltest: update %d error: %v", id, err)
		writeError(w, http.StatusInternalServerError, "could not update soil test")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Service) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	err := s.store.Delete(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "Test not found")
		return
	}
	if err != nil {
		log.Printf("soiltest: delete %d error: %v", id, err)
		writeError(w, http.StatusInternalServerError, "could not delete soil test")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Test deleted successfully"})
}

// GET /api/recommendations/{id} returns the derived recommendation and the
// health report without echoing the record itself.
func (s *Service) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, err := s.store.GetByID(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		writeError(w, http.StatusNotFound, "Test not found")
		return
	}
	if err != nil {
		log.Printf("soiltest: recommendations %d error: %v", id, err)
		writeError(w, http.StatusInternalServerError, "could not load soil test")
		return
	}

	rec := agronomy.RecommendTest(*t)
	s.metrics.MarkRecommendation(string(rec.Priority))
	writeJSON(w, http.StatusOK, recommendationResponse{
		Recommendation: rec,
		Health:         agronomy.HealthScore(t.PH, t.Nitrogen, t.Phosphorus, t.Potassium),
	})
}

// ---------- helpers ----------

func decodeTest(w http.ResponseWriter, r *http.Request) (*entities.SoilTest, bool) {
	var t entities.SoilTest
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return nil, false
	}
	t.ID = 0 // ids come from the path or the store, never the payload
	return &t, true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid test id")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
