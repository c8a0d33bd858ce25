package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/claude/fitplan/internal/catalog"
	"github.com/claude/fitplan/internal/importer"
	"github.com/claude/fitplan/internal/models"
	"github.com/google/uuid"
)

// maxCatalogBytes caps the size of an uploaded catalog.
const maxCatalogBytes = 10 << 20

// PlanRequest overrides the configured plan defaults. Omitted fields keep the
// default; an explicit empty list clears it.
type PlanRequest struct {
	Days       *int     `json:"days"`
	TimePerDay *int     `json:"time_per_day"`
	Goals      []string `json:"goals"`
	Equipment  []string `json:"equipment"`
	AvoidTags  []string `json:"avoid_tags"`
}

// Apply returns defaults with the request's fields laid over it.
func (r PlanRequest) Apply(defaults models.PlanConfig) models.PlanConfig {
	cfg := defaults
	if r.Days != nil {
		cfg.Days = *r.Days
	}
	if r.TimePerDay != nil {
		cfg.TimePerDay = *r.TimePerDay
	}
	if r.Goals != nil {
		cfg.Goals = models.NewSet(r.Goals...)
	}
	if r.Equipment != nil {
		cfg.Equipment = models.NewSet(r.Equipment...)
	}
	if r.AvoidTags != nil {
		cfg.AvoidTags = models.NewSet(r.AvoidTags...)
	}
	return cfg
}

// PlanResponse is the body returned by POST /api/v1/plan.
type PlanResponse struct {
	ID       string          `json:"id"`
	Complete bool            `json:"complete"`
	Plan     models.WeekPlan `json:"plan"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	exercises, err := s.source.Load(r.Context())
	if err != nil {
		s.log.Error("loading catalog", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if exercises == nil {
		exercises = []models.Exercise{}
	}
	writeJSON(w, http.StatusOK, exercises)
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
			return
		}
	}

	cfg := req.Apply(s.defaults)
	if err := cfg.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	exercises, err := s.source.Load(r.Context())
	if err != nil {
		s.log.Error("loading catalog", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	plan := s.planner.Plan(exercises, cfg)
	s.metrics.RecordPlan(plan)

	id := uuid.NewString()
	w.Header().Set("X-Plan-ID", id)
	writeJSON(w, http.StatusOK, PlanResponse{ID: id, Complete: plan.Complete(), Plan: plan})
}

func (s *Server) handleCatalogUpload(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "catalog uploads require the postgres source"})
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCatalogBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": err.Error()})
		return
	}

	stats, err := importer.New(s.store, s.log, false).ImportData(r.Context(), "upload:"+r.RemoteAddr, data)
	if err != nil {
		s.metrics.RecordImport(importer.StatusError)
		var mre *catalog.MalformedRecordError
		if errors.As(err, &mre) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error": err.Error(),
				"line":  mre.Line,
				"field": mre.Field,
			})
			return
		}
		s.log.Error("catalog upload", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	s.metrics.RecordImport(importer.StatusSuccess)

	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "stats require the postgres source"})
		return
	}
	stats, err := s.store.GetCatalogStats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleImportLogs(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "import logs require the postgres source"})
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
			return
		}
		limit = min(n, 500)
	}

	logs, err := s.store.QueryImportLogs(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
