// Package api exposes the walkthroughs and the bootstrap estimator over
// a JSON HTTP API.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"ecostat/app"
	"ecostat/domain/core"
	"ecostat/domain/dataset"
	"ecostat/internal"
	"ecostat/internal/config"
	"ecostat/internal/errors"
	"ecostat/internal/resample"
	"ecostat/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handler holds the API dependencies. Repositories may be nil when the
// toolkit runs without a database; persistence is then skipped.
type Handler struct {
	fish     *app.FishSurveyService
	water    *app.WaterQualityService
	analyses ports.AnalysisRepository
	datasets ports.DatasetRepository
	cfg      config.AnalysisConfig
	log      *internal.Logger
}

// NewHandler creates the API handler
func NewHandler(fish *app.FishSurveyService, water *app.WaterQualityService, analyses ports.AnalysisRepository, datasets ports.DatasetRepository, cfg config.AnalysisConfig, logger *internal.Logger) *Handler {
	return &Handler{
		fish:     fish,
		water:    water,
		analyses: analyses,
		datasets: datasets,
		cfg:      cfg,
		log:      logger.WithPrefix("api"),
	}
}

// Router builds the chi router for the API
func (h *Handler) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/fish-survey", h.handleFishSurvey)
		r.Post("/water-quality", h.handleWaterQuality)
		r.Post("/bootstrap", h.handleBootstrap)
		r.Get("/analyses", h.handleListAnalyses)
		r.Get("/analyses/{id}", h.handleGetAnalysis)
	})

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleFishSurvey(w http.ResponseWriter, r *http.Request) {
	seed := querySeed(r)
	report, err := h.fish.Run(r.Context(), seed)
	if err != nil {
		writeError(w, err)
		return
	}

	h.persist(r.Context(), ports.AnalysisKindFishSurvey, string(report.AnalysisID), report.Seed, report)
	h.persistDataset(r.Context(), report.Dataset)
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) handleWaterQuality(w http.ResponseWriter, r *http.Request) {
	seed := querySeed(r)
	report, err := h.water.Run(r.Context(), seed)
	if err != nil {
		writeError(w, err)
		return
	}

	h.persist(r.Context(), ports.AnalysisKindWaterQuality, string(report.AnalysisID), report.Seed, report)
	for i := range report.Sites {
		h.persistDataset(r.Context(), &report.Sites[i])
	}
	writeJSON(w, http.StatusOK, report)
}

// bootstrapRequest is the ad-hoc estimation request body
type bootstrapRequest struct {
	Sample     []float64 `json:"sample"`
	Statistic  string    `json:"statistic"` // "mean" (default) or "median"
	Trials     int       `json:"trials"`
	Confidence float64   `json:"confidence"`
	Seed       *int64    `json:"seed"` // Omitted means non-deterministic
}

func (h *Handler) handleBootstrap(w http.ResponseWriter, r *http.Request) {
	var req bootstrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.InvalidInput("malformed request body"))
		return
	}

	statistic := resample.Mean
	switch req.Statistic {
	case "", "mean":
	case "median":
		statistic = resample.Median
	default:
		writeError(w, errors.InvalidInput("statistic must be \"mean\" or \"median\""))
		return
	}

	trials := req.Trials
	if trials == 0 {
		trials = h.cfg.BootstrapTrials
	}
	confidence := req.Confidence
	if confidence == 0 {
		confidence = h.cfg.Confidence
	}
	seed := int64(-1)
	if req.Seed != nil {
		seed = *req.Seed
	}

	estimator := resample.NewEstimator().
		SetTrials(trials).
		SetConfidence(confidence).
		SetWorkers(h.cfg.Workers)

	result, err := estimator.Estimate(r.Context(), req.Sample, statistic, seed)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	if h.analyses == nil {
		writeError(w, errors.New(errors.CodeDatabaseError, "persistence is not configured"))
		return
	}

	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = ports.AnalysisKindFishSurvey
	}
	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)

	records, err := h.analyses.ListByKind(r.Context(), kind, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handler) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	if h.analyses == nil {
		writeError(w, errors.New(errors.CodeDatabaseError, "persistence is not configured"))
		return
	}

	id, err := core.ParseAnalysisID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, errors.InvalidInput(err.Error()))
		return
	}

	record, err := h.analyses.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// persist stores a report when a repository is configured. Failures are
// logged, not surfaced: the analysis already succeeded.
func (h *Handler) persist(ctx context.Context, kind, id string, seed int64, report interface{}) {
	if h.analyses == nil {
		return
	}

	payload, err := json.Marshal(report)
	if err != nil {
		h.log.Error("failed to marshal %s report: %v", kind, err)
		return
	}

	record := &ports.AnalysisRecord{
		ID:        core.AnalysisID(id),
		Kind:      kind,
		Seed:      seed,
		Payload:   payload,
		CreatedAt: core.Now(),
	}
	if err := h.analyses.Save(ctx, record); err != nil {
		h.log.Error("failed to persist %s report: %v", kind, err)
	}
}

func (h *Handler) persistDataset(ctx context.Context, table *dataset.Table) {
	if h.datasets == nil || table == nil {
		return
	}
	if err := h.datasets.Save(ctx, table); err != nil {
		h.log.Error("failed to persist dataset %s: %v", table.Name, err)
	}
}

func querySeed(r *http.Request) int64 {
	if s := r.URL.Query().Get("seed"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return v
		}
	}
	return -1
}

func queryInt(r *http.Request, key string, fallback int) int {
	if s := r.URL.Query().Get(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			return v
		}
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput, errors.CodeValidationError:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeStatisticError:
		status = http.StatusUnprocessableEntity
	}
	if core.IsNotFound(err) {
		status = http.StatusNotFound
	}

	writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  errors.GetCode(err),
	})
}
