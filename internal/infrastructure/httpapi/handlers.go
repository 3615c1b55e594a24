package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"agent-feasibility/internal/application/port/input"
	"agent-feasibility/internal/application/port/output"
	"agent-feasibility/internal/domain/entity"

	"github.com/go-chi/chi/v5"
)

const (
	ServiceName = "agent-feasibility-api"
	Version     = "1.0.0"

	maxBodyBytes = 1 << 20
)

// HealthChecker reports database connectivity and the stored evaluation count.
type HealthChecker interface {
	Ping(ctx context.Context) (int, error)
}

type Handlers struct {
	svc    input.EvaluationService
	health HealthChecker
	logger output.LoggerPort
	now    func() time.Time
}

func NewHandlers(svc input.EvaluationService, health HealthChecker, logger output.LoggerPort) *Handlers {
	return &Handlers{svc: svc, health: health, logger: logger, now: time.Now}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

type HealthResponse struct {
	Status          string `json:"status"`
	Service         string `json:"service"`
	Timestamp       string `json:"timestamp"`
	Database        string `json:"database"`
	EvaluationCount int    `json:"evaluationCount"`
	Error           string `json:"error,omitempty"`
}

type SubmitResponse struct {
	ID             string                   `json:"id"`
	Status         entity.EvaluationStatus  `json:"status"`
	Message        string                   `json:"message"`
	TotalScore     int                      `json:"totalScore"`
	Recommendation entity.Recommendation    `json:"recommendation"`
	Metrics        entity.EvaluationMetrics `json:"metrics"`
	Source         entity.MetricsSource     `json:"source"`
	entity.EvaluationInput
}

type ListResponse struct {
	Data  []entity.Evaluation `json:"data"`
	Total int                 `json:"total"`
}

func (h *Handlers) HandleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, RootResponse{
		Message: "Agent feasibility evaluation API",
		Version: Version,
	})
}

// HandleHealth always answers 200; a broken database shows up in the body.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "ok",
		Service:   ServiceName,
		Timestamp: h.now().UTC().Format(time.RFC3339),
		Database:  "connected",
	}

	count, err := h.health.Ping(r.Context())
	if err != nil {
		h.logger.Warn("Health check database ping failed", "error", err)
		resp.Database = "error"
		resp.Error = err.Error()
	} else {
		resp.EvaluationCount = count
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var in entity.EvaluationInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be a JSON evaluation object")
		return
	}

	res, err := h.svc.Submit(r.Context(), in)
	if err != nil {
		var verr *entity.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		h.logger.Error("Evaluation submission failed", "error", err)
		writeError(w, http.StatusInternalServerError, "submission failed, please retry")
		return
	}

	e := res.Evaluation
	writeJSON(w, http.StatusCreated, SubmitResponse{
		ID:              e.ID,
		Status:          e.Status,
		Message:         "evaluation completed",
		TotalScore:      res.Result.TotalScore,
		Recommendation:  entity.RecommendationFor(res.Result.TotalScore),
		Metrics:         res.Result.Metrics,
		Source:          res.Result.Source,
		EvaluationInput: e.Input(),
	})
}

func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	list, err := h.svc.List(r.Context(), limit)
	if err != nil {
		h.logger.Error("Listing evaluations failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list evaluations")
		return
	}
	writeJSON(w, http.StatusOK, ListResponse{Data: list, Total: len(list)})
}

func (h *Handlers) HandleGet(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, e)
	case errors.Is(err, output.ErrEvaluationNotFound):
		writeError(w, http.StatusNotFound, "evaluation not found")
	case errors.Is(err, entity.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("Loading evaluation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load evaluation")
	}
}

func (h *Handlers) HandleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "Not Found")
}

func (h *Handlers) HandleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg})
}
