package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"veriname/internal/scoring"
)

// Service defines the verification operations the handler exposes.
type Service interface {
	Verify(ctx context.Context, phone, claimedName string) (*scoring.ScoreBreakdown, error)
	Score(ctx context.Context, claimedName string, candidate scoring.CandidateRecord) (*scoring.ScoreBreakdown, error)
}

// Handler wires verification endpoints to the verification service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a verification handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts verification endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/verify/lookup", h.HandleLookup)
	r.Post("/verify/score", h.HandleScore)
}

// HandleLookup handles POST /verify/lookup: phone-driven multi-source
// verification.
func (h *Handler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := uuid.NewString()
	start := time.Now()

	var req LookupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	result, err := h.service.Verify(ctx, req.Phone, req.ClaimedName)
	if err != nil {
		h.logger.ErrorContext(ctx, "verification failed",
			"request_id", requestID,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal_error", "verification failed")
		return
	}

	h.logger.InfoContext(ctx, "lookup verified",
		"request_id", requestID,
		"final_score", result.FinalScore,
		"risk_tier", result.RiskTier,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	writeJSON(w, http.StatusOK, result)
}

// HandleScore handles POST /verify/score: scoring against an inline
// candidate record.
func (h *Handler) HandleScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := uuid.NewString()

	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	result, err := h.service.Score(ctx, req.ClaimedName, req.Candidate)
	if err != nil {
		h.logger.ErrorContext(ctx, "scoring failed",
			"request_id", requestID,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal_error", "scoring failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, code, desc string) {
	writeJSON(w, status, map[string]string{
		"error":             code,
		"error_description": desc,
	})
}
