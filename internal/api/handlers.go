package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/frontendschool-official/interview-engine/internal/prompt"
	"github.com/frontendschool-official/interview-engine/internal/session"
	"github.com/frontendschool-official/interview-engine/internal/simulation"
)

// Response helpers

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// respondDomainError maps engine errors onto HTTP statuses. Anything not
// recognized is a 500.
func respondDomainError(w http.ResponseWriter, err error) {
	var simNotFound *simulation.NotFoundError
	var roundNotFound *session.RoundNotFoundError
	var tmplNotFound *prompt.NotFoundError
	var missingVar *prompt.MissingVariableError
	var malformedToken *prompt.MalformedTokenError
	var unknownKind *prompt.UnknownKindError

	switch {
	case errors.As(err, &simNotFound), errors.As(err, &roundNotFound),
		errors.As(err, &tmplNotFound), errors.Is(err, session.ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.As(err, &missingVar), errors.As(err, &malformedToken), errors.As(err, &unknownKind):
		respondError(w, http.StatusBadRequest, "bad_request", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

// userID pulls the verified user identity set by the auth collaborator.
func userID(r *http.Request) string {
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id
	}
	return r.URL.Query().Get("userId")
}

// Health

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Rounds

type roundRequest struct {
	SimulationID string `json:"simulationId"`
	RoundIndex   int    `json:"roundIndex"`
}

type completeRequest struct {
	SimulationID string  `json:"simulationId"`
	RoundIndex   int     `json:"roundIndex"`
	Score        float64 `json:"score"`
	Feedback     string  `json:"feedback"`
}

func (s *Server) handleStartRound(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing user identity")
		return
	}

	var req roundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	sess, err := s.manager.StartRound(r.Context(), uid, req.SimulationID, req.RoundIndex)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sess)
}

func (s *Server) handleRestartRound(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing user identity")
		return
	}

	var req roundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	sess, err := s.manager.RestartRound(r.Context(), uid, req.SimulationID, req.RoundIndex)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sess)
}

func (s *Server) handleCompleteRound(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing user identity")
		return
	}

	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	if err := s.manager.CompleteRound(r.Context(), uid, req.SimulationID, req.RoundIndex, req.Score, req.Feedback); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}

func (s *Server) handleGetRound(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing user identity")
		return
	}

	simulationID := chi.URLParam(r, "simulationID")
	roundIndex, err := strconv.Atoi(chi.URLParam(r, "roundIndex"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "bad_request", "round index must be an integer")
		return
	}

	sess, err := s.manager.GetRoundSession(r.Context(), uid, simulationID, roundIndex)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sess)
}

// Progress

func (s *Server) handleProgressOverview(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing user identity")
		return
	}

	ov, err := s.aggregator.Overview(r.Context(), uid)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ov)
}

func (s *Server) handleSimulationProgress(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "missing user identity")
		return
	}

	p, err := s.manager.GetProgress(r.Context(), uid, chi.URLParam(r, "simulationID"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// Simulations

func (s *Server) handleListSimulations(w http.ResponseWriter, r *http.Request) {
	sims := simulation.List()
	respondJSON(w, http.StatusOK, map[string]any{
		"simulations": sims,
		"total":       len(sims),
	})
}

func (s *Server) handleGetSimulation(w http.ResponseWriter, r *http.Request) {
	sim, err := simulation.Get(chi.URLParam(r, "simulationID"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sim)
}

// Templates

func (s *Server) handleTemplateVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := s.templates.ListVersions()
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"versions": versions,
		"total":    len(versions),
	})
}
