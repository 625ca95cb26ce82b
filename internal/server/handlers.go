package server

import (
	"encoding/json"
	"net/http"

	"github.com/rxtech-lab/argo-paper-agent/internal/types"
	"github.com/rxtech-lab/argo-paper-agent/pkg/errors"
	"go.uber.org/zap"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, types.HealthResponse{
		Status:   "ok",
		Version:  s.version,
		Strategy: s.agent.StrategyName(),
	})
}

func (s *Server) handleOnTick(w http.ResponseWriter, r *http.Request) {
	var tick types.MarketTick

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxTickBodyBytes))
	if err := decoder.Decode(&tick); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidTick, "malformed tick payload", err))

		return
	}

	if err := tick.Validate(); err != nil {
		s.writeError(w, err)

		return
	}

	decision, err := s.agent.ProcessTick(tick)
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, decision)
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.agent.State())
}

func (s *Server) handleTrades(w http.ResponseWriter, _ *http.Request) {
	trades, err := s.agent.Trades()
	if err != nil {
		s.writeError(w, err)

		return
	}

	s.writeJSON(w, http.StatusOK, trades)
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.agent.Reset())
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.agent.Stats())
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Failed to write response", zap.Error(err))
	}
}

// writeError maps validation codes to 400 and everything else to 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)

	status := http.StatusInternalServerError
	if code.IsValidation() {
		status = http.StatusBadRequest
	}

	s.writeJSON(w, status, types.ErrorResponse{
		Code:  int(code),
		Error: err.Error(),
	})
}
