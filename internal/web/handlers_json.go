package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vitos/trade_text_builder/internal/domain"
	"github.com/vitos/trade_text_builder/internal/usecase"
	"go.uber.org/zap"
)

// levelsRequest uses pointers so that omitted settings fall back to defaults.
type levelsRequest struct {
	Symbol       string   `json:"symbol"`
	Direction    string   `json:"direction"`
	Entry        string   `json:"entry"`
	RiskPct      *float64 `json:"risk_pct"`
	Leverage     *float64 `json:"leverage"`
	StopDistance *float64 `json:"stop_distance"`
}

func (s *Server) handleLevelsJSON(w http.ResponseWriter, r *http.Request) {
	var req levelsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed JSON body"})
		return
	}

	in := usecase.TradeInput{
		Symbol:       req.Symbol,
		Direction:    req.Direction,
		Entry:        req.Entry,
		RiskPct:      valueOr(req.RiskPct, s.settings.RiskPct),
		Leverage:     valueOr(req.Leverage, s.settings.Leverage),
		StopDistance: valueOr(req.StopDistance, s.settings.StopDistance),
	}
	if in.Direction == "" {
		in.Direction = string(domain.SideLong)
	}

	result, err := s.service.Generate(r.Context(), in)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, map[string]string{"error": usecase.UserMessage(err)})
		return
	}

	if err := writeJSON(w, http.StatusOK, result); err != nil {
		s.logger.Error("Failed to encode levels", zap.Error(err))
	}
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
