package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lazypower/petd/internal/llm"
	"github.com/lazypower/petd/internal/pet"
	"github.com/lazypower/petd/internal/voice"
)

// writeError maps domain and upstream errors to a status code.
func writeError(w http.ResponseWriter, err error) {
	var provErr *llm.ProviderError
	var voiceErr *voice.APIError
	switch {
	case pet.IsValidation(err), errors.Is(err, voice.ErrEmptyInput):
		writeErrorMsg(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &provErr):
		writeErrorMsg(w, provErr.HTTPStatus(), err.Error())
	case errors.As(err, &voiceErr), errors.Is(err, llm.ErrBadResponse):
		writeErrorMsg(w, http.StatusBadGateway, err.Error())
	default:
		slog.Error("request failed", "error", err)
		writeErrorMsg(w, http.StatusInternalServerError, err.Error())
	}
}

type profileResponse struct {
	Profile *pet.Profile `json:"profile"`
	Message string       `json:"message"`
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.game.Fetch(r.Context(), s.now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleShop(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"items": s.game.Catalog().Items(),
	})
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")
	p, err := s.game.Act(r.Context(), action, s.now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{
		Profile: p,
		Message: "Action " + action + " applied.",
	})
}

type itemRequest struct {
	ItemID string `json:"item_id"`
}

func decodeItem(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid json")
		return "", false
	}
	if req.ItemID == "" {
		writeErrorMsg(w, http.StatusBadRequest, "item_id required")
		return "", false
	}
	return req.ItemID, true
}

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeItem(w, r)
	if !ok {
		return
	}
	p, err := s.game.Buy(r.Context(), id, s.now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{Profile: p, Message: "Item purchased."})
}

func (s *Server) handleEquip(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeItem(w, r)
	if !ok {
		return
	}
	p, err := s.game.Equip(r.Context(), id, s.now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{Profile: p, Message: "Item equipped."})
}

func (s *Server) handleMinigame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Score      *int `json:"score"`
		DurationMS *int `json:"duration_ms"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMsg(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Score == nil {
		writeErrorMsg(w, http.StatusBadRequest, "score required")
		return
	}
	if *req.Score < 0 {
		writeErrorMsg(w, http.StatusBadRequest, "score must be >= 0")
		return
	}
	if req.DurationMS != nil && *req.DurationMS < 0 {
		writeErrorMsg(w, http.StatusBadRequest, "duration_ms must be >= 0")
		return
	}

	p, err := s.game.SubmitMinigame(r.Context(), *req.Score, req.DurationMS, s.now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{Profile: p, Message: "Mini-game rewards applied."})
}
