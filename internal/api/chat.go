package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/skytrail/concierge/internal/chat"
)

type chatRequest struct {
	Prompt    string `json:"prompt"`
	SessionID string `json:"sessionId"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Prompt == "" || req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "prompt and sessionId are required")
		return
	}

	reply, err := s.turns.Handle(r.Context(), req.SessionID, req.Prompt)
	if err != nil {
		if errors.Is(err, chat.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("chat turn failed", "session_id", req.SessionID, "error", err)
		// Upstream detail stays in the logs.
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}
