package web

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/Randidu/event-management-system/internal/models"
)

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply    *models.ChatMessage  `json:"reply,omitempty"`
	Messages []models.ChatMessage `json:"messages"`
}

func (s *Server) handleChatTranscript(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	writeJSON(w, http.StatusOK, chatResponse{Messages: s.Chat.Transcript(session)})
}

func (s *Server) handleChatSend(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r)
	if !s.limiters.allow(session.ID) {
		writeError(w, http.StatusTooManyRequests, "too many messages")
		return
	}

	var req chatRequest
	if ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); ct == "application/json" {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 16<<10)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	} else {
		req.Message = r.FormValue("message")
	}

	reply, err := s.Chat.Send(r.Context(), session, req.Message)
	if err != nil {
		s.logger.Warn().Err(err).Str("session_id", session.ID).Msg("chat reply degraded")
	}
	writeJSON(w, http.StatusOK, chatResponse{Reply: reply, Messages: s.Chat.Transcript(session)})
}
