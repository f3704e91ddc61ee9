package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/studyplanner-backend/internal/domain"
	"github.com/heartmarshall/studyplanner-backend/internal/service/assistant"
)

type assistantService interface {
	Chat(ctx context.Context, input assistant.ChatInput) (string, error)
}

// AssistantHandler serves the study assistant chat.
type AssistantHandler struct {
	svc assistantService
	log *slog.Logger
}

// NewAssistantHandler creates an AssistantHandler.
func NewAssistantHandler(svc assistantService, logger *slog.Logger) *AssistantHandler {
	return &AssistantHandler{svc: svc, log: logger.With("handler", "assistant")}
}

type chatTurn struct {
	Role string `json:"role" validate:"required,oneof=user model"`
	Text string `json:"text" validate:"required,notblank"`
}

type chatRequest struct {
	History []chatTurn `json:"history" validate:"required,min=1,dive"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Chat handles POST /api/assistant/chat. The client sends the whole
// conversation on every call.
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	history := make([]domain.ChatMessage, 0, len(req.History))
	for _, turn := range req.History {
		history = append(history, domain.ChatMessage{Role: domain.ChatRole(turn.Role), Text: turn.Text})
	}

	reply, err := h.svc.Chat(r.Context(), assistant.ChatInput{History: history})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}
