package handler

import (
	"context"
	"net/http"

	"github.com/chetanya04/Copilot-Clone/pkg/api/response"
)

type ConversationDeleter interface {
	DeleteConversation(ctx context.Context, userID, conversationID string) error
}

type deleteChat struct {
	service ConversationDeleter
	writer  response.JSONResponseWriter
}

func NewDeleteChat(service ConversationDeleter) *deleteChat {
	return &deleteChat{service: service}
}

func (h *deleteChat) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r, &h.writer, w)
	if !ok {
		return
	}

	if err := h.service.DeleteConversation(r.Context(), userID, r.PathValue("id")); err != nil {
		writeServiceError(&h.writer, w, err)
		return
	}

	h.writer.WriteSuccessResponse(w, map[string]bool{"success": true})
}
