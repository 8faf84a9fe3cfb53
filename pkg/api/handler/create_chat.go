package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/chetanya04/Copilot-Clone/pkg/api/response"
	"github.com/chetanya04/Copilot-Clone/pkg/domain"
)

type ConversationCreator interface {
	CreateConversation(ctx context.Context, userID, title string) (*domain.Conversation, error)
}

type createChat struct {
	service ConversationCreator
	writer  response.JSONResponseWriter
}

func NewCreateChat(service ConversationCreator) *createChat {
	return &createChat{service: service}
}

func (h *createChat) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r, &h.writer, w)
	if !ok {
		return
	}

	var body struct {
		Title string `json:"title"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.writer.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body.")
			return
		}
	}

	conversation, err := h.service.CreateConversation(r.Context(), userID, body.Title)
	if err != nil {
		writeServiceError(&h.writer, w, err)
		return
	}

	h.writer.WriteSuccessResponse(w, conversation)
}
