package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/chetanya04/Copilot-Clone/pkg/api/response"
	"github.com/chetanya04/Copilot-Clone/pkg/domain"
)

type MessageSender interface {
	SendMessage(ctx context.Context, userID, conversationID, content string, imageRequested bool) (*domain.Message, error)
}

type sendMessage struct {
	service MessageSender
	writer  response.JSONResponseWriter
}

func NewSendMessage(service MessageSender) *sendMessage {
	return &sendMessage{service: service}
}

func (h *sendMessage) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r, &h.writer, w)
	if !ok {
		return
	}

	var body struct {
		Content        string `json:"content"`
		IsImageRequest bool   `json:"isImageRequest"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if body.Content == "" {
		h.writer.WriteErrorResponse(w, http.StatusBadRequest, "Content is missing or empty.")
		return
	}

	message, err := h.service.SendMessage(r.Context(), userID, r.PathValue("id"), body.Content, body.IsImageRequest)
	if err != nil {
		writeServiceError(&h.writer, w, err)
		return
	}

	h.writer.WriteSuccessResponse(w, message)
}
