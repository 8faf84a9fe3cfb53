package handler

import (
	"context"
	"net/http"

	"github.com/chetanya04/Copilot-Clone/pkg/api/response"
	"github.com/chetanya04/Copilot-Clone/pkg/domain"
)

type ConversationLister interface {
	ListConversations(ctx context.Context, userID string) ([]domain.Conversation, error)
}

type listChats struct {
	service ConversationLister
	writer  response.JSONResponseWriter
}

func NewListChats(service ConversationLister) *listChats {
	return &listChats{service: service}
}

func (h *listChats) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r, &h.writer, w)
	if !ok {
		return
	}

	conversations, err := h.service.ListConversations(r.Context(), userID)
	if err != nil {
		writeServiceError(&h.writer, w, err)
		return
	}

	if conversations == nil {
		conversations = []domain.Conversation{}
	}

	h.writer.WriteSuccessResponse(w, conversations)
}
