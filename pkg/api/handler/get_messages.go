package handler

import (
	"context"
	"net/http"

	"github.com/russross/blackfriday"
	"github.com/samber/lo"

	"github.com/chetanya04/Copilot-Clone/pkg/api/response"
	"github.com/chetanya04/Copilot-Clone/pkg/domain"
)

type MessageLister interface {
	GetMessages(ctx context.Context, userID, conversationID string) ([]domain.Message, error)
}

type getMessages struct {
	service MessageLister
	writer  response.JSONResponseWriter
}

func NewGetMessages(service MessageLister) *getMessages {
	return &getMessages{service: service}
}

type messageView struct {
	domain.Message
	ContentHTML string `json:"content_html,omitempty"`
}

func (h *getMessages) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r, &h.writer, w)
	if !ok {
		return
	}

	messages, err := h.service.GetMessages(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeServiceError(&h.writer, w, err)
		return
	}

	if r.URL.Query().Get("format") == "html" {
		h.writer.WriteSuccessResponse(w, lo.Map(messages, func(m domain.Message, _ int) messageView {
			view := messageView{Message: m}
			// Assistant replies are markdown; clients asking for html get
			// them pre-rendered.
			if m.Role == domain.RoleAssistant {
				view.ContentHTML = string(blackfriday.MarkdownCommon([]byte(m.Content)))
			}
			return view
		}))
		return
	}

	if messages == nil {
		messages = []domain.Message{}
	}

	h.writer.WriteSuccessResponse(w, messages)
}
