package handler

import (
	"errors"
	"net/http"

	"github.com/chetanya04/Copilot-Clone/pkg/api/response"
	"github.com/chetanya04/Copilot-Clone/pkg/auth"
	"github.com/chetanya04/Copilot-Clone/pkg/domain"
)

// notFoundMessage deliberately does not distinguish "missing" from "owned by
// someone else".
const notFoundMessage = "Chat not found or unauthorized."

func callerID(r *http.Request, writer *response.JSONResponseWriter, w http.ResponseWriter) (string, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writer.WriteErrorResponse(w, http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
		return "", false
	}
	return userID, true
}

func writeServiceError(writer *response.JSONResponseWriter, w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writer.WriteErrorResponse(w, http.StatusNotFound, notFoundMessage)
		return
	}
	writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
}
