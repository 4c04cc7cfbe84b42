package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/dramahub/internal/common"
	"github.com/goccy/go-json"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}

// statusFor maps service errors to an HTTP status and a message that is
// safe to show to the caller.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrorDuplicateEmail):
		return http.StatusConflict, common.ErrorDuplicateEmail.Error()
	case errors.Is(err, common.ErrorUserNotFound):
		return http.StatusNotFound, common.ErrorUserNotFound.Error()
	case errors.Is(err, common.ErrorInvalidCredentials):
		return http.StatusUnauthorized, common.ErrorInvalidCredentials.Error()
	case errors.Is(err, common.ErrorStorageUnavailable):
		return http.StatusServiceUnavailable, common.ErrorStorageUnavailable.Error()
	case errors.Is(err, common.ErrorCollaboratorUnavailable):
		return http.StatusBadGateway, common.ErrorCollaboratorUnavailable.Error()
	}
	return http.StatusInternalServerError, "internal error"
}
