package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/xavierca1/qrleads/internal/entity"
	"github.com/xavierca1/qrleads/internal/usecase"
)

const maxBodyBytes = 1 << 20

type ErrorResponse struct {
	Error  string                    `json:"error"`
	Code   string                    `json:"code,omitempty"`
	Fields []usecase.ValidationError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// writeError maps use case errors to HTTP statuses. Technical details are
// logged, never sent to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := errorStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, body)
}

func errorStatus(err error) (int, ErrorResponse) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		body := ErrorResponse{Error: de.Message, Code: de.Code, Fields: de.Fields}
		switch de.Code {
		case usecase.CodeNotFound:
			return http.StatusNotFound, body
		case usecase.CodeSlugTaken, usecase.CodeConflict:
			return http.StatusConflict, body
		default:
			return http.StatusBadRequest, body
		}
	}
	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		return http.StatusInternalServerError, ErrorResponse{Error: "Internal server error", Code: te.Code}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"}
}

// decodeJSON reads a JSON body of at most maxBodyBytes.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return false
	}
	return true
}

// repoError turns a bare repository error into the use case error the
// client understands.
func repoError(err error, what string) error {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		return &usecase.DomainError{Code: usecase.CodeNotFound, Message: what + ": not found"}
	case errors.Is(err, entity.ErrDuplicate), errors.Is(err, entity.ErrInUse):
		return &usecase.DomainError{Code: usecase.CodeConflict, Message: what + ": " + err.Error()}
	case errors.Is(err, entity.ErrValidation):
		return &usecase.DomainError{Code: usecase.CodeValidation, Message: err.Error()}
	}
	return &usecase.TechnicalError{Code: usecase.CodeDatabase, Message: what, Err: err}
}
