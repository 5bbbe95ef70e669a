package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/abushaidislam/study-guide/internal/app"
	"github.com/abushaidislam/study-guide/internal/contract"
	"github.com/abushaidislam/study-guide/internal/domain"
	"github.com/abushaidislam/study-guide/internal/repository"
	"github.com/abushaidislam/study-guide/internal/service"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

func writeErr(w http.ResponseWriter, code int, errCode, message string, details any) {
	writeJSON(w, code, contract.NewErrorBody(errCode, message, details))
}

// writeServiceError maps service and store errors onto status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	var reqErr *app.RequestError
	var depErr *app.DependencyError
	switch {
	case errors.Is(err, service.ErrEmptyMessage):
		writeErr(w, http.StatusBadRequest, string(app.ErrCodeEmptyMessage), "Empty message", nil)
	case errors.As(err, &reqErr):
		writeErr(w, http.StatusBadRequest, string(reqErr.Code), reqErr.Message, nil)
	case errors.Is(err, domain.ErrInvalidTask):
		writeErr(w, http.StatusBadRequest, string(app.ErrCodeInvalidInput), err.Error(), nil)
	case errors.Is(err, repository.ErrNotFound):
		writeErr(w, http.StatusNotFound, contract.CodeNotFound, "not found", nil)
	case errors.As(err, &depErr):
		writeErr(w, http.StatusServiceUnavailable, contract.CodeUnavailable, depErr.Op+" failed", nil)
	default:
		writeErr(w, http.StatusInternalServerError, contract.CodeInternal, "internal error", nil)
	}
}

// decodeJSON reads a JSON body into dst. An empty body leaves dst
// untouched when allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return true
		}
		writeErr(w, http.StatusBadRequest, contract.CodeBadJSON, "invalid JSON body", err.Error())
		return false
	}
	return true
}
