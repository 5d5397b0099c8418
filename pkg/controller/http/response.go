package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/covidboard/pkg/domain/model"
	"github.com/secmon-lab/covidboard/pkg/utils/apperr"
)

type errorResponse struct {
	Error string `json:"error"`
}

// handleError maps tagged domain errors to status codes. Untagged errors are logged and hidden.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case goerr.HasTag(err, model.ErrTagInvalidTimeRange):
		writeError(w, r, model.MsgInvalidTimeRange, http.StatusBadRequest)

	case goerr.HasTag(err, model.ErrTagInvalidRequest):
		writeError(w, r, errorMessage(err), http.StatusBadRequest)

	case goerr.HasTag(err, model.ErrTagNotFound):
		writeError(w, r, errorMessage(err), http.StatusNotFound)

	case goerr.HasTag(err, model.ErrTagDataUnavailable):
		ctxlog.From(r.Context()).Warn("Dataset unavailable", "error", err)
		writeError(w, r, "covid19 dataset is temporarily unavailable", http.StatusServiceUnavailable)

	default:
		apperr.Handle(r.Context(), err)
		writeError(w, r, "internal server error", http.StatusInternalServerError)
	}
}

func errorMessage(err error) string {
	if goErr := goerr.Unwrap(err); goErr != nil {
		return goErr.Error()
	}
	return err.Error()
}

func writeError(w http.ResponseWriter, r *http.Request, message string, status int) {
	writeJSON(w, r, status, &errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode response", "error", err)
	}
}

func writeBody(w http.ResponseWriter, r *http.Request, body []byte) {
	if _, err := w.Write(body); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write response body", "error", err)
	}
}
