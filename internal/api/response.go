package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/honeycarbs/talentry/internal/errs"
	"github.com/honeycarbs/talentry/pkg/logging"
)

type errorBody struct {
	Error   string    `json:"error"`
	Code    errs.Code `json:"code"`
	Details []string  `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders err with the status its code maps to. Messages of
// uncoded errors are not exposed.
func writeError(w http.ResponseWriter, logger *logging.Logger, r *http.Request, err error) {
	status := errs.HTTPStatus(err)
	body := errorBody{
		Error: "internal server error",
		Code:  errs.CodeOf(err),
	}

	var coded *errs.Error
	if errors.As(err, &coded) {
		body.Error = coded.Message
		body.Details = coded.Details
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	} else {
		logger.Warn("request rejected", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, status, body)
}
