// Package core renders JSON responses and maps errors onto the API's
// wire format.
package core

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/forinda/contentapi/schema"
)

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes a {"message": ...} body, optionally merged with extra
// keys such as a created resource id.
func Message(w http.ResponseWriter, status int, message string, extra map[string]any) {
	body := map[string]any{"message": message}
	for k, v := range extra {
		body[k] = v
	}
	JSON(w, status, body)
}

// Error maps an error onto the API error format.
//
// Validation failures always render as a 400-class response carrying the
// field records verbatim: {"errors": [...]} for multiple records or
// {"error": message} for exactly one. HTTPErrors keep their status.
// Anything else is a 500 with a generic message.
func Error(w http.ResponseWriter, err error) {
	if errs := schema.Extract(err); len(errs) > 0 {
		if len(errs) == 1 {
			JSON(w, http.StatusBadRequest, map[string]any{"error": errs[0].Message})
			return
		}
		JSON(w, http.StatusBadRequest, map[string]any{"errors": errs})
		return
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		JSON(w, httpErr.Code, map[string]any{"error": httpErr.Message})
		return
	}

	JSON(w, http.StatusInternalServerError, map[string]any{"error": ErrInternal.Message})
}
