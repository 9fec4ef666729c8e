package api

import (
	"encoding/json"
	"net/http"

	"github.com/matthews-wong/setaside-be/internal/apperr"
)

// errorResponse is the wire shape of every non-2xx body.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Respond writes a JSON body with the given status.
func Respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

// RespondError maps a classified error to its HTTP status and writes the
// standard error body. Unclassified errors become a 500 with a generic
// message.
func RespondError(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	if kind == "" {
		kind = "INTERNAL"
	}
	Respond(w, apperr.HTTPStatus(err), errorResponse{
		Error:   string(kind),
		Message: apperr.Message(err),
	})
}

// Decode parses a JSON request body, signalling VALIDATION on malformed
// input.
func Decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Wrap(apperr.KindValidation, "invalid request body", err)
	}
	return nil
}
