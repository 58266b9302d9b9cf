// Package httputil centralizes JSON encoding and domain error translation so
// every handler emits the same error envelope.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"addressfinder/pkg/domainerrors"
)

// ErrorResponse is the JSON error envelope. Fields carries per-field
// validation codes keyed by form field name.
type ErrorResponse struct {
	Error            string            `json:"error"`
	ErrorDescription string            `json:"error_description,omitempty"`
	Fields           map[string]string `json:"fields,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into its HTTP status and envelope.
// Internal errors omit the description so internals never leak to callers.
func WriteError(w http.ResponseWriter, err error) {
	code := domainerrors.CodeInternal
	resp := ErrorResponse{}

	var de *domainerrors.Error
	if errors.As(err, &de) {
		code = de.Code
		resp.Fields = de.Fields
		if code != domainerrors.CodeInternal {
			resp.ErrorDescription = de.Message
		}
	}
	resp.Error = string(code)

	WriteJSON(w, domainerrors.ToHTTPStatus(code), resp)
}

// DecodeJSON decodes a request body into dst. Malformed JSON and fields dst
// does not declare both come back as a bad-request domain error the caller
// can pass straight to WriteError.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domainerrors.New(domainerrors.CodeBadRequest, "request body is not valid JSON")
	}
	return nil
}
