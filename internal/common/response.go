package common

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the payload carried under the "error" key in failure responses.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// JSON encodes v onto the response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError writes the canonical {"error": {code, message, details}} shape.
func JSONError(w http.ResponseWriter, status int, code, message string, details any) {
	body := ErrorBody{Code: code, Message: message, Details: details}
	JSON(w, status, map[string]any{"error": body})
}
