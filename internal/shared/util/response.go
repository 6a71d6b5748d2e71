package util

import (
	"encoding/json"
	"net/http"

	"ride-tracker/internal/shared/apperrors"
)

func ResponseInJson(w http.ResponseWriter, statusCode int, object interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(object)
}

// ErrResponseInJson maps err onto an HTTP status via apperrors. Client errors
// keep their message; anything mapping to 500 is replaced by a generic body
// so storage detail never reaches the caller.
func ErrResponseInJson(w http.ResponseWriter, err error) {
	statusCode := apperrors.StatusCode(err)

	message := err.Error()
	if !apperrors.IsClientError(err) {
		message = "an unexpected error occurred"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func WriteJSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
