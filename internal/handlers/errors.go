package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"alphabetquest/internal/service"
)

// writeJSON writes v as a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse is the JSON body for all error responses
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// respondWithError maps service errors to HTTP status codes. Validation
// failures become 400 with the offending field, missing resources become
// 404, everything else is logged and reported as a 500.
func respondWithError(w http.ResponseWriter, logMsg string, err error) {
	var validationErr service.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: validationErr.Message,
			Field: validationErr.Field,
		})
		return
	}

	var notFoundErr service.NotFoundError
	if errors.As(err, &notFoundErr) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: notFoundErr.Error()})
		return
	}

	log.Printf("%s: %v", logMsg, err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}
