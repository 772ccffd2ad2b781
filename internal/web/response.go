package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"smart-menu/internal/logger"
	"smart-menu/internal/models"
)

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, log *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("response_encoding_failed", "", "Failed to encode JSON response", err, nil)
	}
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, status int, message, requestID string, log *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("response_encoding_failed", "", "Failed to encode error response", err, nil)
	}
}

// StatusForError maps domain error kinds to HTTP status codes.
// Unrecognized errors are treated as internal failures.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrTableNotFound),
		errors.Is(err, models.ErrOrderNotFound),
		errors.Is(err, models.ErrMenuItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrEmptyOrder),
		errors.Is(err, models.ErrInvalidStatus),
		errors.Is(err, models.ErrInvalidRating),
		errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, models.ErrFeedbackNotAllowed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// WriteDomainError writes an error response with the mapped status.
// Internal failures are masked with a generic message.
func WriteDomainError(w http.ResponseWriter, err error, requestID string, log *logger.Logger) {
	status := StatusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	WriteError(w, status, message, requestID, log)
}
