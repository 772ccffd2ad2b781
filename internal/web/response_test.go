package web

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"smart-menu/internal/models"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{models.ErrTableNotFound, http.StatusNotFound},
		{models.ErrOrderNotFound, http.StatusNotFound},
		{models.ErrMenuItemNotFound, http.StatusNotFound},
		{models.ErrEmptyOrder, http.StatusBadRequest},
		{models.ErrInvalidStatus, http.StatusBadRequest},
		{models.ErrInvalidRating, http.StatusBadRequest},
		{fmt.Errorf("%w: table_id is required", models.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: ready -> pending", models.ErrInvalidTransition), http.StatusConflict},
		{models.ErrFeedbackNotAllowed, http.StatusUnprocessableEntity},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := StatusForError(tt.err); got != tt.want {
			t.Errorf("StatusForError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
