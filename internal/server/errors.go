package server

import (
	"errors"
	"net/http"

	"github.com/UnknownOlympus/athena/internal/form"
	"github.com/UnknownOlympus/athena/internal/repository"
)

// errorMessageID picks the message shown in a form's error panel.
func errorMessageID(err error) string {
	switch {
	case errors.Is(err, form.ErrSubmitInProgress):
		return "error.submit_in_progress"
	case errors.Is(err, repository.ErrNotFound):
		return "error.not_found"
	case errors.Is(err, repository.ErrInvalidReference):
		return "error.reference"
	case errors.Is(err, repository.ErrConflict):
		return "error.conflict"
	default:
		return "error.generic"
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, form.ErrSubmitInProgress), errors.Is(err, repository.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrInvalidReference):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
