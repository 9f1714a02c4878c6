package handlers

import (
	"errors"
	"net/http"

	"ratehubBack/internal/models"
)

// statusFromError translates the service error taxonomy into HTTP statuses
// so every handler maps failures the same way.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, models.ErrTemplateNotFound),
		errors.Is(err, models.ErrItemNotFound),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrDataSourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrFieldNotFound),
		errors.Is(err, models.ErrMissingRequiredField),
		errors.Is(err, models.ErrInvalidFieldValue),
		errors.Is(err, models.ErrUnsupportedFieldType),
		errors.Is(err, models.ErrInvalidFieldReference),
		errors.Is(err, models.ErrInvalidFilterField),
		errors.Is(err, models.ErrInvalidPagination),
		errors.Is(err, models.ErrInvalidRating),
		errors.Is(err, models.ErrInvalidResetCode):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrDuplicateEmail):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
	}
	http.Error(w, msg, status)
}
