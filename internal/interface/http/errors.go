package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	app "github.com/oksasatya/go-profile-manager/internal/application"
	"github.com/oksasatya/go-profile-manager/pkg/response"
)

// writeError maps application errors onto status codes.
func writeError(c *gin.Context, err error, details any) {
	status, msg := http.StatusInternalServerError, "internal error"
	switch {
	case errors.Is(err, app.ErrValidation):
		status, msg = http.StatusBadRequest, "invalid profile"
	case errors.Is(err, app.ErrProfileNotFound):
		status, msg = http.StatusNotFound, "profile not found"
	case errors.Is(err, app.ErrConfirmationOpen):
		status, msg = http.StatusConflict, "a confirmation is already open"
	case errors.Is(err, app.ErrNoConfirmation):
		status, msg = http.StatusConflict, "no confirmation is open"
	case errors.Is(err, app.ErrFormClosed):
		status, msg = http.StatusConflict, "form is not open"
	case errors.Is(err, app.ErrUnknownField), errors.Is(err, app.ErrNoTarget), errors.Is(err, app.ErrUnsupportedAvatar):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, app.ErrAvatarStorageDisabled):
		status, msg = http.StatusServiceUnavailable, err.Error()
	case errors.Is(err, app.ErrSaveFailed):
		status, msg = http.StatusInternalServerError, "failed to save profiles"
		if details == nil {
			details = err.Error()
		}
	}
	_ = c.Error(err)
	response.Error[any](c, status, msg, details)
}
