package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cen-na/contrats-backend/internal/pkg/apierr"
	pkgerrors "github.com/cen-na/contrats-backend/internal/pkg/errors"
)

type APIError struct {
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondFromError maps a service error to its HTTP shape: validation
// errors carry the per-field map, apierr errors carry their own status,
// sentinels map to 404/401/400 and anything else is a 500.
func RespondFromError(c *gin.Context, err error) {
	var vErr *pkgerrors.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusUnprocessableEntity, ErrorEnvelope{
			Error: APIError{
				Message: vErr.Error(),
				Code:    "validation_failed",
				Fields:  vErr.Fields,
			},
		})
		return
	}
	var aErr *apierr.Error
	if errors.As(err, &aErr) {
		RespondError(c, aErr.HTTPStatusCode(), aErr.Code, aErr)
		return
	}
	switch {
	case errors.Is(err, pkgerrors.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, pkgerrors.ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, pkgerrors.ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal_error", err)
	}
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
