package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"coderr/internal/pkg/apperr"
)

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Detail(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"detail": message})
}

// FromError writes the response matching err's class. Anything outside the
// client-facing classes is logged and reported as a 500.
func FromError(c *gin.Context, err error) {
	var verr *apperr.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, verr.Fields)
	case errors.Is(err, apperr.ErrInvalidToken):
		Detail(c, http.StatusUnauthorized, apperr.ErrInvalidToken.Error())
	case errors.Is(err, apperr.ErrNotAuthenticated):
		Detail(c, http.StatusUnauthorized, apperr.ErrNotAuthenticated.Error())
	case errors.Is(err, apperr.ErrPermissionDenied):
		Detail(c, http.StatusForbidden, apperr.ErrPermissionDenied.Error())
	case errors.Is(err, apperr.ErrNotFound):
		Detail(c, http.StatusNotFound, err.Error())
	default:
		_ = c.Error(err)
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		Detail(c, http.StatusInternalServerError, "Internal server error.")
	}
}
