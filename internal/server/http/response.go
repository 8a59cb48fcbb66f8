package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/scanmed/internal/common"
	"github.com/dmitrijs2005/scanmed/internal/logging"
	"github.com/gin-gonic/gin"
)

// errorStatus maps service errors onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, common.ErrorValidation), errors.Is(err, common.ErrorUnsupportedOperation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func respond(c *gin.Context, status int, message string, key string, value any) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	if key != "" {
		body[key] = value
	}
	c.JSON(status, body)
}

func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}

// writeError logs err and sends it to the client. Internal details stay
// in the log.
func writeError(c *gin.Context, logger logging.Logger, err error) {
	status := errorStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		message = common.ErrorInternal.Error()
	} else {
		logger.Debug(c.Request.Context(), "request rejected", "path", c.FullPath(), "status", status, "error", err)
	}
	abortWithError(c, status, message)
}

// bindJSON decodes the request body into v. Malformed bodies are validation
// errors.
func bindJSON(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return common.NewValidationError("body", "is not valid JSON: "+err.Error())
	}
	return nil
}
