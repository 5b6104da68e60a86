package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"go-agency-backend/internal/delivery/http/response"
	"go-agency-backend/internal/domain"
	"go-agency-backend/pkg/apperror"
	"go-agency-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			var rlErr *domain.RateLimitExceededError
			if errors.As(err, &rlErr) {
				setRateLimitHeaders(c, rlErr)
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		// SECURITY: Never expose internal error details to clients.
		// Log the actual error server-side for debugging, but send a
		// generic message to the user to prevent information disclosure.
		logger.Log.Error("unhandled request error", "path", c.FullPath(), "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}

func setRateLimitHeaders(c *gin.Context, rlErr *domain.RateLimitExceededError) {
	retryAfter := int(time.Until(rlErr.ResetAt).Seconds())
	if retryAfter < 1 {
		retryAfter = 1
	}
	c.Header("X-RateLimit-Limit", strconv.Itoa(rlErr.Limit))
	c.Header("X-RateLimit-Remaining", "0")
	c.Header("X-RateLimit-Reset", rlErr.ResetAt.Format(time.RFC3339))
	c.Header("Retry-After", strconv.Itoa(retryAfter))
}
