package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the generic error body for non-search endpoints. The
// search endpoint carries its own envelope.
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler converts panics that escape a handler into a structured 500,
// tagged with the request ID for log correlation.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				GetLogger().Error("unhandled panic",
					zap.Any("error", r),
					zap.String("path", c.Request.URL.Path),
					zap.String("requestId", c.GetString("requestID")),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError logs and sends a standardized JSON error response.
func JSONError(c *gin.Context, status int, message, details string) {
	GetLogger().Warn(message,
		zap.String("details", details),
		zap.String("requestId", c.GetString("requestID")),
	)
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}
