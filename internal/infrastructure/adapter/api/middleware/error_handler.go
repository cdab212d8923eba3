package middleware

import (
	"net/http"

	domainerr "github.com/amirhossein-jamali/realty-processor/internal/domain/error"
	coreport "github.com/amirhossein-jamali/realty-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/realty-processor/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// ErrorHandler recovers from handler panics, logs the failure with the
// request identity, and replies with a generic 500 body. No panic detail
// reaches the client.
func ErrorHandler(logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}

			logger.Error("Panic recovered in API request", map[string]any{
				"error":      recovered,
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"client_ip":  c.ClientIP(),
				"request_id": c.GetHeader("X-Request-ID"),
			})

			c.AbortWithStatusJSON(
				http.StatusInternalServerError,
				dto.NewErrorResponse(domainerr.ErrorCode(domainerr.ErrInternalServer), "Internal server error"),
			)
		}()

		c.Next()
	}
}
