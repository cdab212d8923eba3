package middleware

import (
	"net/http"
	"strings"

	domainerr "github.com/amirhossein-jamali/realty-processor/internal/domain/error"
	authport "github.com/amirhossein-jamali/realty-processor/internal/domain/port/auth"
	coreport "github.com/amirhossein-jamali/realty-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/realty-processor/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// ClaimsContextKey is the gin context key under which validated claims are stored
const ClaimsContextKey = "auth_claims"

// Auth middleware validates the Bearer token on incoming requests
func Auth(tokenProvider authport.TokenProvider, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Missing Authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			abortUnauthorized(c, "Authorization header must be a Bearer token")
			return
		}

		claims, err := tokenProvider.Validate(parts[1])
		if err != nil {
			logger.Warn("Rejected request with invalid token", map[string]any{
				"path":      c.Request.URL.Path,
				"method":    c.Request.Method,
				"client_ip": c.ClientIP(),
				"error":     err.Error(),
			})
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ClaimsContextKey, claims)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(domainerr.ErrUnauthorized),
		Message: message,
	})
}
