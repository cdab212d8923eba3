package handler

import (
	"net/http"

	authport "github.com/amirhossein-jamali/realty-processor/internal/domain/port/auth"
	coreport "github.com/amirhossein-jamali/realty-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/realty-processor/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// serviceSubject is the subject stamped on tokens issued by the open endpoint
const serviceSubject = "realty-processor-client"

// AuthHandler handles token issuing requests
type AuthHandler struct {
	tokenProvider authport.TokenProvider
	logger        coreport.Logger
}

// NewAuthHandler creates a new auth handler instance
func NewAuthHandler(tokenProvider authport.TokenProvider, logger coreport.Logger) *AuthHandler {
	return &AuthHandler{
		tokenProvider: tokenProvider,
		logger:        logger,
	}
}

// Token handles GET /token
func (h *AuthHandler) Token(c *gin.Context) {
	token, expiresIn, err := h.tokenProvider.Issue(serviceSubject)
	if err != nil {
		h.logger.Error("Failed to issue token", map[string]any{
			"error": err.Error(),
		})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(expiresIn.Seconds()),
	})
}
