package handler

import (
	"errors"
	"net/http"

	domainerr "github.com/amirhossein-jamali/realty-processor/internal/domain/error"
	"github.com/amirhossein-jamali/realty-processor/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// respondError maps a domain error to an HTTP status and writes the error body
func respondError(c *gin.Context, err error) {
	c.JSON(statusForError(err), dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: err.Error(),
	})
}

// statusForError maps domain errors to HTTP status codes. Domain rule
// violations map to 422, invalid input to 400.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domainerr.ErrValidation),
		errors.Is(err, domainerr.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domainerr.ErrUnauthorized):
		return http.StatusUnauthorized
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, domainerr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domainerr.ErrInvalidTransition),
		errors.Is(err, domainerr.ErrUnmetPartyRequirement),
		errors.Is(err, domainerr.ErrOperationBlocked):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondBadRequest writes a 400 response for malformed input
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
		Message: message,
	})
}
