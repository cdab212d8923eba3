package handler

import (
	"fmt"
	"net/http"

	"github.com/amirhossein-jamali/realty-processor/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/realty-processor/internal/domain/port/core"
	partyUseCase "github.com/amirhossein-jamali/realty-processor/internal/domain/usecase/party"
	"github.com/amirhossein-jamali/realty-processor/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// PartyHandler handles party roster HTTP requests
type PartyHandler struct {
	partyService *partyUseCase.UseCase
	logger       coreport.Logger
}

// NewPartyHandler creates a new party handler instance
func NewPartyHandler(partyService *partyUseCase.UseCase, logger coreport.Logger) *PartyHandler {
	return &PartyHandler{
		partyService: partyService,
		logger:       logger,
	}
}

// Add handles POST /transactions/:id/parties
func (h *PartyHandler) Add(c *gin.Context) {
	transactionID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.AddPartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	party, err := h.partyService.AddParty(
		c.Request.Context(),
		transactionID,
		req.Name,
		req.Document,
		entity.PartyRole(req.Role),
		req.Email,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/v1/parties/%s", party.ID))
	c.JSON(http.StatusCreated, dto.NewPartyResponse(party))
}

// Remove handles DELETE /parties/:id
func (h *PartyHandler) Remove(c *gin.Context) {
	partyID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.partyService.RemoveParty(c.Request.Context(), partyID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
