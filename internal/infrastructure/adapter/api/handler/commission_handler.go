package handler

import (
	"fmt"
	"net/http"

	coreport "github.com/amirhossein-jamali/realty-processor/internal/domain/port/core"
	commissionUseCase "github.com/amirhossein-jamali/realty-processor/internal/domain/usecase/commission"
	"github.com/amirhossein-jamali/realty-processor/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CommissionHandler handles commission HTTP requests
type CommissionHandler struct {
	commissionService *commissionUseCase.UseCase
	logger            coreport.Logger
}

// NewCommissionHandler creates a new commission handler instance
func NewCommissionHandler(commissionService *commissionUseCase.UseCase, logger coreport.Logger) *CommissionHandler {
	return &CommissionHandler{
		commissionService: commissionService,
		logger:            logger,
	}
}

// Create handles POST /transactions/:id/commissions
func (h *CommissionHandler) Create(c *gin.Context) {
	transactionID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.CreateCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	percentage, err := decimal.NewFromString(req.Percentage)
	if err != nil {
		respondBadRequest(c, "Invalid percentage: "+req.Percentage)
		return
	}

	commission, err := h.commissionService.Create(c.Request.Context(), transactionID, percentage)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/v1/commissions/%s", commission.ID))
	c.JSON(http.StatusCreated, dto.NewCommissionResponse(commission))
}

// Pay handles POST /commissions/:id/pay. Paying twice is a no-op and
// returns the commission unchanged.
func (h *CommissionHandler) Pay(c *gin.Context) {
	commissionID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	commission, err := h.commissionService.Pay(c.Request.Context(), commissionID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCommissionResponse(commission))
}
