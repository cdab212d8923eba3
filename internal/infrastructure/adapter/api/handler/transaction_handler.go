package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/amirhossein-jamali/realty-processor/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/realty-processor/internal/domain/port/core"
	"github.com/amirhossein-jamali/realty-processor/internal/domain/port/persistence"
	commissionUseCase "github.com/amirhossein-jamali/realty-processor/internal/domain/usecase/commission"
	partyUseCase "github.com/amirhossein-jamali/realty-processor/internal/domain/usecase/party"
	transactionUseCase "github.com/amirhossein-jamali/realty-processor/internal/domain/usecase/transaction"
	"github.com/amirhossein-jamali/realty-processor/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles sale transaction HTTP requests
type TransactionHandler struct {
	transactionService *transactionUseCase.Service
	partyService       *partyUseCase.UseCase
	commissionService  *commissionUseCase.UseCase
	logger             coreport.Logger
}

// NewTransactionHandler creates a new transaction handler instance
func NewTransactionHandler(
	transactionService *transactionUseCase.Service,
	partyService *partyUseCase.UseCase,
	commissionService *commissionUseCase.UseCase,
	logger coreport.Logger,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		partyService:       partyService,
		commissionService:  commissionService,
		logger:             logger,
	}
}

// Create handles POST /transactions
func (h *TransactionHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	saleValue, err := decimal.NewFromString(req.SaleValue)
	if err != nil {
		respondBadRequest(c, "Invalid sale value: "+req.SaleValue)
		return
	}

	transaction, err := h.transactionService.Create(c.Request.Context(), req.PropertyCode, saleValue)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/v1/transactions/%s", transaction.ID))
	c.JSON(http.StatusCreated, dto.NewTransactionResponse(transaction))
}

// Get handles GET /transactions/:id
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	transaction, err := h.transactionService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	parties, err := h.partyService.ListByTransaction(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	commissions, err := h.commissionService.ListByTransaction(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	detail := dto.TransactionDetailResponse{
		TransactionResponse: dto.NewTransactionResponse(transaction),
		Parties:             make([]dto.PartyResponse, 0, len(parties)),
		Commissions:         make([]dto.CommissionResponse, 0, len(commissions)),
	}
	for i := range parties {
		detail.Parties = append(detail.Parties, dto.NewPartyResponse(&parties[i]))
	}
	for i := range commissions {
		detail.Commissions = append(detail.Commissions, dto.NewCommissionResponse(&commissions[i]))
	}

	c.JSON(http.StatusOK, detail)
}

// List handles GET /transactions
func (h *TransactionHandler) List(c *gin.Context) {
	filter, ok := h.parseListFilter(c)
	if !ok {
		return
	}

	transactions, total, err := h.transactionService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.TransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, dto.NewTransactionResponse(&transactions[i]))
	}

	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, responses)
}

// Update handles PUT /transactions/:id
func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	saleValue, err := decimal.NewFromString(req.SaleValue)
	if err != nil {
		respondBadRequest(c, "Invalid sale value: "+req.SaleValue)
		return
	}

	transaction, err := h.transactionService.Update(c.Request.Context(), id, req.PropertyCode, saleValue)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionResponse(transaction))
}

// ChangeStatus handles PATCH /transactions/:id/status
func (h *TransactionHandler) ChangeStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	transaction, err := h.transactionService.ChangeStatus(c.Request.Context(), id, entity.TransactionStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionResponse(transaction))
}

// Delete handles DELETE /transactions/:id
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.transactionService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseListFilter builds a transaction filter from the query string
func (h *TransactionHandler) parseListFilter(c *gin.Context) (persistence.TransactionFilter, bool) {
	var filter persistence.TransactionFilter

	if raw := c.Query("status"); raw != "" {
		if !entity.IsValidStatus(raw) {
			respondBadRequest(c, "Invalid status filter: "+raw)
			return filter, false
		}
		status := entity.TransactionStatus(raw)
		filter.Status = &status
	}

	filter.PropertyCode = c.Query("propertyCode")

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondBadRequest(c, "Invalid from date, expected RFC3339: "+raw)
			return filter, false
		}
		filter.CreatedFrom = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondBadRequest(c, "Invalid to date, expected RFC3339: "+raw)
			return filter, false
		}
		filter.CreatedTo = &to
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			respondBadRequest(c, "Invalid limit: "+raw)
			return filter, false
		}
		filter.Limit = limit
	}
	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			respondBadRequest(c, "Invalid offset: "+raw)
			return filter, false
		}
		filter.Offset = offset
	}

	return filter, true
}

// parseUUIDParam extracts a UUID path parameter, writing a 400 response on failure
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondBadRequest(c, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}
