package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/salonkit/settlement-api/internal/application/service"
	"github.com/salonkit/settlement-api/internal/domain/enum"
	domainRepo "github.com/salonkit/settlement-api/internal/domain/repository"
	"github.com/salonkit/settlement-api/internal/presentation/http/dto/request"
	"github.com/salonkit/settlement-api/internal/presentation/http/dto/response"
	"github.com/salonkit/settlement-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// SettlementHandler handles settlement-related HTTP requests
type SettlementHandler struct {
	settlementService *service.SettlementService
	summaryDays       int
}

// NewSettlementHandler creates a new settlement handler
func NewSettlementHandler(settlementService *service.SettlementService, summaryDays int) *SettlementHandler {
	if summaryDays <= 0 {
		summaryDays = 30
	}
	return &SettlementHandler{
		settlementService: settlementService,
		summaryDays:       summaryDays,
	}
}

// Open handles opening the day's settlement
func (h *SettlementHandler) Open(c *gin.Context) {
	userID := GetUserID(c)
	organizationID := GetOrganizationID(c)
	if userID == nil || organizationID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.OpenSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	settlement, err := h.settlementService.Open(c.Request.Context(), &service.OpenSettlementInput{
		OrganizationID: *organizationID,
		Date:           date,
		OpeningCash:    req.OpeningCash,
		OpenedBy:       userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Settlement opened successfully", settlement)
}

// AddCashOperation handles appending a deposit or withdrawal to the ledger
func (h *SettlementHandler) AddCashOperation(c *gin.Context) {
	userID := GetUserID(c)
	organizationID := GetOrganizationID(c)
	if userID == nil || organizationID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	settlementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid settlement ID")
		return
	}

	var req request.CashOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	record, err := h.settlementService.AddCashOperation(c.Request.Context(), &service.CashOperationInput{
		SettlementID:   settlementID,
		OrganizationID: *organizationID,
		OperationType:  enum.OperationType(req.OperationType),
		Amount:         req.Amount,
		Reason:         req.Reason,
		OperatedBy:     userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Cash operation recorded successfully", record)
}

// Close handles closing a settlement with the counted cash
func (h *SettlementHandler) Close(c *gin.Context) {
	userID := GetUserID(c)
	organizationID := GetOrganizationID(c)
	if userID == nil || organizationID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	settlementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid settlement ID")
		return
	}

	var req request.CloseSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	settlement, err := h.settlementService.Close(c.Request.Context(), &service.CloseSettlementInput{
		SettlementID:   settlementID,
		OrganizationID: *organizationID,
		ClosingCash:    req.ClosingCash,
		Notes:          req.Notes,
		ClosedBy:       userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settlement closed successfully", settlement)
}

// GetByDate handles retrieving the settlement for a calendar day
func (h *SettlementHandler) GetByDate(c *gin.Context) {
	organizationID := GetOrganizationID(c)
	if organizationID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var date time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := parseDate(dateStr)
		if err != nil {
			response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	settlement, err := h.settlementService.GetByDate(c.Request.Context(), *organizationID, date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settlement retrieved successfully", settlement)
}

// Get handles retrieving a single settlement
func (h *SettlementHandler) Get(c *gin.Context) {
	organizationID := GetOrganizationID(c)
	if organizationID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	settlementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid settlement ID")
		return
	}

	settlement, err := h.settlementService.Get(c.Request.Context(), *organizationID, settlementID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settlement retrieved successfully", settlement)
}

// CashDrawerRecords handles retrieving a settlement's ledger
func (h *SettlementHandler) CashDrawerRecords(c *gin.Context) {
	organizationID := GetOrganizationID(c)
	if organizationID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	settlementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid settlement ID")
		return
	}

	records, err := h.settlementService.GetCashDrawerRecords(c.Request.Context(), *organizationID, settlementID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cash drawer records retrieved successfully", records)
}

// List handles listing settlements with filters
func (h *SettlementHandler) List(c *gin.Context) {
	organizationID := GetOrganizationID(c)
	if organizationID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &domainRepo.SettlementFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	if startStr := c.Query("start_date"); startStr != "" {
		start, err := parseDate(startStr)
		if err != nil {
			response.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
			return
		}
		params.StartDate = &start
	}
	if endStr := c.Query("end_date"); endStr != "" {
		end, err := parseDate(endStr)
		if err != nil {
			response.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
			return
		}
		params.EndDate = &end
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := enum.SettlementStatus(statusStr)
		if !status.IsValid() {
			response.BadRequest(c, "Invalid status")
			return
		}
		params.Status = &status
	}
	if operatorStr := c.Query("operator_id"); operatorStr != "" {
		operatorID, err := uuid.Parse(operatorStr)
		if err != nil {
			response.BadRequest(c, "Invalid operator_id")
			return
		}
		params.OperatorID = &operatorID
	}
	if minStr := c.Query("min_difference"); minStr != "" {
		min, err := decimal.NewFromString(minStr)
		if err != nil {
			response.BadRequest(c, "Invalid min_difference")
			return
		}
		params.MinDifference = &min
	}
	if maxStr := c.Query("max_difference"); maxStr != "" {
		max, err := decimal.NewFromString(maxStr)
		if err != nil {
			response.BadRequest(c, "Invalid max_difference")
			return
		}
		params.MaxDifference = &max
	}

	result, err := h.settlementService.List(c.Request.Context(), *organizationID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Settlements retrieved successfully", result)
}

// DailyStats handles computing the daily stats for one day
func (h *SettlementHandler) DailyStats(c *gin.Context) {
	organizationID := GetOrganizationID(c)
	if organizationID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	// Zero value means today in the organization's timezone.
	var date time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := parseDate(dateStr)
		if err != nil {
			response.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		date = parsed
	}

	stats, err := h.settlementService.CalculateDailyStats(c.Request.Context(), *organizationID, date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Daily stats calculated successfully", stats)
}

// Summary handles the cross-day settlement summary
func (h *SettlementHandler) Summary(c *gin.Context) {
	organizationID := GetOrganizationID(c)
	if organizationID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	days := h.summaryDays
	if daysStr := c.Query("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed <= 0 {
			response.BadRequest(c, "Invalid days")
			return
		}
		days = parsed
	}

	summary, err := h.settlementService.GetSummary(c.Request.Context(), *organizationID, days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settlement summary retrieved successfully", summary)
}

// Operators handles listing users that have operated settlements
func (h *SettlementHandler) Operators(c *gin.Context) {
	organizationID := GetOrganizationID(c)
	if organizationID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	operators, err := h.settlementService.GetOperators(c.Request.Context(), *organizationID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Operators retrieved successfully", operators)
}
