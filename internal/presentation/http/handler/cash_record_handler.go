package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/application/service"
	"github.com/petrodesk/station-api/internal/domain/enum"
	"github.com/petrodesk/station-api/internal/domain/repository"
	"github.com/petrodesk/station-api/internal/presentation/http/dto/response"
	"github.com/petrodesk/station-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// CashRecordHandler handles daily cash settlement HTTP requests
type CashRecordHandler struct {
	cashRecordService *service.CashRecordService
}

// NewCashRecordHandler creates a new cash record handler
func NewCashRecordHandler(cashRecordService *service.CashRecordService) *CashRecordHandler {
	return &CashRecordHandler{cashRecordService: cashRecordService}
}

type creditEntryRequest struct {
	CustomerID uuid.UUID       `json:"customer_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}

// Create handles creating a settlement
func (h *CashRecordHandler) Create(c *gin.Context) {
	var req struct {
		StaffID         uuid.UUID            `json:"staff_id" binding:"required"`
		RecordDate      string               `json:"record_date" binding:"required"`
		CollectedCash   decimal.Decimal      `json:"collected_cash"`
		CollectedCard   decimal.Decimal      `json:"collected_card"`
		CollectedCredit decimal.Decimal      `json:"collected_credit"`
		CreditEntries   []creditEntryRequest `json:"credit_entries"`
		Notes           string               `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	recordDate, err := time.Parse("2006-01-02", req.RecordDate)
	if err != nil {
		response.BadRequest(c, "record_date must be in YYYY-MM-DD format")
		return
	}

	entries := make([]service.CreditEntryInput, 0, len(req.CreditEntries))
	for _, e := range req.CreditEntries {
		entries = append(entries, service.CreditEntryInput{CustomerID: e.CustomerID, Amount: e.Amount})
	}

	record, err := h.cashRecordService.CreateCashRecord(c.Request.Context(), &service.CreateCashRecordInput{
		StaffID:         req.StaffID,
		RecordDate:      recordDate,
		CollectedCash:   req.CollectedCash,
		CollectedCard:   req.CollectedCard,
		CollectedCredit: req.CollectedCredit,
		CreditEntries:   entries,
		Notes:           req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Settlement created", record)
}

// Get handles retrieving a settlement
func (h *CashRecordHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid settlement ID")
		return
	}

	record, err := h.cashRecordService.GetCashRecord(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settlement retrieved", record)
}

// Update handles updating a pending settlement
func (h *CashRecordHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid settlement ID")
		return
	}

	var req struct {
		CollectedCash   *decimal.Decimal     `json:"collected_cash"`
		CollectedCard   *decimal.Decimal     `json:"collected_card"`
		CollectedCredit *decimal.Decimal     `json:"collected_credit"`
		CreditEntries   []creditEntryRequest `json:"credit_entries"`
		Notes           *string              `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var entries []service.CreditEntryInput
	if req.CreditEntries != nil {
		entries = make([]service.CreditEntryInput, 0, len(req.CreditEntries))
		for _, e := range req.CreditEntries {
			entries = append(entries, service.CreditEntryInput{CustomerID: e.CustomerID, Amount: e.Amount})
		}
	}

	record, err := h.cashRecordService.UpdateCashRecord(c.Request.Context(), id, &service.UpdateCashRecordInput{
		CollectedCash:   req.CollectedCash,
		CollectedCard:   req.CollectedCard,
		CollectedCredit: req.CollectedCredit,
		CreditEntries:   entries,
		Notes:           req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settlement updated", record)
}

// Delete handles deleting a pending settlement
func (h *CashRecordHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid settlement ID")
		return
	}

	if err := h.cashRecordService.DeleteCashRecord(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// List handles listing settlements
func (h *CashRecordHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.CashRecordFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
	}

	if staffIDStr := c.Query("staff_id"); staffIDStr != "" {
		if staffID, err := uuid.Parse(staffIDStr); err == nil {
			params.StaffID = &staffID
		}
	}
	if statusStr := c.Query("status"); statusStr != "" {
		if n, err := strconv.Atoi(statusStr); err == nil {
			status := enum.RecordStatus(n)
			params.Status = &status
		}
	}
	if startStr := c.Query("start_date"); startStr != "" {
		if start, err := time.Parse("2006-01-02", startStr); err == nil {
			params.StartDate = &start
		}
	}
	if endStr := c.Query("end_date"); endStr != "" {
		if end, err := time.Parse("2006-01-02", endStr); err == nil {
			params.EndDate = &end
		}
	}

	result, err := h.cashRecordService.ListCashRecords(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Settlements retrieved", result)
}
