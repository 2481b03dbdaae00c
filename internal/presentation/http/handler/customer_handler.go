package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/application/service"
	"github.com/petrodesk/station-api/internal/domain/enum"
	"github.com/petrodesk/station-api/internal/domain/repository"
	"github.com/petrodesk/station-api/internal/presentation/http/dto/response"
	"github.com/petrodesk/station-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// CustomerHandler handles credit customer HTTP requests
type CustomerHandler struct {
	creditService *service.CreditService
	reportService *service.ReportService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(creditService *service.CreditService, reportService *service.ReportService) *CustomerHandler {
	return &CustomerHandler{creditService: creditService, reportService: reportService}
}

// Create handles creating a credit customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req struct {
		Name         string          `json:"name" binding:"required"`
		Phone        *string         `json:"phone"`
		Email        *string         `json:"email"`
		Address      *string         `json:"address"`
		VehicleRegNo *string         `json:"vehicle_reg_no"`
		CreditLimit  decimal.Decimal `json:"credit_limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	customer, err := h.creditService.CreateCustomer(c.Request.Context(), &service.CreateCustomerInput{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		VehicleRegNo: req.VehicleRegNo,
		CreditLimit:  req.CreditLimit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created", customer)
}

// Get handles retrieving a credit customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.creditService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved", customer)
}

// Update handles updating a credit customer
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req struct {
		Name         *string          `json:"name"`
		Phone        *string          `json:"phone"`
		Email        *string          `json:"email"`
		Address      *string          `json:"address"`
		VehicleRegNo *string          `json:"vehicle_reg_no"`
		CreditLimit  *decimal.Decimal `json:"credit_limit"`
		Active       *bool            `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	customer, err := h.creditService.UpdateCustomer(c.Request.Context(), id, &service.UpdateCustomerInput{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		VehicleRegNo: req.VehicleRegNo,
		CreditLimit:  req.CreditLimit,
		Active:       req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated", customer)
}

// Delete handles deleting a credit customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.creditService.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// List handles listing credit customers
func (h *CustomerHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{Page: page, PerPage: perPage}

	result, err := h.creditService.ListCustomers(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved", result)
}

// RecordPayment handles recording a payment against a customer's account
func (h *CustomerHandler) RecordPayment(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req struct {
		Amount      decimal.Decimal `json:"amount" binding:"required"`
		ReferenceNo string          `json:"reference_no"`
		Notes       string          `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	txn, err := h.creditService.RecordPayment(c.Request.Context(), &service.RecordPaymentInput{
		CustomerID:  id,
		Amount:      req.Amount,
		ReferenceNo: req.ReferenceNo,
		Notes:       req.Notes,
		CreatedBy:   *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded", txn)
}

// RecordAdjustment handles posting a manual balance correction
func (h *CustomerHandler) RecordAdjustment(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req struct {
		Amount      decimal.Decimal `json:"amount" binding:"required"`
		ReferenceNo string          `json:"reference_no"`
		Notes       string          `json:"notes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	txn, err := h.creditService.RecordAdjustment(c.Request.Context(), &service.RecordAdjustmentInput{
		CustomerID:  id,
		Amount:      req.Amount,
		ReferenceNo: req.ReferenceNo,
		Notes:       req.Notes,
		CreatedBy:   *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Adjustment recorded", txn)
}

// Ledger handles listing a customer's transaction history
func (h *CustomerHandler) Ledger(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	result, err := h.creditService.GetCustomerLedger(c.Request.Context(), id,
		&pagination.PaginationParams{Page: page, PerPage: perPage})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Ledger retrieved", result)
}

// Statement handles downloading a customer's Excel statement
func (h *CustomerHandler) Statement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	data, filename, err := h.reportService.CustomerStatement(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ListCreditSales handles listing receivables
func (h *CustomerHandler) ListCreditSales(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.CreditSaleFilterParams{
		Pagination:  &pagination.PaginationParams{Page: page, PerPage: perPage},
		OverdueOnly: c.Query("overdue") == "true",
	}

	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		if customerID, err := uuid.Parse(customerIDStr); err == nil {
			params.CustomerID = &customerID
		}
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := enum.CreditStatus(statusStr)
		params.Status = &status
	}

	result, err := h.creditService.ListCreditSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Credit sales retrieved", result)
}
