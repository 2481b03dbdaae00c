package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/application/service"
	"github.com/petrodesk/station-api/internal/domain/repository"
	"github.com/petrodesk/station-api/internal/presentation/http/dto/response"
	"github.com/petrodesk/station-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// DeliveryHandler handles fuel delivery HTTP requests
type DeliveryHandler struct {
	deliveryService *service.DeliveryService
}

// NewDeliveryHandler creates a new delivery handler
func NewDeliveryHandler(deliveryService *service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveryService: deliveryService}
}

// Create handles registering an expected delivery
func (h *DeliveryHandler) Create(c *gin.Context) {
	var req struct {
		SupplierID   uuid.UUID       `json:"supplier_id" binding:"required"`
		TankID       uuid.UUID       `json:"tank_id" binding:"required"`
		DeliveryDate string          `json:"delivery_date" binding:"required"`
		Quantity     decimal.Decimal `json:"quantity" binding:"required"`
		UnitCost     decimal.Decimal `json:"unit_cost" binding:"required"`
		InvoiceNo    string          `json:"invoice_no"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	deliveryDate, err := time.Parse("2006-01-02", req.DeliveryDate)
	if err != nil {
		response.BadRequest(c, "delivery_date must be in YYYY-MM-DD format")
		return
	}

	delivery, err := h.deliveryService.CreateDelivery(c.Request.Context(), &service.CreateDeliveryInput{
		SupplierID:   req.SupplierID,
		TankID:       req.TankID,
		DeliveryDate: deliveryDate,
		Quantity:     req.Quantity,
		UnitCost:     req.UnitCost,
		InvoiceNo:    req.InvoiceNo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Delivery created", delivery)
}

// Get handles retrieving a delivery
func (h *DeliveryHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid delivery ID")
		return
	}

	delivery, err := h.deliveryService.GetDelivery(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Delivery retrieved", delivery)
}

// Receive handles marking a delivery received
func (h *DeliveryHandler) Receive(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid delivery ID")
		return
	}

	delivery, err := h.deliveryService.ReceiveDelivery(c.Request.Context(), id, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Delivery received", delivery)
}

// List handles listing deliveries
func (h *DeliveryHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.DeliveryFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
	}

	if supplierIDStr := c.Query("supplier_id"); supplierIDStr != "" {
		if supplierID, err := uuid.Parse(supplierIDStr); err == nil {
			params.SupplierID = &supplierID
		}
	}
	if tankIDStr := c.Query("tank_id"); tankIDStr != "" {
		if tankID, err := uuid.Parse(tankIDStr); err == nil {
			params.TankID = &tankID
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

	result, err := h.deliveryService.ListDeliveries(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Deliveries retrieved", result)
}
