package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/application/service"
	"github.com/petrodesk/station-api/internal/domain/enum"
	"github.com/petrodesk/station-api/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

// TankHandler handles fuel tank HTTP requests
type TankHandler struct {
	tankService *service.TankService
}

// NewTankHandler creates a new tank handler
func NewTankHandler(tankService *service.TankService) *TankHandler {
	return &TankHandler{tankService: tankService}
}

// Create handles creating a tank
func (h *TankHandler) Create(c *gin.Context) {
	var req struct {
		Name         string          `json:"name" binding:"required"`
		ProductID    uuid.UUID       `json:"product_id" binding:"required"`
		Capacity     decimal.Decimal `json:"capacity" binding:"required"`
		CurrentLevel decimal.Decimal `json:"current_level"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tank, err := h.tankService.CreateTank(c.Request.Context(), &service.CreateTankInput{
		Name:         req.Name,
		ProductID:    req.ProductID,
		Capacity:     req.Capacity,
		CurrentLevel: req.CurrentLevel,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Tank created", tank)
}

// Get handles retrieving a tank
func (h *TankHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tank ID")
		return
	}

	tank, err := h.tankService.GetTank(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tank retrieved", tank)
}

// Update handles updating a tank
func (h *TankHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tank ID")
		return
	}

	var req struct {
		Name     *string          `json:"name"`
		Capacity *decimal.Decimal `json:"capacity"`
		Status   *int             `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.UpdateTankInput{
		Name:     req.Name,
		Capacity: req.Capacity,
	}
	if req.Status != nil {
		status := enum.TankStatus(*req.Status)
		input.Status = &status
	}

	tank, err := h.tankService.UpdateTank(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tank updated", tank)
}

// Delete handles deleting a tank
func (h *TankHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tank ID")
		return
	}

	if err := h.tankService.DeleteTank(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// List handles listing tanks
func (h *TankHandler) List(c *gin.Context) {
	tanks, err := h.tankService.ListTanks(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tanks retrieved", tanks)
}

// Dip handles recording a manual dip reading
func (h *TankHandler) Dip(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tank ID")
		return
	}

	var req struct {
		MeasuredLevel decimal.Decimal `json:"measured_level" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tank, err := h.tankService.DipTank(c.Request.Context(), id, req.MeasuredLevel)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dip recorded", tank)
}
