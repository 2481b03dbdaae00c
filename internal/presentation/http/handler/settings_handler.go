package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/petrodesk/station-api/internal/application/service"
	"github.com/petrodesk/station-api/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

// SettingsHandler handles station settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get handles retrieving the station settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved", settings)
}

// Update handles updating the station settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var req struct {
		StationName       *string          `json:"station_name"`
		Currency          *string          `json:"currency"`
		CreditTermDays    *int             `json:"credit_term_days"`
		VATRate           *decimal.Decimal `json:"vat_rate"`
		LowStockThreshold *decimal.Decimal `json:"low_stock_threshold"`
		ReceiptFooter     *string          `json:"receipt_footer"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), &service.UpdateSettingsInput{
		StationName:       req.StationName,
		Currency:          req.Currency,
		CreditTermDays:    req.CreditTermDays,
		VATRate:           req.VATRate,
		LowStockThreshold: req.LowStockThreshold,
		ReceiptFooter:     req.ReceiptFooter,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated", settings)
}
