package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/petrodesk/station-api/internal/application/service"
	"github.com/petrodesk/station-api/internal/presentation/http/dto/response"
)

// ReconciliationHandler handles credit reconciliation HTTP requests
type ReconciliationHandler struct {
	reconciliationService *service.ReconciliationService
}

// NewReconciliationHandler creates a new reconciliation handler
func NewReconciliationHandler(reconciliationService *service.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{reconciliationService: reconciliationService}
}

// Reconcile handles reconciling one settlement's credit artifacts
func (h *ReconciliationHandler) Reconcile(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	settlementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid settlement ID")
		return
	}

	result, err := h.reconciliationService.ReconcileSettlement(c.Request.Context(), settlementID, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reconciliation completed", result)
}

// ReconcileAll handles reconciling every pending settlement with credit
func (h *ReconciliationHandler) ReconcileAll(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	results, err := h.reconciliationService.ReconcileAll(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Batch reconciliation completed", results)
}

// SyncStatus reports a settlement's credit consistency without writing
func (h *ReconciliationHandler) SyncStatus(c *gin.Context) {
	settlementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid settlement ID")
		return
	}

	report, err := h.reconciliationService.SyncStatus(c.Request.Context(), settlementID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sync status retrieved", report)
}
