package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/smartventory-api/internal/application/service"
	"github.com/sangkips/smartventory-api/internal/presentation/http/dto/request"
	"github.com/sangkips/smartventory-api/internal/presentation/http/dto/response"
)

// AlertHandler handles WhatsApp alert HTTP requests
type AlertHandler struct {
	alertService *service.AlertService
}

// NewAlertHandler creates a new alert handler
func NewAlertHandler(alertService *service.AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

// GetSettings handles getting the connection status and alert preferences
func (h *AlertHandler) GetSettings(c *gin.Context) {
	settings, err := h.alertService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Alert settings retrieved successfully", settings)
}

// UpdateSettings handles saving the alert preferences
func (h *AlertHandler) UpdateSettings(c *gin.Context) {
	var req request.UpdateAlertSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	settings, err := h.alertService.UpdatePreferences(c.Request.Context(), &service.AlertPreferences{
		LowStockAlerts: req.LowStockAlerts,
		DailySummary:   req.DailySummary,
		WeeklySummary:  req.WeeklySummary,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "WhatsApp alert settings saved successfully", settings)
}

// Connect handles linking the owner's WhatsApp number
func (h *AlertHandler) Connect(c *gin.Context) {
	var req request.ConnectWhatsAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	settings, err := h.alertService.Connect(c.Request.Context(), req.WhatsAppNumber)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Successfully connected to WhatsApp", settings)
}

// Disconnect handles unlinking WhatsApp
func (h *AlertHandler) Disconnect(c *gin.Context) {
	settings, err := h.alertService.Disconnect(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Disconnected from WhatsApp", settings)
}

// SendLowStock handles sending the low stock alert now
func (h *AlertHandler) SendLowStock(c *gin.Context) {
	delivery, err := h.alertService.SendLowStockAlert(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock alert sent", delivery)
}

// SendSummary handles sending the daily or weekly summary now
func (h *AlertHandler) SendSummary(c *gin.Context) {
	delivery, err := h.alertService.SendSummary(c.Request.Context(), c.Param("period"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Summary sent", delivery)
}
