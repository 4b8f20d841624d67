package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/smartventory-api/internal/application/service"
	"github.com/sangkips/smartventory-api/internal/domain/entity"
	"github.com/sangkips/smartventory-api/internal/presentation/http/dto/request"
	"github.com/sangkips/smartventory-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles settings-related HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetStoreSettings handles getting the store settings
func (h *SettingsHandler) GetStoreSettings(c *gin.Context) {
	settings, err := h.settingsService.GetStoreSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Store settings retrieved successfully", settings)
}

// UpdateStoreSettings handles replacing the store settings
func (h *SettingsHandler) UpdateStoreSettings(c *gin.Context) {
	var req request.UpdateStoreSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	settings, err := h.settingsService.UpdateStoreSettings(c.Request.Context(), &entity.StoreSettings{
		StoreName: req.StoreName,
		OwnerName: req.OwnerName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		GSTNumber: req.GSTNumber,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Store settings updated successfully", settings)
}

// GetTaxSettings handles getting the GST configuration
func (h *SettingsHandler) GetTaxSettings(c *gin.Context) {
	settings, err := h.settingsService.GetTaxSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax settings retrieved successfully", settings)
}

// UpdateTaxSettings handles replacing the GST configuration
func (h *SettingsHandler) UpdateTaxSettings(c *gin.Context) {
	var req request.UpdateTaxSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	rates := make(map[string]entity.Percentage, len(req.CategoryRates))
	for category, rate := range req.CategoryRates {
		rates[category] = entity.Percentage{Decimal: rate}
	}

	settings, err := h.settingsService.UpdateTaxSettings(c.Request.Context(), &entity.TaxSettings{
		GSTPercentage:  entity.Percentage{Decimal: req.GSTPercentage},
		IncludeTax:     req.IncludeTax,
		CGSTSGSTSplit:  req.CGSTSGSTSplit,
		ShowTaxDetails: req.ShowTaxDetails,
		CategoryRates:  rates,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax settings updated successfully", settings)
}
