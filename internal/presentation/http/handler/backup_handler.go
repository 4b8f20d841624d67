package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/smartventory-api/internal/application/service"
	"github.com/sangkips/smartventory-api/internal/domain/entity"
	"github.com/sangkips/smartventory-api/internal/presentation/http/dto/request"
	"github.com/sangkips/smartventory-api/internal/presentation/http/dto/response"
)

// BackupHandler handles backup and reset HTTP requests
type BackupHandler struct {
	settingsService *service.SettingsService
	backupService   *service.BackupService
}

// NewBackupHandler creates a new backup handler
func NewBackupHandler(settingsService *service.SettingsService, backupService *service.BackupService) *BackupHandler {
	return &BackupHandler{
		settingsService: settingsService,
		backupService:   backupService,
	}
}

// GetSettings handles getting the backup settings
func (h *BackupHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetBackupSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Backup settings retrieved successfully", settings)
}

// UpdateSettings handles changing the backup schedule
func (h *BackupHandler) UpdateSettings(c *gin.Context) {
	var req request.UpdateBackupSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	settings, err := h.settingsService.UpdateBackupSettings(c.Request.Context(), &entity.BackupSettings{
		AutoBackup:      req.AutoBackup,
		BackupFrequency: req.BackupFrequency,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Backup settings saved successfully", settings)
}

// Export handles a manual backup, downloaded as a JSON file
func (h *BackupHandler) Export(c *gin.Context) {
	snap, err := h.backupService.Backup(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+snap.FileName()+`"`)
	c.JSON(http.StatusOK, snap)
}

// Reset handles wiping every bill, item and setting
func (h *BackupHandler) Reset(c *gin.Context) {
	var req request.ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	if !req.Confirm {
		response.BadRequest(c, "Set confirm to true to reset the application")
		return
	}

	if err := h.backupService.Reset(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Application has been reset", nil)
}
