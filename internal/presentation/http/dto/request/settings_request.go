package request

import "github.com/shopspring/decimal"

// UpdateStoreSettingsRequest represents the store details printed on bills
type UpdateStoreSettingsRequest struct {
	StoreName string `json:"storeName" binding:"required,max=255"`
	OwnerName string `json:"ownerName" binding:"max=255"`
	Email     string `json:"email" binding:"omitempty,email"`
	Phone     string `json:"phone" binding:"max=32"`
	Address   string `json:"address" binding:"max=500"`
	GSTNumber string `json:"gstNumber" binding:"max=15"`
}

// UpdateTaxSettingsRequest represents the GST configuration
type UpdateTaxSettingsRequest struct {
	GSTPercentage  decimal.Decimal            `json:"gstPercentage"`
	IncludeTax     bool                       `json:"includeTax"`
	CGSTSGSTSplit  bool                       `json:"cgstSgstSplit"`
	ShowTaxDetails bool                       `json:"showTaxDetails"`
	CategoryRates  map[string]decimal.Decimal `json:"categoryRates"`
}

// UpdateBackupSettingsRequest represents the automatic backup schedule
type UpdateBackupSettingsRequest struct {
	AutoBackup      bool   `json:"autoBackup"`
	BackupFrequency string `json:"backupFrequency" binding:"required"`
}

// ResetRequest must carry confirm=true to wipe the application data
type ResetRequest struct {
	Confirm bool `json:"confirm"`
}

// ConnectWhatsAppRequest represents the owner's WhatsApp number
type ConnectWhatsAppRequest struct {
	WhatsAppNumber string `json:"whatsappNumber" binding:"required"`
}

// UpdateAlertSettingsRequest selects which WhatsApp alerts are sent
type UpdateAlertSettingsRequest struct {
	LowStockAlerts bool `json:"lowStockAlerts"`
	DailySummary   bool `json:"dailySummary"`
	WeeklySummary  bool `json:"weeklySummary"`
}
