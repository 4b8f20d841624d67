package entity

import (
	"slices"
	"time"
)

// Well-known storage keys
const (
	StorageKeyBills         = "bills"
	StorageKeyStoreSettings = "storeSettings"
	StorageKeyTaxSettings   = "taxSettings"
	StorageKeyBackup        = "backupSettings"
	StorageKeyAlerts        = "whatsappAlerts"
)

// StorageEntry is a single key/value record in the local storage table.
// Values are JSON documents.
type StorageEntry struct {
	Key       string    `gorm:"primaryKey;size:100"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for StorageEntry
func (StorageEntry) TableName() string {
	return "storage_entries"
}

// StoreSettings describes the business printed on bills and receipts
type StoreSettings struct {
	StoreName string `json:"storeName"`
	OwnerName string `json:"ownerName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	GSTNumber string `json:"gstNumber"`
}

// DefaultStoreSettings returns the settings used before the owner edits them
func DefaultStoreSettings() StoreSettings {
	return StoreSettings{
		StoreName: "My Business",
		OwnerName: "John Doe",
		Email:     "john@example.com",
		Phone:     "9876543210",
		Address:   "123 Main Street, City, State, 123456",
		GSTNumber: "22AAAAA0000A1Z5",
	}
}

// TaxSettings holds GST configuration. GSTPercentage is the default rate
// for categories absent from CategoryRates.
type TaxSettings struct {
	GSTPercentage  Percentage            `json:"gstPercentage"`
	IncludeTax     bool                  `json:"includeTax"`
	CGSTSGSTSplit  bool                  `json:"cgstSgstSplit"`
	ShowTaxDetails bool                  `json:"showTaxDetails"`
	CategoryRates  map[string]Percentage `json:"categoryRates"`
}

// DefaultTaxSettings returns the stock GST table
func DefaultTaxSettings() TaxSettings {
	return TaxSettings{
		GSTPercentage:  PercentageFromInt(18),
		IncludeTax:     true,
		CGSTSGSTSplit:  true,
		ShowTaxDetails: true,
		CategoryRates: map[string]Percentage{
			"Electronics":     PercentageFromInt(18),
			"Clothing":        PercentageFromInt(5),
			"Health & Beauty": PercentageFromInt(12),
		},
	}
}

// Backup frequencies
const (
	BackupDaily   = "daily"
	BackupWeekly  = "weekly"
	BackupMonthly = "monthly"
)

// NeverBackedUp is the LastBackup value before the first backup
const NeverBackedUp = "Never"

// BackupSettings controls automatic snapshots of the local data. LastBackup
// is an RFC 3339 time or NeverBackedUp.
type BackupSettings struct {
	AutoBackup      bool   `json:"autoBackup"`
	BackupFrequency string `json:"backupFrequency"`
	LastBackup      string `json:"lastBackup"`
}

// DefaultBackupSettings returns daily automatic backups, none taken yet
func DefaultBackupSettings() BackupSettings {
	return BackupSettings{
		AutoBackup:      true,
		BackupFrequency: BackupDaily,
		LastBackup:      NeverBackedUp,
	}
}

// ValidBackupFrequency reports whether f is daily, weekly or monthly
func ValidBackupFrequency(f string) bool {
	return slices.Contains([]string{BackupDaily, BackupWeekly, BackupMonthly}, f)
}

// BackupDue reports whether an automatic backup should run at now. A store
// that was never backed up is due immediately.
func (b BackupSettings) BackupDue(now time.Time) bool {
	if !b.AutoBackup {
		return false
	}
	last, err := time.Parse(time.RFC3339, b.LastBackup)
	if err != nil {
		return true
	}
	next := last.AddDate(0, 0, 1)
	switch b.BackupFrequency {
	case BackupWeekly:
		next = last.AddDate(0, 0, 7)
	case BackupMonthly:
		next = last.AddDate(0, 1, 0)
	}
	return !now.Before(next)
}

// AlertSettings holds the WhatsApp alert preferences of the store owner
type AlertSettings struct {
	WhatsAppNumber string `json:"whatsappNumber"`
	Connected      bool   `json:"connected"`
	LowStockAlerts bool   `json:"lowStockAlerts"`
	DailySummary   bool   `json:"dailySummary"`
	WeeklySummary  bool   `json:"weeklySummary"`

	// Bookkeeping for the alert scheduler
	LastDailySummary  string `json:"lastDailySummary,omitempty"`
	LastWeeklySummary string `json:"lastWeeklySummary,omitempty"`
	LowStockNotified  []uint `json:"lowStockNotified,omitempty"`
}

// DefaultAlertSettings returns the preferences of a store that has not
// connected WhatsApp yet
func DefaultAlertSettings() AlertSettings {
	return AlertSettings{
		LowStockAlerts: true,
		WeeklySummary:  true,
	}
}
