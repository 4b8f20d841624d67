package service

import (
	"context"
	"strings"
	"time"

	"github.com/sangkips/smartventory-api/internal/domain/billing"
	"github.com/sangkips/smartventory-api/internal/domain/entity"
	"github.com/sangkips/smartventory-api/internal/domain/repository"
	"github.com/sangkips/smartventory-api/pkg/apperror"
)

// SettingsService handles store, tax and backup settings
type SettingsService struct {
	store repository.SettingsStore
}

// NewSettingsService creates a new settings service
func NewSettingsService(store repository.SettingsStore) *SettingsService {
	return &SettingsService{store: store}
}

// GetStoreSettings returns the saved store settings or the defaults
func (s *SettingsService) GetStoreSettings(ctx context.Context) (*entity.StoreSettings, error) {
	settings := entity.DefaultStoreSettings()
	if _, err := s.store.Load(ctx, entity.StorageKeyStoreSettings, &settings); err != nil {
		return nil, apperror.NewInternalError("Failed to load store settings", err)
	}
	return &settings, nil
}

// UpdateStoreSettings replaces the store settings
func (s *SettingsService) UpdateStoreSettings(ctx context.Context, settings *entity.StoreSettings) (*entity.StoreSettings, error) {
	settings.StoreName = strings.TrimSpace(settings.StoreName)
	if settings.StoreName == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "storeName", Message: "Store name is required"},
		})
	}
	if err := s.store.Save(ctx, entity.StorageKeyStoreSettings, settings); err != nil {
		return nil, apperror.NewInternalError("Failed to save store settings", err)
	}
	return settings, nil
}

// GetTaxSettings returns the saved tax settings or the defaults
func (s *SettingsService) GetTaxSettings(ctx context.Context) (*entity.TaxSettings, error) {
	var settings entity.TaxSettings
	found, err := s.store.Load(ctx, entity.StorageKeyTaxSettings, &settings)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load tax settings", err)
	}
	if !found {
		settings = entity.DefaultTaxSettings()
	}
	if settings.CategoryRates == nil {
		settings.CategoryRates = map[string]entity.Percentage{}
	}
	return &settings, nil
}

// UpdateTaxSettings validates every rate before saving
func (s *SettingsService) UpdateTaxSettings(ctx context.Context, settings *entity.TaxSettings) (*entity.TaxSettings, error) {
	if _, err := billing.TaxTableFromSettings(*settings); err != nil {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "categoryRates", Message: err.Error()},
		})
	}
	if err := s.store.Save(ctx, entity.StorageKeyTaxSettings, settings); err != nil {
		return nil, apperror.NewInternalError("Failed to save tax settings", err)
	}
	return settings, nil
}

// TaxTable builds the tax table bills are computed with
func (s *SettingsService) TaxTable(ctx context.Context) (billing.TaxTable, error) {
	settings, err := s.GetTaxSettings(ctx)
	if err != nil {
		return billing.TaxTable{}, err
	}
	table, err := billing.TaxTableFromSettings(*settings)
	if err != nil {
		return billing.TaxTable{}, apperror.NewInternalError("Stored tax settings are invalid", err)
	}
	return table, nil
}

// GetBackupSettings returns the saved backup settings or the defaults
func (s *SettingsService) GetBackupSettings(ctx context.Context) (*entity.BackupSettings, error) {
	settings := entity.DefaultBackupSettings()
	if _, err := s.store.Load(ctx, entity.StorageKeyBackup, &settings); err != nil {
		return nil, apperror.NewInternalError("Failed to load backup settings", err)
	}
	return &settings, nil
}

// UpdateBackupSettings changes the schedule. The last backup time is kept
// from the stored settings.
func (s *SettingsService) UpdateBackupSettings(ctx context.Context, settings *entity.BackupSettings) (*entity.BackupSettings, error) {
	settings.BackupFrequency = strings.ToLower(strings.TrimSpace(settings.BackupFrequency))
	if !entity.ValidBackupFrequency(settings.BackupFrequency) {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "backupFrequency", Message: "Backup frequency must be daily, weekly or monthly"},
		})
	}

	current, err := s.GetBackupSettings(ctx)
	if err != nil {
		return nil, err
	}
	settings.LastBackup = current.LastBackup

	if err := s.store.Save(ctx, entity.StorageKeyBackup, settings); err != nil {
		return nil, apperror.NewInternalError("Failed to save backup settings", err)
	}
	return settings, nil
}

func (s *SettingsService) recordBackup(ctx context.Context, at time.Time) error {
	settings, err := s.GetBackupSettings(ctx)
	if err != nil {
		return err
	}
	settings.LastBackup = at.Format(time.RFC3339)
	if err := s.store.Save(ctx, entity.StorageKeyBackup, settings); err != nil {
		return apperror.NewInternalError("Failed to save backup settings", err)
	}
	return nil
}
