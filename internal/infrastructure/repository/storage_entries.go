package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sangkips/smartventory-api/internal/domain/entity"
	domainRepo "github.com/sangkips/smartventory-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// loadEntry decodes the JSON document under key. It reports false when the
// key is absent.
func loadEntry(db *gorm.DB, key string, dest any) (bool, error) {
	var entry entity.StorageEntry
	err := db.Where(&entity.StorageEntry{Key: key}).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(entry.Value), dest); err != nil {
		return false, fmt.Errorf("decode %q: %w", key, err)
	}
	return true, nil
}

// saveEntry writes value as JSON under key, replacing any previous value
func saveEntry(db *gorm.DB, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	entry := entity.StorageEntry{Key: key, Value: string(data), UpdatedAt: time.Now()}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

type settingsStore struct {
	db *gorm.DB
}

// NewSettingsStore creates a key-value settings store over storage_entries
func NewSettingsStore(db *gorm.DB) domainRepo.SettingsStore {
	return &settingsStore{db: db}
}

func (s *settingsStore) Load(ctx context.Context, key string, dest any) (bool, error) {
	return loadEntry(s.db.WithContext(ctx), key, dest)
}

func (s *settingsStore) Save(ctx context.Context, key string, value any) error {
	return saveEntry(s.db.WithContext(ctx), key, value)
}
