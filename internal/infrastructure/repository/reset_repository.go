package repository

import (
	"context"
	"fmt"

	"github.com/sangkips/smartventory-api/internal/domain/entity"
	domainRepo "github.com/sangkips/smartventory-api/internal/domain/repository"
	"gorm.io/gorm"
)

type dataResetter struct {
	db *gorm.DB
}

// NewDataResetter creates a resetter over every application table
func NewDataResetter(db *gorm.DB) domainRepo.DataResetter {
	return &dataResetter{db: db}
}

// Reset hard-deletes every row in one transaction. Bill lines go before
// their bills.
func (r *dataResetter) Reset(ctx context.Context) error {
	models := []any{
		&entity.BillLine{},
		&entity.Bill{},
		&entity.BillSequence{},
		&entity.CatalogItem{},
		&entity.StorageEntry{},
		&entity.IdempotencyKey{},
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tx = tx.Unscoped().Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, m := range models {
			if err := tx.Delete(m).Error; err != nil {
				return fmt.Errorf("reset %T: %w", m, err)
			}
		}
		return nil
	})
}
