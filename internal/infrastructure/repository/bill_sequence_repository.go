package repository

import (
	"context"
	"time"

	"github.com/sangkips/smartventory-api/internal/domain/entity"
	domainRepo "github.com/sangkips/smartventory-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type billSequenceRepository struct {
	db *gorm.DB
}

// NewBillSequenceRepository creates a per-day counter repository
func NewBillSequenceRepository(db *gorm.DB) domainRepo.BillSequenceRepository {
	return &billSequenceRepository{db: db}
}

// Next bumps the day's counter with a single upsert so concurrent callers
// never receive the same value
func (r *billSequenceRepository) Next(ctx context.Context, day string) (int64, error) {
	var seq entity.BillSequence
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "day"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"last_number": gorm.Expr("bill_sequences.last_number + 1"),
				"updated_at":  time.Now(),
			}),
		}).Create(&entity.BillSequence{Day: day, LastNumber: 1}).Error
		if err != nil {
			return err
		}
		return tx.First(&seq, "day = ?", day).Error
	})
	if err != nil {
		return 0, err
	}
	return seq.LastNumber, nil
}
