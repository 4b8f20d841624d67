package repository

import (
	"context"
	"errors"

	"github.com/sangkips/smartventory-api/internal/domain/entity"
	domainRepo "github.com/sangkips/smartventory-api/internal/domain/repository"
	"gorm.io/gorm"
)

// billRepository keeps bills in the bills and bill_lines tables. Insertion
// order is the primary key, so newest-first is id DESC.
type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates the relational bill store
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

func preloadLines(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC, id ASC")
}

func (r *billRepository) ListAll(ctx context.Context) ([]entity.Bill, error) {
	var bills []entity.Bill
	err := r.db.WithContext(ctx).
		Preload("Items", preloadLines).
		Order("id DESC").
		Find(&bills).Error
	return bills, err
}

func (r *billRepository) Append(ctx context.Context, bill *entity.Bill) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(bill).Error
	})
}

func (r *billRepository) FindByNumber(ctx context.Context, number string) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).
		Preload("Items", preloadLines).
		Where("bill_number = ?", number).
		Order("id DESC").
		First(&bill).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) Query(ctx context.Context, params *domainRepo.BillFilterParams) ([]entity.Bill, int64, error) {
	var bills []entity.Bill
	var total int64

	if params == nil {
		params = &domainRepo.BillFilterParams{}
	}

	query := r.db.WithContext(ctx).Model(&entity.Bill{}).
		Scopes(DateRange("date", params.From, params.To))

	if params.Search != "" {
		query = query.Where(`LOWER(customer_name) LIKE ? ESCAPE '\' OR LOWER(bill_number) LIKE ? ESCAPE '\' OR customer_phone LIKE ? ESCAPE '\'`,
			likePattern(params.Search), likePattern(params.Search), "%"+escapeLike(params.Search)+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Preload("Items", preloadLines).
		Order("id DESC").
		Find(&bills).Error

	return bills, total, err
}
