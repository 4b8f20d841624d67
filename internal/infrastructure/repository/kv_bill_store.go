package repository

import (
	"context"

	"github.com/sangkips/smartventory-api/internal/domain/entity"
	domainRepo "github.com/sangkips/smartventory-api/internal/domain/repository"
	"github.com/sangkips/smartventory-api/pkg/pagination"
	"gorm.io/gorm"
)

// kvBillStore keeps every bill in one JSON array under the "bills" key,
// newest first. This is the layout the browser console persisted, so an
// exported array can be imported as-is.
type kvBillStore struct {
	db *gorm.DB
}

// NewKeyValueBillStore creates a bill store backed by storage_entries
func NewKeyValueBillStore(db *gorm.DB) domainRepo.BillRepository {
	return &kvBillStore{db: db}
}

func (s *kvBillStore) ListAll(ctx context.Context) ([]entity.Bill, error) {
	var bills []entity.Bill
	if _, err := loadEntry(s.db.WithContext(ctx), entity.StorageKeyBills, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

func (s *kvBillStore) Append(ctx context.Context, bill *entity.Bill) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bills []entity.Bill
		if _, err := loadEntry(tx, entity.StorageKeyBills, &bills); err != nil {
			return err
		}
		bills = append([]entity.Bill{*bill}, bills...)
		return saveEntry(tx, entity.StorageKeyBills, bills)
	})
}

func (s *kvBillStore) FindByNumber(ctx context.Context, number string) (*entity.Bill, error) {
	bills, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range bills {
		if bills[i].BillNumber == number {
			return &bills[i], nil
		}
	}
	return nil, nil
}

func (s *kvBillStore) Query(ctx context.Context, params *domainRepo.BillFilterParams) ([]entity.Bill, int64, error) {
	bills, err := s.ListAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	matched := make([]entity.Bill, 0, len(bills))
	for i := range bills {
		if params.Matches(&bills[i]) {
			matched = append(matched, bills[i])
		}
	}

	total := int64(len(matched))
	if params != nil && params.Pagination != nil {
		params.Pagination.Validate()
		matched = pagination.Window(matched, params.Pagination)
	}
	return matched, total, nil
}
