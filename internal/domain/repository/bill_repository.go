package repository

import (
	"context"
	"strings"
	"time"

	"github.com/sangkips/smartventory-api/internal/domain/entity"
	"github.com/sangkips/smartventory-api/pkg/pagination"
)

// BillStore is the durable, newest-first collection of saved bills
type BillStore interface {
	// ListAll returns every persisted bill, most recent first
	ListAll(ctx context.Context) ([]entity.Bill, error)
	// Append persists a bill at the head of the collection
	Append(ctx context.Context, bill *entity.Bill) error
}

// BillRepository adds lookups used by the history and report screens
type BillRepository interface {
	BillStore
	// FindByNumber returns the most recent bill with the number, or nil
	FindByNumber(ctx context.Context, number string) (*entity.Bill, error)
	Query(ctx context.Context, params *BillFilterParams) ([]entity.Bill, int64, error)
}

// BillSequenceRepository hands out per-day bill counters
type BillSequenceRepository interface {
	// Next increments and returns the counter for day (YYMMDD)
	Next(ctx context.Context, day string) (int64, error)
}

// BillFilterParams contains filtering parameters for bill history queries.
// From is inclusive, To is exclusive. A nil Pagination returns every match.
type BillFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	From       *time.Time
	To         *time.Time
}

// Matches reports whether a bill satisfies the filter. Search matches the
// customer name or bill number case-insensitively, or the phone as a plain
// substring.
func (p *BillFilterParams) Matches(b *entity.Bill) bool {
	if p == nil {
		return true
	}
	if p.From != nil && b.Date.Before(*p.From) {
		return false
	}
	if p.To != nil && !b.Date.Before(*p.To) {
		return false
	}
	if p.Search == "" {
		return true
	}
	q := strings.ToLower(p.Search)
	return strings.Contains(strings.ToLower(b.CustomerName), q) ||
		strings.Contains(strings.ToLower(b.BillNumber), q) ||
		strings.Contains(b.CustomerPhone, p.Search)
}
