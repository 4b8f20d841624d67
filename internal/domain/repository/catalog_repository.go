package repository

import (
	"context"

	"github.com/sangkips/smartventory-api/internal/domain/entity"
	"github.com/sangkips/smartventory-api/pkg/pagination"
)

// CatalogRepository defines the interface for catalog item data operations
type CatalogRepository interface {
	// FindByID returns nil when the item does not exist
	FindByID(ctx context.Context, id uint) (*entity.CatalogItem, error)
	// Search matches item names case-insensitively
	Search(ctx context.Context, query string) ([]entity.CatalogItem, error)
	List(ctx context.Context, params *CatalogFilterParams) ([]entity.CatalogItem, int64, error)
	LowStock(ctx context.Context, threshold int) ([]entity.CatalogItem, error)
	Create(ctx context.Context, item *entity.CatalogItem) error
	CreateBatch(ctx context.Context, items []entity.CatalogItem) error
	Update(ctx context.Context, item *entity.CatalogItem) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// CatalogFilterParams contains filtering parameters for catalog queries
type CatalogFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
}
