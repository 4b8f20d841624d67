package service

import (
	"context"
	"strings"

	"github.com/sangkips/smartventory-api/internal/domain/entity"
	"github.com/sangkips/smartventory-api/internal/domain/repository"
	"github.com/sangkips/smartventory-api/pkg/apperror"
	"github.com/sangkips/smartventory-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// CatalogService handles inventory operations
type CatalogService struct {
	catalogRepo       repository.CatalogRepository
	lowStockThreshold int
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalogRepo repository.CatalogRepository, lowStockThreshold int) *CatalogService {
	return &CatalogService{
		catalogRepo:       catalogRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

// CreateItemInput represents the create catalog item input
type CreateItemInput struct {
	Name          string
	Category      string
	MRP           decimal.Decimal
	PurchasePrice decimal.Decimal
	SellingPrice  decimal.Decimal
	Stock         int
	HSNCode       string
}

// CreateItem adds an item to the catalog
func (s *CatalogService) CreateItem(ctx context.Context, input *CreateItemInput) (*entity.CatalogItem, error) {
	item := &entity.CatalogItem{
		Name:          strings.TrimSpace(input.Name),
		Category:      strings.TrimSpace(input.Category),
		MRP:           entity.NewMoney(input.MRP),
		PurchasePrice: entity.NewMoney(input.PurchasePrice),
		SellingPrice:  entity.NewMoney(input.SellingPrice),
		Stock:         input.Stock,
		HSNCode:       strings.TrimSpace(input.HSNCode),
	}
	if err := validateItem(item); err != nil {
		return nil, err
	}

	if err := s.catalogRepo.Create(ctx, item); err != nil {
		return nil, apperror.NewInternalError("Failed to create item", err)
	}
	return item, nil
}

// GetItem retrieves a catalog item by ID
func (s *CatalogService) GetItem(ctx context.Context, id uint) (*entity.CatalogItem, error) {
	item, err := s.catalogRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load item", err)
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}
	return item, nil
}

// ListItems lists catalog items with filtering
func (s *CatalogService) ListItems(ctx context.Context, params *repository.CatalogFilterParams) (*pagination.PaginatedResult[entity.CatalogItem], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	items, total, err := s.catalogRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to list items", err)
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// SearchItems matches item names for the billing screen picker
func (s *CatalogService) SearchItems(ctx context.Context, query string) ([]entity.CatalogItem, error) {
	items, err := s.catalogRepo.Search(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, apperror.NewInternalError("Failed to search items", err)
	}
	return items, nil
}

// UpdateItemInput represents the update catalog item input
type UpdateItemInput struct {
	ID            uint
	Name          *string
	Category      *string
	MRP           *decimal.Decimal
	PurchasePrice *decimal.Decimal
	SellingPrice  *decimal.Decimal
	Stock         *int
	HSNCode       *string
}

// UpdateItem changes the provided fields of an item
func (s *CatalogService) UpdateItem(ctx context.Context, input *UpdateItemInput) (*entity.CatalogItem, error) {
	item, err := s.GetItem(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Category != nil {
		item.Category = strings.TrimSpace(*input.Category)
	}
	if input.MRP != nil {
		item.MRP = entity.NewMoney(*input.MRP)
	}
	if input.PurchasePrice != nil {
		item.PurchasePrice = entity.NewMoney(*input.PurchasePrice)
	}
	if input.SellingPrice != nil {
		item.SellingPrice = entity.NewMoney(*input.SellingPrice)
	}
	if input.Stock != nil {
		item.Stock = *input.Stock
	}
	if input.HSNCode != nil {
		item.HSNCode = strings.TrimSpace(*input.HSNCode)
	}
	if err := validateItem(item); err != nil {
		return nil, err
	}

	if err := s.catalogRepo.Update(ctx, item); err != nil {
		return nil, apperror.NewInternalError("Failed to update item", err)
	}
	return item, nil
}

// DeleteItem removes an item. Saved bills keep their own snapshot of it.
func (s *CatalogService) DeleteItem(ctx context.Context, id uint) error {
	if _, err := s.GetItem(ctx, id); err != nil {
		return err
	}
	if err := s.catalogRepo.Delete(ctx, id); err != nil {
		return apperror.NewInternalError("Failed to delete item", err)
	}
	return nil
}

// LowStockItems returns items at or below the alert threshold
func (s *CatalogService) LowStockItems(ctx context.Context) ([]entity.CatalogItem, error) {
	items, err := s.catalogRepo.LowStock(ctx, s.lowStockThreshold)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load low stock items", err)
	}
	return items, nil
}

// Categories lists the categories offered when creating items
func (s *CatalogService) Categories() []string {
	out := make([]string, len(entity.DefaultCategories))
	copy(out, entity.DefaultCategories)
	return out
}

func validateItem(item *entity.CatalogItem) error {
	var fieldErrors []apperror.FieldError
	if item.Name == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if item.Category == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "category", Message: "Category is required"})
	}
	if item.MRP.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "mrp", Message: "MRP cannot be negative"})
	}
	if item.PurchasePrice.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "purchasePrice", Message: "Purchase price cannot be negative"})
	}
	if item.SellingPrice.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "sellingPrice", Message: "Selling price cannot be negative"})
	}
	if item.Stock < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "stock", Message: "Stock cannot be negative"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}
