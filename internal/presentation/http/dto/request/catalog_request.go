package request

import "github.com/shopspring/decimal"

// CreateCatalogItemRequest represents a catalog item creation request.
// Prices accept JSON numbers or numeric strings.
type CreateCatalogItemRequest struct {
	Name          string          `json:"name" binding:"required,max=255"`
	Category      string          `json:"category" binding:"required,max=100"`
	MRP           decimal.Decimal `json:"mrp"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	Stock         int             `json:"stock" binding:"min=0"`
	HSNCode       string          `json:"hsnCode" binding:"omitempty,max=20"`
}

// UpdateCatalogItemRequest represents a catalog item update request
type UpdateCatalogItemRequest struct {
	Name          *string          `json:"name" binding:"omitempty,max=255"`
	Category      *string          `json:"category" binding:"omitempty,max=100"`
	MRP           *decimal.Decimal `json:"mrp"`
	PurchasePrice *decimal.Decimal `json:"purchasePrice"`
	SellingPrice  *decimal.Decimal `json:"sellingPrice"`
	Stock         *int             `json:"stock" binding:"omitempty,min=0"`
	HSNCode       *string          `json:"hsnCode" binding:"omitempty,max=20"`
}

// CatalogFilterRequest represents catalog filter parameters
type CatalogFilterRequest struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}
