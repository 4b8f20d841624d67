package entity

import (
	"time"

	"gorm.io/gorm"
)

// CatalogItem represents a sellable product in the inventory
type CatalogItem struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"size:255;not null;index" json:"name"`
	Category      string         `gorm:"size:100;not null;index" json:"category"`
	MRP           Money          `gorm:"type:numeric(20,6);not null;default:0" json:"mrp"`
	PurchasePrice Money          `gorm:"type:numeric(20,6);not null;default:0" json:"purchasePrice"`
	SellingPrice  Money          `gorm:"type:numeric(20,6);not null;default:0" json:"sellingPrice"`
	Stock         int            `gorm:"default:0" json:"stock"`
	HSNCode       string         `gorm:"size:20" json:"hsnCode"`
	CreatedAt     time.Time      `json:"-"`
	UpdatedAt     time.Time      `json:"-"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the table name for the CatalogItem model
func (CatalogItem) TableName() string {
	return "catalog_items"
}

// DefaultCategories lists the inventory categories offered when creating items.
var DefaultCategories = []string{
	"Electronics",
	"Clothing",
	"Food & Beverages",
	"Home Appliances",
	"Furniture",
	"Sports & Fitness",
	"Books & Stationery",
	"Toys & Games",
	"Health & Beauty",
	"Automotive",
}
