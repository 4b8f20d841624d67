package entity

import (
	"time"
)

// Bill is a finalized, persisted invoice. Its JSON form is the bill record
// layout kept in storage: billNumber, customerName, customerPhone, items,
// subtotal, gst, total, profit, date.
type Bill struct {
	ID            uint       `gorm:"primaryKey" json:"-"`
	BillNumber    string     `gorm:"size:32;not null;index" json:"billNumber"` // not unique: random suffixes may collide
	CustomerName  string     `gorm:"size:255" json:"customerName"`
	CustomerPhone string     `gorm:"size:32;index" json:"customerPhone"`
	Items         []BillLine `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal      Money      `gorm:"type:numeric(20,6);not null" json:"subtotal"`
	TaxTotal      Money      `gorm:"column:gst;type:numeric(20,6);not null" json:"gst"`
	Total         Money      `gorm:"type:numeric(20,6);not null" json:"total"`
	Profit        Money      `gorm:"type:numeric(20,6);not null" json:"profit"`
	Date          time.Time  `gorm:"not null;index" json:"date"`
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// CGST is the central half of the tax total, derived for display
func (b *Bill) CGST() Money {
	return b.TaxTotal.Half()
}

// SGST is the state half of the tax total, derived for display
func (b *Bill) SGST() Money {
	return b.TaxTotal.Half()
}

// ItemCount sums the quantities of all lines
func (b *Bill) ItemCount() int {
	n := 0
	for _, l := range b.Items {
		n += l.Quantity
	}
	return n
}

// BillLine is a snapshot of a catalog item on a bill plus the quantity sold
type BillLine struct {
	ID            uint   `gorm:"primaryKey" json:"-"`
	BillID        uint   `gorm:"not null;index" json:"-"`
	Position      int    `gorm:"not null;default:0" json:"-"`
	ItemID        uint   `gorm:"not null;index" json:"id"`
	Name          string `gorm:"size:255;not null" json:"name"`
	Category      string `gorm:"size:100" json:"category"`
	SellingPrice  Money  `gorm:"type:numeric(20,6);not null" json:"sellingPrice"`
	PurchasePrice Money  `gorm:"type:numeric(20,6);not null" json:"purchasePrice"`
	Quantity      int    `gorm:"not null" json:"quantity"`
}

// TableName returns the table name for the BillLine model
func (BillLine) TableName() string {
	return "bill_lines"
}

// Subtotal is sellingPrice x quantity
func (l *BillLine) Subtotal() Money {
	return l.SellingPrice.Times(l.Quantity)
}

// Profit is (sellingPrice - purchasePrice) x quantity
func (l *BillLine) Profit() Money {
	return l.SellingPrice.Minus(l.PurchasePrice).Times(l.Quantity)
}

// NewBillLine snapshots a catalog item at the given quantity
func NewBillLine(item CatalogItem, quantity int) BillLine {
	return BillLine{
		ItemID:        item.ID,
		Name:          item.Name,
		Category:      item.Category,
		SellingPrice:  item.SellingPrice,
		PurchasePrice: item.PurchasePrice,
		Quantity:      quantity,
	}
}

// BillSequence tracks the last bill number issued per calendar day
type BillSequence struct {
	Day        string `gorm:"primaryKey;size:6"` // YYMMDD
	LastNumber int64  `gorm:"not null;default:0"`
	UpdatedAt  time.Time
}

// TableName returns the table name for the BillSequence model
func (BillSequence) TableName() string {
	return "bill_sequences"
}
