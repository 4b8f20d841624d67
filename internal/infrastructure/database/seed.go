package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sangkips/smartventory-api/internal/domain/billing"
	"github.com/sangkips/smartventory-api/internal/domain/entity"
	"github.com/sangkips/smartventory-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SampleCatalog is the starter inventory of a new install
func SampleCatalog() []entity.CatalogItem {
	return []entity.CatalogItem{
		{ID: 1, Name: "Samsung Galaxy S21", Category: "Electronics", MRP: entity.MustMoney("69999"), PurchasePrice: entity.MustMoney("58000"), SellingPrice: entity.MustMoney("64999"), Stock: 15, HSNCode: "85171290"},
		{ID: 2, Name: "Nike Air Max", Category: "Clothing", MRP: entity.MustMoney("12999"), PurchasePrice: entity.MustMoney("8500"), SellingPrice: entity.MustMoney("11999"), Stock: 8, HSNCode: "64041900"},
		{ID: 3, Name: "Logitech MX Master Mouse", Category: "Electronics", MRP: entity.MustMoney("10999"), PurchasePrice: entity.MustMoney("7200"), SellingPrice: entity.MustMoney("9999"), Stock: 22, HSNCode: "84716090"},
		{ID: 4, Name: "Sony WH-1000XM4 Headphones", Category: "Electronics", MRP: entity.MustMoney("29999"), PurchasePrice: entity.MustMoney("22000"), SellingPrice: entity.MustMoney("27999"), Stock: 5, HSNCode: "85183000"},
		{ID: 5, Name: "Dettol Hand Sanitizer", Category: "Health & Beauty", MRP: entity.MustMoney("250"), PurchasePrice: entity.MustMoney("180"), SellingPrice: entity.MustMoney("230"), Stock: 50, HSNCode: "38089490"},
	}
}

// sampleTaxRate is the flat GST rate the demo history was billed at
var sampleTaxRate = decimal.NewFromInt(18)

type sampleLine struct {
	item     int
	quantity int
}

// SampleBills returns the demo history, newest first, relative to now.
// Every bill is built from its lines at a flat 18% so the recorded totals
// match what the billing engine computes for them.
func SampleBills(now time.Time) []entity.Bill {
	table, _ := billing.NewTaxTable(nil, sampleTaxRate)
	catalog := SampleCatalog()
	build := func(number string, customer billing.Customer, date time.Time, lines ...sampleLine) entity.Bill {
		d := billing.NewDraft(number)
		for _, l := range lines {
			d, _ = billing.AddLine(d, catalog[l.item], l.quantity)
		}
		return *billing.BuildBill(d, customer, date, table)
	}

	return []entity.Bill{
		build("INV-230417-001", billing.Customer{Name: "John Doe", Phone: "9898989898"}, now,
			sampleLine{0, 1}, sampleLine{2, 2}),
		build("INV-230417-002", billing.Customer{Name: "Jane Smith", Phone: "9876543210"}, now.Add(-24*time.Hour),
			sampleLine{1, 1}),
		build("INV-230416-001", billing.Customer{Name: "Raj Kumar", Phone: "8765432109"}, now.Add(-48*time.Hour),
			sampleLine{3, 1}, sampleLine{4, 3}),
	}
}

// SeedCatalog inserts the sample catalog when the catalog is empty
func SeedCatalog(ctx context.Context, catalog repository.CatalogRepository, log *zap.Logger) error {
	n, err := catalog.Count(ctx)
	if err != nil {
		return fmt.Errorf("count catalog: %w", err)
	}
	if n > 0 {
		return nil
	}
	// Ids are left to the database so its sequence stays in step. On a fresh
	// table they come out as 1..5, matching the sample bills.
	items := SampleCatalog()
	for i := range items {
		items[i].ID = 0
	}
	if err := catalog.CreateBatch(ctx, items); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	log.Info("seeded sample catalog")
	return nil
}

// SeedBills stores the demo history when no bill has been saved yet.
// Bills are appended oldest first so the store ends up newest first.
func SeedBills(ctx context.Context, store repository.BillStore, now time.Time, log *zap.Logger) error {
	existing, err := store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list bills: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	samples := SampleBills(now)
	for i := len(samples) - 1; i >= 0; i-- {
		if err := store.Append(ctx, &samples[i]); err != nil {
			return fmt.Errorf("seed bill %s: %w", samples[i].BillNumber, err)
		}
	}
	log.Info("seeded sample bills", zap.Int("count", len(samples)))
	return nil
}
