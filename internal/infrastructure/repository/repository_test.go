package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sangkips/smartventory-api/internal/domain/entity"
	domainRepo "github.com/sangkips/smartventory-api/internal/domain/repository"
	"github.com/sangkips/smartventory-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&entity.CatalogItem{},
		&entity.Bill{},
		&entity.BillLine{},
		&entity.BillSequence{},
		&entity.StorageEntry{},
		&entity.IdempotencyKey{},
	))
	return db
}

func testBill(number, customer, phone string, date time.Time) *entity.Bill {
	return &entity.Bill{
		BillNumber:    number,
		CustomerName:  customer,
		CustomerPhone: phone,
		Items: []entity.BillLine{
			{ItemID: 3, Name: "Mouse", Category: "Electronics", SellingPrice: entity.MustMoney("9999"), PurchasePrice: entity.MustMoney("7200"), Quantity: 2, Position: 0},
			{ItemID: 5, Name: "Sanitizer", Category: "Health & Beauty", SellingPrice: entity.MustMoney("230"), PurchasePrice: entity.MustMoney("180"), Quantity: 1, Position: 1},
		},
		Subtotal: entity.MustMoney("20228"),
		TaxTotal: entity.MustMoney("3627.24"),
		Total:    entity.MustMoney("23855.24"),
		Profit:   entity.MustMoney("5648"),
		Date:     date,
	}
}

func billStores(t *testing.T) map[string]domainRepo.BillRepository {
	db := newTestDB(t)
	return map[string]domainRepo.BillRepository{
		"relational": NewBillRepository(db),
		"keyvalue":   NewKeyValueBillStore(db),
	}
}

func TestBillStores_AppendIsNewestFirst(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2023, time.April, 17, 9, 0, 0, 0, time.UTC)

	for name, store := range billStores(t) {
		t.Run(name, func(t *testing.T) {
			empty, err := store.ListAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, empty)

			require.NoError(t, store.Append(ctx, testBill("INV-230417-001", "John Doe", "9898989898", day)))
			require.NoError(t, store.Append(ctx, testBill("INV-230417-002", "Jane Smith", "9876543210", day.Add(time.Hour))))

			bills, err := store.ListAll(ctx)
			require.NoError(t, err)
			require.Len(t, bills, 2)
			assert.Equal(t, "INV-230417-002", bills[0].BillNumber)
			assert.Equal(t, "INV-230417-001", bills[1].BillNumber)

			got := bills[1]
			assert.Equal(t, "23855.24", got.Total.String())
			assert.Equal(t, "3627.24", got.TaxTotal.String())
			require.Len(t, got.Items, 2)
			assert.Equal(t, uint(3), got.Items[0].ItemID)
			assert.Equal(t, 2, got.Items[0].Quantity)
			assert.Equal(t, "9999", got.Items[0].SellingPrice.String())
			assert.Equal(t, uint(5), got.Items[1].ItemID)
		})
	}
}

func TestBillStores_FindByNumberPrefersMostRecent(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2023, time.April, 17, 9, 0, 0, 0, time.UTC)

	for name, store := range billStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Append(ctx, testBill("INV-230417-123", "First", "1111111111", day)))
			require.NoError(t, store.Append(ctx, testBill("INV-230417-123", "Second", "2222222222", day.Add(time.Minute))))

			bill, err := store.FindByNumber(ctx, "INV-230417-123")
			require.NoError(t, err)
			require.NotNil(t, bill)
			assert.Equal(t, "Second", bill.CustomerName)

			missing, err := store.FindByNumber(ctx, "INV-000000-000")
			require.NoError(t, err)
			assert.Nil(t, missing)
		})
	}
}

func TestBillStores_Query(t *testing.T) {
	ctx := context.Background()
	day1 := time.Date(2023, time.April, 16, 10, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	for name, store := range billStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Append(ctx, testBill("INV-230416-001", "Raj Kumar", "8765432109", day1)))
			require.NoError(t, store.Append(ctx, testBill("INV-230417-001", "John Doe", "9898989898", day2)))
			require.NoError(t, store.Append(ctx, testBill("INV-230417-002", "Jane Smith", "9876543210", day2.Add(time.Hour))))

			tests := []struct {
				name   string
				params *domainRepo.BillFilterParams
				want   []string
			}{
				{"no filter", &domainRepo.BillFilterParams{}, []string{"INV-230417-002", "INV-230417-001", "INV-230416-001"}},
				{"customer name ignores case", &domainRepo.BillFilterParams{Search: "jOHN"}, []string{"INV-230417-001"}},
				{"bill number ignores case", &domainRepo.BillFilterParams{Search: "inv-230416"}, []string{"INV-230416-001"}},
				{"phone substring", &domainRepo.BillFilterParams{Search: "9876"}, []string{"INV-230417-002"}},
				{"percent is literal", &domainRepo.BillFilterParams{Search: "%"}, []string{}},
				{"underscore is literal", &domainRepo.BillFilterParams{Search: "_"}, []string{}},
				{"calendar day", func() *domainRepo.BillFilterParams {
					from := time.Date(2023, time.April, 17, 0, 0, 0, 0, time.UTC)
					to := from.AddDate(0, 0, 1)
					return &domainRepo.BillFilterParams{From: &from, To: &to}
				}(), []string{"INV-230417-002", "INV-230417-001"}},
				{"second page", &domainRepo.BillFilterParams{Pagination: &pagination.PaginationParams{Page: 2, PerPage: 2}}, []string{"INV-230416-001"}},
			}

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					bills, total, err := store.Query(ctx, tt.params)
					require.NoError(t, err)

					numbers := make([]string, 0, len(bills))
					for _, b := range bills {
						numbers = append(numbers, b.BillNumber)
					}
					assert.Equal(t, tt.want, numbers)
					if tt.params.Pagination == nil {
						assert.Equal(t, int64(len(tt.want)), total)
					} else {
						assert.Equal(t, int64(3), total)
					}
				})
			}
		})
	}
}

// browserBills is a bills array as the browser console wrote it: items carry
// the full catalog record, money is a float and dates have milliseconds.
const browserBills = `[
  {
    "billNumber": "INV-230417-001",
    "customerName": "John Doe",
    "customerPhone": "9898989898",
    "items": [
      {"id": 2, "name": "Apple iPhone 13", "category": "Electronics", "mrp": 79900, "purchasePrice": 65000, "sellingPrice": 74999, "stock": 10, "hsnCode": "8517", "quantity": 1},
      {"id": 5, "name": "Nike Air Max", "category": "Clothing", "mrp": 12995, "purchasePrice": 8500, "sellingPrice": 11999, "stock": 25, "quantity": 2}
    ],
    "subtotal": 98997,
    "gst": 14699.72,
    "total": 113696.72,
    "profit": 16997,
    "date": "2023-04-17T10:00:00.000Z"
  },
  {
    "billNumber": "INV-230416-001",
    "customerName": "",
    "customerPhone": "",
    "items": [
      {"id": 7, "name": "Dove Soap", "category": "Health & Beauty", "mrp": 60, "purchasePrice": 35.5, "sellingPrice": 49.99, "stock": 40, "quantity": 3}
    ],
    "subtotal": 149.97,
    "gst": 17.9964,
    "total": 167.9664,
    "profit": 43.47,
    "date": "2023-04-16T18:30:00.000Z"
  }
]`

func TestKeyValueBillStore_ImportsBrowserArray(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	require.NoError(t, db.Create(&entity.StorageEntry{Key: entity.StorageKeyBills, Value: browserBills}).Error)
	store := NewKeyValueBillStore(db)

	bills, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, bills, 2)

	first := bills[0]
	assert.Equal(t, "INV-230417-001", first.BillNumber)
	require.Len(t, first.Items, 2)
	assert.Equal(t, uint(2), first.Items[0].ItemID)
	assert.Equal(t, "74999", first.Items[0].SellingPrice.String())
	assert.Equal(t, "65000", first.Items[0].PurchasePrice.String())
	assert.Equal(t, 2, first.Items[1].Quantity)
	assert.Equal(t, "14699.72", first.TaxTotal.String())
	assert.True(t, first.Date.Equal(time.Date(2023, time.April, 17, 10, 0, 0, 0, time.UTC)))

	second := bills[1]
	assert.Equal(t, "49.99", second.Items[0].SellingPrice.String())
	assert.Equal(t, "35.5", second.Items[0].PurchasePrice.String())
	assert.Equal(t, "17.9964", second.TaxTotal.String())
	assert.Equal(t, "167.9664", second.Total.String())
	assert.Equal(t, "43.47", second.Profit.String())

	found, total, err := store.Query(ctx, &domainRepo.BillFilterParams{Search: "john"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "INV-230417-001", found[0].BillNumber)

	day := time.Date(2023, time.April, 16, 0, 0, 0, 0, time.UTC)
	next := day.AddDate(0, 0, 1)
	found, _, err = store.Query(ctx, &domainRepo.BillFilterParams{From: &day, To: &next})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "INV-230416-001", found[0].BillNumber)

	require.NoError(t, store.Append(ctx, testBill("INV-230418-001", "Jane Smith", "9876543210", next.AddDate(0, 0, 1))))
	bills, err = store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, bills, 3)
	assert.Equal(t, "INV-230418-001", bills[0].BillNumber)
	assert.Equal(t, "INV-230416-001", bills[2].BillNumber)
}

func TestKeyValueBillStore_WritesBillRecordLayout(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := NewKeyValueBillStore(db)

	day := time.Date(2023, time.April, 17, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.Append(ctx, testBill("INV-230417-001", "John Doe", "9898989898", day)))

	var entry entity.StorageEntry
	require.NoError(t, db.Where(&entity.StorageEntry{Key: entity.StorageKeyBills}).First(&entry).Error)
	assert.JSONEq(t, `[
	  {
	    "billNumber": "INV-230417-001",
	    "customerName": "John Doe",
	    "customerPhone": "9898989898",
	    "items": [
	      {"id": 3, "name": "Mouse", "category": "Electronics", "sellingPrice": 9999, "purchasePrice": 7200, "quantity": 2},
	      {"id": 5, "name": "Sanitizer", "category": "Health & Beauty", "sellingPrice": 230, "purchasePrice": 180, "quantity": 1}
	    ],
	    "subtotal": 20228,
	    "gst": 3627.24,
	    "total": 23855.24,
	    "profit": 5648,
	    "date": "2023-04-17T09:00:00Z"
	  }
	]`, entry.Value)
}

func TestCatalogRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository(newTestDB(t))

	require.NoError(t, repo.CreateBatch(ctx, []entity.CatalogItem{
		{Name: "Samsung Galaxy S21", Category: "Electronics", SellingPrice: entity.MustMoney("64999"), Stock: 15},
		{Name: "Nike Air Max", Category: "Clothing", SellingPrice: entity.MustMoney("11999"), Stock: 8},
		{Name: "Sony Headphones", Category: "Electronics", SellingPrice: entity.MustMoney("27999"), Stock: 5},
	}))

	t.Run("search is case-insensitive on name", func(t *testing.T) {
		items, err := repo.Search(ctx, "SAMSUNG")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Samsung Galaxy S21", items[0].Name)
	})

	t.Run("search treats wildcards literally", func(t *testing.T) {
		for _, q := range []string{"%", "_", `\`} {
			items, err := repo.Search(ctx, q)
			require.NoError(t, err)
			assert.Empty(t, items, q)

			_, total, err := repo.List(ctx, &domainRepo.CatalogFilterParams{Search: q})
			require.NoError(t, err)
			assert.Zero(t, total, q)
		}
	})

	t.Run("list filters by category", func(t *testing.T) {
		items, total, err := repo.List(ctx, &domainRepo.CatalogFilterParams{Category: "Electronics"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, items, 2)
	})

	t.Run("low stock", func(t *testing.T) {
		items, err := repo.LowStock(ctx, 8)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Sony Headphones", items[0].Name)
	})

	t.Run("update and delete", func(t *testing.T) {
		item, err := repo.FindByID(ctx, 2)
		require.NoError(t, err)
		require.NotNil(t, item)

		item.Stock = 20
		require.NoError(t, repo.Update(ctx, item))
		reloaded, _ := repo.FindByID(ctx, 2)
		assert.Equal(t, 20, reloaded.Stock)

		require.NoError(t, repo.Delete(ctx, 2))
		gone, err := repo.FindByID(ctx, 2)
		require.NoError(t, err)
		assert.Nil(t, gone)

		n, _ := repo.Count(ctx)
		assert.Equal(t, int64(2), n)
	})
}

func TestSettingsStore(t *testing.T) {
	ctx := context.Background()
	store := NewSettingsStore(newTestDB(t))

	var tax entity.TaxSettings
	found, err := store.Load(ctx, entity.StorageKeyTaxSettings, &tax)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Save(ctx, entity.StorageKeyTaxSettings, entity.DefaultTaxSettings()))
	updated := entity.DefaultTaxSettings()
	updated.GSTPercentage = entity.PercentageFromInt(12)
	require.NoError(t, store.Save(ctx, entity.StorageKeyTaxSettings, updated))

	found, err = store.Load(ctx, entity.StorageKeyTaxSettings, &tax)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "12", tax.GSTPercentage.String())
	assert.Equal(t, "5", tax.CategoryRates["Clothing"].String())
}

func TestBillSequenceRepository_Next(t *testing.T) {
	ctx := context.Background()
	repo := NewBillSequenceRepository(newTestDB(t))

	for want := int64(1); want <= 3; want++ {
		got, err := repo.Next(ctx, "230417")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	other, err := repo.Next(ctx, "230418")
	require.NoError(t, err)
	assert.Equal(t, int64(1), other)
}

func TestIdempotencyRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewIdempotencyRepository(newTestDB(t))
	now := time.Now()

	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "k1", Endpoint: "POST /api/v1/drafts/:id/save", ResponseCode: 201, ResponseBody: "{}", ExpiresAt: now.Add(time.Hour),
	}))
	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "k2", Endpoint: "POST /api/v1/drafts/:id/save", ResponseCode: 201, ResponseBody: "{}", ExpiresAt: now.Add(-time.Hour),
	}))

	got, err := repo.GetByKey(ctx, "k1", "POST /api/v1/drafts/:id/save")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 201, got.ResponseCode)

	other, err := repo.GetByKey(ctx, "k1", "POST /api/v1/catalog")
	require.NoError(t, err)
	assert.Nil(t, other)

	n, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestDataResetter_Reset(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	day := time.Date(2023, time.April, 17, 9, 0, 0, 0, time.UTC)

	catalog := NewCatalogRepository(db)
	require.NoError(t, catalog.Create(ctx, &entity.CatalogItem{Name: "Nike Air Max", Category: "Clothing", Stock: 8}))
	require.NoError(t, NewBillRepository(db).Append(ctx, testBill("INV-230417-001", "John Doe", "9898989898", day)))
	require.NoError(t, NewKeyValueBillStore(db).Append(ctx, testBill("INV-230417-002", "Jane Smith", "9876543210", day)))
	require.NoError(t, NewSettingsStore(db).Save(ctx, entity.StorageKeyStoreSettings, entity.DefaultStoreSettings()))
	_, err := NewBillSequenceRepository(db).Next(ctx, "230417")
	require.NoError(t, err)

	require.NoError(t, NewDataResetter(db).Reset(ctx))

	for _, m := range []any{&entity.CatalogItem{}, &entity.Bill{}, &entity.BillLine{}, &entity.BillSequence{}, &entity.StorageEntry{}} {
		var n int64
		require.NoError(t, db.Unscoped().Model(m).Count(&n).Error)
		assert.Zero(t, n, "%T", m)
	}

	next, err := NewBillSequenceRepository(db).Next(ctx, "230417")
	require.NoError(t, err)
	assert.Equal(t, int64(1), next)
}
