package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/sangkips/smartventory-api/internal/domain/billing"
	"github.com/sangkips/smartventory-api/internal/domain/entity"
	domainRepo "github.com/sangkips/smartventory-api/internal/domain/repository"
	"github.com/sangkips/smartventory-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/smartventory-api/internal/infrastructure/repository"
	"github.com/sangkips/smartventory-api/pkg/apperror"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testNow = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	db       *gorm.DB
	catalog  domainRepo.CatalogRepository
	bills    domainRepo.BillRepository
	settings *SettingsService
	engine   *billing.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))

	catalog := infraRepo.NewCatalogRepository(db)
	require.NoError(t, catalog.CreateBatch(context.Background(), database.SampleCatalog()))

	bills := infraRepo.NewBillRepository(db)
	return &testEnv{
		db:       db,
		catalog:  catalog,
		bills:    bills,
		settings: NewSettingsService(infraRepo.NewSettingsStore(db)),
		engine:   billing.NewEngine(bills, billing.NewSequenceNumberer(infraRepo.NewBillSequenceRepository(db))),
	}
}

func (e *testEnv) billingService(strict bool, now func() time.Time) *BillingService {
	if now == nil {
		now = func() time.Time { return testNow }
	}
	return NewBillingService(e.engine, e.catalog, e.settings, zap.NewNop(), BillingOptions{
		StrictQuantity: strict,
		DraftTTL:       time.Hour,
		Location:       time.UTC,
		Now:            now,
	})
}

func (e *testEnv) appendBill(t *testing.T, number, customer, phone string, date time.Time, lines ...entity.BillLine) *entity.Bill {
	t.Helper()
	d := billing.NewDraft(number)
	d.Lines = lines
	b := billing.BuildBill(d, billing.Customer{Name: customer, Phone: phone}, date, billing.DefaultTaxTable())
	require.NoError(t, e.bills.Append(context.Background(), b))
	return b
}

func sampleLine(t *testing.T, id uint, qty int) entity.BillLine {
	t.Helper()
	for _, item := range database.SampleCatalog() {
		if item.ID == id {
			return entity.NewBillLine(item, qty)
		}
	}
	t.Fatalf("no sample item %d", id)
	return entity.BillLine{}
}

func requireAppError(t *testing.T, err error, code int) *apperror.AppError {
	t.Helper()
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.Equal(t, code, appErr.Code, appErr.Message)
	return appErr
}
