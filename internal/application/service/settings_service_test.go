package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/sangkips/smartventory-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsService_Defaults(t *testing.T) {
	svc := newTestEnv(t).settings
	ctx := context.Background()

	store, err := svc.GetStoreSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultStoreSettings(), *store)

	tax, err := svc.GetTaxSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "18", tax.GSTPercentage.String())
	assert.Equal(t, "5", tax.CategoryRates["Clothing"].String())

	table, err := svc.TaxTable(ctx)
	require.NoError(t, err)
	assert.Equal(t, "12", table.RateFor("Health & Beauty").String())
	assert.Equal(t, "18", table.RateFor("Toys & Games").String())
}

func TestSettingsService_UpdateStoreSettings(t *testing.T) {
	svc := newTestEnv(t).settings
	ctx := context.Background()

	_, err := svc.UpdateStoreSettings(ctx, &entity.StoreSettings{StoreName: "   "})
	requireAppError(t, err, http.StatusUnprocessableEntity)

	in := entity.DefaultStoreSettings()
	in.StoreName = "Sharma General Store"
	_, err = svc.UpdateStoreSettings(ctx, &in)
	require.NoError(t, err)

	got, err := svc.GetStoreSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sharma General Store", got.StoreName)
	assert.Equal(t, in.GSTNumber, got.GSTNumber)
}

func TestSettingsService_UpdateTaxSettings(t *testing.T) {
	svc := newTestEnv(t).settings
	ctx := context.Background()

	bad := entity.DefaultTaxSettings()
	bad.CategoryRates["Furniture"] = entity.PercentageFromInt(150)
	_, err := svc.UpdateTaxSettings(ctx, &bad)
	requireAppError(t, err, http.StatusUnprocessableEntity)

	good := entity.DefaultTaxSettings()
	good.GSTPercentage = entity.PercentageFromInt(12)
	good.CGSTSGSTSplit = false
	delete(good.CategoryRates, "Electronics")
	_, err = svc.UpdateTaxSettings(ctx, &good)
	require.NoError(t, err)

	got, err := svc.GetTaxSettings(ctx)
	require.NoError(t, err)
	assert.False(t, got.CGSTSGSTSplit)
	assert.NotContains(t, got.CategoryRates, "Electronics")

	table, err := svc.TaxTable(ctx)
	require.NoError(t, err)
	assert.Equal(t, "12", table.RateFor("Electronics").String())
}
