package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/sangkips/smartventory-api/internal/domain/billing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillingService_DraftFlow(t *testing.T) {
	env := newTestEnv(t)
	svc := env.billingService(false, nil)
	ctx := context.Background()

	draft, err := svc.NewDraft(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-240310-001", draft.BillNumber)
	assert.Empty(t, draft.Items)
	assert.Equal(t, "0", draft.Totals.Total.String())

	draft, err = svc.AddLine(ctx, draft.ID, 3, 1)
	require.NoError(t, err)
	draft, err = svc.AddLine(ctx, draft.ID, 3, 1)
	require.NoError(t, err)

	require.Len(t, draft.Items, 1)
	assert.Equal(t, 2, draft.Items[0].Quantity)
	assert.Equal(t, "18", draft.Items[0].TaxRate.String())
	assert.Equal(t, "19998", draft.Totals.Subtotal.String())
	assert.Equal(t, "3599.64", draft.Totals.Tax.String())
	assert.Equal(t, "1799.82", draft.Totals.CGST.String())
	assert.Equal(t, "23597.64", draft.Totals.Total.String())
	assert.Equal(t, "5598", draft.Totals.Profit.String())
	assert.Equal(t, 2, draft.ItemCount)

	result, err := svc.SaveDraft(ctx, draft.ID, billing.Customer{Name: "Asha", Phone: "9000000001"})
	require.NoError(t, err)
	require.NotNil(t, result.Next)

	assert.Equal(t, "INV-240310-001", result.Bill.BillNumber)
	assert.Equal(t, "23597.64", result.Bill.Total.String())
	assert.Equal(t, "INV-240310-002", result.Next.BillNumber)
	assert.Equal(t, draft.ID, result.Next.ID)
	assert.Empty(t, result.Next.Items)

	stored, err := env.bills.FindByNumber(ctx, "INV-240310-001")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Asha", stored.CustomerName)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 2, stored.Items[0].Quantity)

	current, err := svc.GetDraft(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "INV-240310-002", current.BillNumber)
}

func TestBillingService_QuantityHandling(t *testing.T) {
	ctx := context.Background()

	t.Run("lenient ignores bad quantities", func(t *testing.T) {
		svc := newTestEnv(t).billingService(false, nil)
		draft, err := svc.NewDraft(ctx)
		require.NoError(t, err)

		draft, err = svc.AddLine(ctx, draft.ID, 5, 0)
		require.NoError(t, err)
		assert.Empty(t, draft.Items)

		draft, err = svc.AddLine(ctx, draft.ID, 5, 3)
		require.NoError(t, err)
		draft, err = svc.SetLineQuantity(ctx, draft.ID, 5, 0)
		require.NoError(t, err)
		require.Len(t, draft.Items, 1)
		assert.Equal(t, 3, draft.Items[0].Quantity)

		draft, err = svc.SetLineQuantity(ctx, draft.ID, 5, 7)
		require.NoError(t, err)
		assert.Equal(t, 7, draft.Items[0].Quantity)

		draft, err = svc.SetLineQuantity(ctx, draft.ID, 4, 2)
		require.NoError(t, err)
		assert.Len(t, draft.Items, 1)
	})

	t.Run("strict rejects bad quantities", func(t *testing.T) {
		svc := newTestEnv(t).billingService(true, nil)
		draft, err := svc.NewDraft(ctx)
		require.NoError(t, err)

		_, err = svc.AddLine(ctx, draft.ID, 5, -1)
		requireAppError(t, err, http.StatusUnprocessableEntity)

		_, err = svc.AddLine(ctx, draft.ID, 5, 1)
		require.NoError(t, err)
		_, err = svc.SetLineQuantity(ctx, draft.ID, 5, 0)
		requireAppError(t, err, http.StatusUnprocessableEntity)

		current, err := svc.GetDraft(ctx, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, current.Items[0].Quantity)
	})
}

func TestBillingService_Errors(t *testing.T) {
	env := newTestEnv(t)
	svc := env.billingService(false, nil)
	ctx := context.Background()

	_, err := svc.GetDraft(ctx, "missing")
	requireAppError(t, err, http.StatusNotFound)

	draft, err := svc.NewDraft(ctx)
	require.NoError(t, err)

	_, err = svc.AddLine(ctx, draft.ID, 999, 1)
	requireAppError(t, err, http.StatusNotFound)

	_, err = svc.SaveDraft(ctx, draft.ID, billing.Customer{})
	appErr := requireAppError(t, err, http.StatusUnprocessableEntity)
	assert.Equal(t, "Please add items to the bill", appErr.Message)

	all, err := env.bills.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	draft, err = svc.AddLine(ctx, draft.ID, 2, 1)
	require.NoError(t, err)
	draft, err = svc.RemoveLine(ctx, draft.ID, 2)
	require.NoError(t, err)
	assert.Empty(t, draft.Items)

	require.NoError(t, svc.DiscardDraft(ctx, draft.ID))
	requireAppError(t, svc.DiscardDraft(ctx, draft.ID), http.StatusNotFound)
}

func TestBillingService_TaxSettingsApply(t *testing.T) {
	env := newTestEnv(t)
	svc := env.billingService(false, nil)
	ctx := context.Background()

	tax, err := env.settings.GetTaxSettings(ctx)
	require.NoError(t, err)
	tax.CategoryRates["Electronics"] = tax.CategoryRates["Clothing"]
	_, err = env.settings.UpdateTaxSettings(ctx, tax)
	require.NoError(t, err)

	draft, err := svc.NewDraft(ctx)
	require.NoError(t, err)
	draft, err = svc.AddLine(ctx, draft.ID, 3, 2)
	require.NoError(t, err)

	assert.Equal(t, "5", draft.Items[0].TaxRate.String())
	assert.Equal(t, "999.9", draft.Totals.Tax.String())
}

func TestBillingService_EvictStale(t *testing.T) {
	env := newTestEnv(t)
	now := testNow
	svc := env.billingService(false, func() time.Time { return now })
	ctx := context.Background()

	old, err := svc.NewDraft(ctx)
	require.NoError(t, err)

	now = now.Add(50 * time.Minute)
	fresh, err := svc.NewDraft(ctx)
	require.NoError(t, err)

	now = now.Add(20 * time.Minute)
	assert.Equal(t, 1, svc.EvictStale())

	_, err = svc.GetDraft(ctx, old.ID)
	requireAppError(t, err, http.StatusNotFound)
	_, err = svc.GetDraft(ctx, fresh.ID)
	assert.NoError(t, err)
}

func TestBillingService_RunCleanupStopsWithContext(t *testing.T) {
	svc := newTestEnv(t).billingService(false, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		svc.RunCleanup(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup loop did not stop")
	}
}
