package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	infraRepo "github.com/sangkips/smartventory-api/internal/infrastructure/repository"
	"github.com/sangkips/smartventory-api/pkg/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func (e *testEnv) alertService(sender notify.Sender, now *time.Time) *AlertService {
	reports := NewReportService(e.bills, e.catalog, 10, time.UTC)
	svc := NewAlertService(
		infraRepo.NewSettingsStore(e.db),
		e.catalog,
		reports,
		e.settings,
		notify.NewRegistry(sender),
		zap.NewNop(),
		AlertOptions{LowStockThreshold: 10, SummaryHour: 21, Location: time.UTC},
	)
	svc.now = func() time.Time { return *now }
	return svc
}

func TestAlertService_ConnectAndPreferences(t *testing.T) {
	env := newTestEnv(t)
	now := testNow
	svc := env.alertService(&recordingSender{channel: notify.ChannelWhatsApp}, &now)
	ctx := context.Background()

	settings, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.False(t, settings.Connected)
	assert.True(t, settings.LowStockAlerts)
	assert.False(t, settings.DailySummary)
	assert.True(t, settings.WeeklySummary)

	_, err = svc.UpdatePreferences(ctx, &AlertPreferences{DailySummary: true})
	requireAppError(t, err, http.StatusUnprocessableEntity)

	_, err = svc.Connect(ctx, "12345")
	requireAppError(t, err, http.StatusUnprocessableEntity)

	settings, err = svc.Connect(ctx, "98765 43210")
	require.NoError(t, err)
	assert.True(t, settings.Connected)
	assert.Equal(t, "+919876543210", settings.WhatsAppNumber)

	settings, err = svc.UpdatePreferences(ctx, &AlertPreferences{LowStockAlerts: false, DailySummary: true, WeeklySummary: false})
	require.NoError(t, err)
	assert.False(t, settings.LowStockAlerts)
	assert.True(t, settings.DailySummary)

	settings, err = svc.Disconnect(ctx)
	require.NoError(t, err)
	assert.False(t, settings.Connected)
	assert.True(t, settings.DailySummary, "preferences survive a disconnect")

	_, err = svc.SendLowStockAlert(ctx)
	requireAppError(t, err, http.StatusUnprocessableEntity)
}

func TestAlertService_Tick(t *testing.T) {
	env := newTestEnv(t)
	seedHistory(t, env)
	sender := &recordingSender{channel: notify.ChannelWhatsApp}
	now := testNow
	svc := env.alertService(sender, &now)
	ctx := context.Background()

	require.NoError(t, svc.Tick(ctx))
	assert.Empty(t, sender.sent, "nothing is sent before WhatsApp is connected")

	_, err := svc.Connect(ctx, "9876543210")
	require.NoError(t, err)
	_, err = svc.UpdatePreferences(ctx, &AlertPreferences{LowStockAlerts: true, DailySummary: true, WeeklySummary: true})
	require.NoError(t, err)

	require.NoError(t, svc.Tick(ctx))
	require.Len(t, sender.sent, 1)
	alert := sender.sent[0]
	assert.Equal(t, "+919876543210", alert.To)
	assert.Equal(t, "Low stock alert", alert.Subject)
	assert.Contains(t, alert.Body, "2 item(s) at or below the minimum stock level of 10")
	assert.Contains(t, alert.Body, "- Nike Air Max: 8 left")

	require.NoError(t, svc.Tick(ctx))
	assert.Len(t, sender.sent, 1, "an unchanged low stock list is not sent again")

	item, err := env.catalog.FindByID(ctx, 1)
	require.NoError(t, err)
	item.Stock = 3
	require.NoError(t, env.catalog.Update(ctx, item))

	require.NoError(t, svc.Tick(ctx))
	require.Len(t, sender.sent, 2)
	assert.Contains(t, sender.sent[1].Body, "- Samsung Galaxy S21: 3 left")

	// Sunday 22:00, past the summary hour
	now = testNow.Add(10 * time.Hour)
	require.NoError(t, svc.Tick(ctx))
	require.Len(t, sender.sent, 4)

	daily := sender.sent[2]
	assert.Equal(t, "Daily sales summary", daily.Subject)
	assert.Contains(t, daily.Body, "Daily sales summary for My Business (2024-03-10)")
	assert.Contains(t, daily.Body, "Bills: 1")
	assert.Contains(t, daily.Body, "Revenue: Rs. 23597.64")

	weekly := sender.sent[3]
	assert.Equal(t, "Weekly inventory report", weekly.Subject)
	assert.Contains(t, weekly.Body, "(2024-03-04 to 2024-03-10)")
	assert.Contains(t, weekly.Body, "Bills: 2")
	assert.Contains(t, weekly.Body, "Low stock items: 3")

	require.NoError(t, svc.Tick(ctx))
	assert.Len(t, sender.sent, 4, "summaries go out once a day")

	// Monday: no weekly report
	now = testNow.Add(34 * time.Hour)
	require.NoError(t, svc.Tick(ctx))
	require.Len(t, sender.sent, 5)
	assert.Equal(t, "Daily sales summary", sender.sent[4].Subject)
}

func TestAlertService_SendNow(t *testing.T) {
	env := newTestEnv(t)
	seedHistory(t, env)
	sender := &recordingSender{channel: notify.ChannelWhatsApp}
	now := testNow
	svc := env.alertService(sender, &now)
	ctx := context.Background()

	_, err := svc.SendSummary(ctx, SummaryDaily)
	requireAppError(t, err, http.StatusUnprocessableEntity)

	_, err = svc.Connect(ctx, "9876543210")
	require.NoError(t, err)

	_, err = svc.SendSummary(ctx, "monthly")
	requireAppError(t, err, http.StatusBadRequest)

	delivery, err := svc.SendSummary(ctx, "Weekly")
	require.NoError(t, err)
	assert.Equal(t, "ref-1", delivery.Reference)

	_, err = svc.SendLowStockAlert(ctx)
	require.NoError(t, err)
	require.Len(t, sender.sent, 2)
	assert.Contains(t, sender.sent[1].Body, "Sony WH-1000XM4 Headphones: 5 left")
}
