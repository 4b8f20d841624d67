package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/sangkips/smartventory-api/internal/domain/entity"
	"github.com/sangkips/smartventory-api/internal/domain/repository"
	"github.com/sangkips/smartventory-api/pkg/apperror"
	"github.com/sangkips/smartventory-api/pkg/notify"
	"go.uber.org/zap"
)

// Summary periods
const (
	SummaryDaily  = "daily"
	SummaryWeekly = "weekly"
)

// AlertService sends the store owner WhatsApp alerts about low stock and
// sales. Preferences live in the settings store next to the store settings.
type AlertService struct {
	store             repository.SettingsStore
	catalog           repository.CatalogRepository
	reports           *ReportService
	settings          *SettingsService
	senders           *notify.Registry
	lowStockThreshold int
	summaryHour       int
	loc               *time.Location
	log               *zap.Logger
	now               func() time.Time

	// serialises read-modify-write of the stored preferences
	mu sync.Mutex
}

// AlertOptions tunes the alert schedule
type AlertOptions struct {
	LowStockThreshold int
	SummaryHour       int
	Location          *time.Location
}

// NewAlertService creates a new alert service
func NewAlertService(
	store repository.SettingsStore,
	catalog repository.CatalogRepository,
	reports *ReportService,
	settings *SettingsService,
	senders *notify.Registry,
	log *zap.Logger,
	opts AlertOptions,
) *AlertService {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &AlertService{
		store:             store,
		catalog:           catalog,
		reports:           reports,
		settings:          settings,
		senders:           senders,
		lowStockThreshold: opts.LowStockThreshold,
		summaryHour:       opts.SummaryHour,
		loc:               opts.Location,
		log:               log,
		now:               time.Now,
	}
}

// AlertPreferences selects which alerts are sent
type AlertPreferences struct {
	LowStockAlerts bool
	DailySummary   bool
	WeeklySummary  bool
}

// GetSettings returns the saved alert settings or the defaults
func (s *AlertService) GetSettings(ctx context.Context) (*entity.AlertSettings, error) {
	settings := entity.DefaultAlertSettings()
	if _, err := s.store.Load(ctx, entity.StorageKeyAlerts, &settings); err != nil {
		return nil, apperror.NewInternalError("Failed to load alert settings", err)
	}
	return &settings, nil
}

// Connect links the owner's WhatsApp number
func (s *AlertService) Connect(ctx context.Context, number string) (*entity.AlertSettings, error) {
	normalized, err := notify.NormalizeIndianMobile(number)
	if err != nil {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "whatsappNumber", Message: "Please enter a valid WhatsApp number"},
		})
	}

	return s.update(ctx, func(a *entity.AlertSettings) error {
		a.WhatsAppNumber = normalized
		a.Connected = true
		return nil
	})
}

// Disconnect stops all alerts. Preferences are kept for the next connect.
func (s *AlertService) Disconnect(ctx context.Context) (*entity.AlertSettings, error) {
	return s.update(ctx, func(a *entity.AlertSettings) error {
		a.Connected = false
		return nil
	})
}

// UpdatePreferences saves which alerts are sent. WhatsApp must be connected.
func (s *AlertService) UpdatePreferences(ctx context.Context, prefs *AlertPreferences) (*entity.AlertSettings, error) {
	return s.update(ctx, func(a *entity.AlertSettings) error {
		if !a.Connected {
			return apperror.NewUnprocessableError("Connect WhatsApp before saving alert settings")
		}
		a.LowStockAlerts = prefs.LowStockAlerts
		a.DailySummary = prefs.DailySummary
		a.WeeklySummary = prefs.WeeklySummary
		return nil
	})
}

// SendLowStockAlert sends the current low stock list right away
func (s *AlertService) SendLowStockAlert(ctx context.Context) (*notify.Delivery, error) {
	settings, err := s.connectedSettings(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.catalog.LowStock(ctx, s.lowStockThreshold)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load low stock items", err)
	}
	return s.sendLowStock(ctx, settings.WhatsAppNumber, items)
}

// SendSummary sends the daily or weekly summary right away
func (s *AlertService) SendSummary(ctx context.Context, period string) (*notify.Delivery, error) {
	period = strings.ToLower(strings.TrimSpace(period))
	if period != SummaryDaily && period != SummaryWeekly {
		return nil, apperror.NewBadRequestError("Summary period must be daily or weekly")
	}
	settings, err := s.connectedSettings(ctx)
	if err != nil {
		return nil, err
	}
	return s.sendSummary(ctx, settings.WhatsAppNumber, period, s.now().In(s.loc))
}

// Tick sends every scheduled alert that is due. Low stock alerts go out
// when an item newly falls to the threshold; summaries once a day after
// the summary hour, the weekly one on Sundays.
func (s *AlertService) Tick(ctx context.Context) error {
	_, err := s.update(ctx, func(a *entity.AlertSettings) error {
		if !a.Connected {
			return nil
		}
		now := s.now().In(s.loc)
		today := now.Format(DateLayout)
		var errs []error

		if a.LowStockAlerts {
			if err := s.checkLowStock(ctx, a); err != nil {
				errs = append(errs, err)
			}
		}

		afterHour := now.Hour() >= s.summaryHour
		if a.DailySummary && afterHour && a.LastDailySummary != today {
			if _, err := s.sendSummary(ctx, a.WhatsAppNumber, SummaryDaily, now); err != nil {
				errs = append(errs, err)
			} else {
				a.LastDailySummary = today
			}
		}
		if a.WeeklySummary && afterHour && now.Weekday() == time.Sunday && a.LastWeeklySummary != today {
			if _, err := s.sendSummary(ctx, a.WhatsAppNumber, SummaryWeekly, now); err != nil {
				errs = append(errs, err)
			} else {
				a.LastWeeklySummary = today
			}
		}
		if len(errs) > 0 {
			s.log.Error("scheduled alert failed", zap.Error(errors.Join(errs...)))
		}
		return nil
	})
	return err
}

// RunScheduler calls Tick every interval until ctx is done
func (s *AlertService) RunScheduler(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Tick(ctx); err != nil {
				s.log.Error("alert check failed", zap.Error(err))
			}
		}
	}
}

// checkLowStock alerts when the low stock set gains an item. The notified
// set follows the catalog so a restocked item alerts again when it drops.
func (s *AlertService) checkLowStock(ctx context.Context, a *entity.AlertSettings) error {
	items, err := s.catalog.LowStock(ctx, s.lowStockThreshold)
	if err != nil {
		return fmt.Errorf("load low stock items: %w", err)
	}

	ids := make([]uint, 0, len(items))
	fresh := false
	for i := range items {
		ids = append(ids, items[i].ID)
		if !slices.Contains(a.LowStockNotified, items[i].ID) {
			fresh = true
		}
	}
	slices.Sort(ids)

	if fresh {
		if _, err := s.sendLowStock(ctx, a.WhatsAppNumber, items); err != nil {
			return err
		}
	}
	a.LowStockNotified = ids
	return nil
}

func (s *AlertService) sendLowStock(ctx context.Context, to string, items []entity.CatalogItem) (*notify.Delivery, error) {
	store, err := s.settings.GetStoreSettings(ctx)
	if err != nil {
		return nil, err
	}
	return s.send(ctx, to, "Low stock alert", lowStockMessage(store.StoreName, items, s.lowStockThreshold))
}

func (s *AlertService) sendSummary(ctx context.Context, to, period string, now time.Time) (*notify.Delivery, error) {
	store, err := s.settings.GetStoreSettings(ctx)
	if err != nil {
		return nil, err
	}

	input := &SummaryInput{From: now.Format(DateLayout), To: now.Format(DateLayout)}
	title := "Daily sales summary"
	if period == SummaryWeekly {
		input.From = now.AddDate(0, 0, -(defaultReportDays - 1)).Format(DateLayout)
		title = "Weekly inventory report"
	}
	summary, err := s.reports.GetSummary(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.send(ctx, to, title, summaryMessage(store.StoreName, title, period, summary))
}

func (s *AlertService) send(ctx context.Context, to, subject, body string) (*notify.Delivery, error) {
	sender, err := s.senders.Get(notify.ChannelWhatsApp)
	if err != nil {
		return nil, apperror.NewAppError(apperror.ErrUnavailable.Code, "The whatsapp channel is not configured")
	}

	delivery, err := sender.Send(ctx, notify.Message{To: to, Subject: subject, Body: body})
	switch {
	case errors.Is(err, notify.ErrNotConfigured):
		return nil, apperror.NewAppError(apperror.ErrUnavailable.Code, "The whatsapp channel is not configured")
	case err != nil:
		return nil, apperror.NewInternalError("Failed to send alert", err)
	}

	s.log.Info("owner alert sent",
		zap.String("subject", subject),
		zap.String("reference", delivery.Reference),
	)
	return delivery, nil
}

func (s *AlertService) connectedSettings(ctx context.Context) (*entity.AlertSettings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if !settings.Connected {
		return nil, apperror.NewUnprocessableError("WhatsApp is not connected")
	}
	return settings, nil
}

func (s *AlertService) update(ctx context.Context, fn func(*entity.AlertSettings) error) (*entity.AlertSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if err := fn(settings); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, entity.StorageKeyAlerts, settings); err != nil {
		return nil, apperror.NewInternalError("Failed to save alert settings", err)
	}
	return settings, nil
}

func lowStockMessage(storeName string, items []entity.CatalogItem, threshold int) string {
	if len(items) == 0 {
		return fmt.Sprintf("%s: every item is above the minimum stock level of %d.", storeName, threshold)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d item(s) at or below the minimum stock level of %d.", storeName, len(items), threshold)
	for _, item := range items {
		fmt.Fprintf(&b, "\n- %s: %d left", item.Name, item.Stock)
	}
	return b.String()
}

func summaryMessage(storeName, title, period string, r *ReportSummary) string {
	var b strings.Builder
	if period == SummaryDaily {
		fmt.Fprintf(&b, "%s for %s (%s)", title, storeName, r.To)
	} else {
		fmt.Fprintf(&b, "%s for %s (%s to %s)", title, storeName, r.From, r.To)
	}
	fmt.Fprintf(&b, "\nBills: %d\nItems sold: %d\nRevenue: Rs. %s\nProfit: Rs. %s",
		r.BillCount, r.ItemsSold, formatAmount(r.Revenue), formatAmount(r.Profit))
	if period == SummaryWeekly {
		fmt.Fprintf(&b, "\nItems in catalog: %d\nLow stock items: %d", r.TotalItems, len(r.LowStock))
		for i := range r.BestSellers {
			if i == 0 {
				b.WriteString("\nBest sellers:")
			}
			fmt.Fprintf(&b, "\n- %s (%d sold)", r.BestSellers[i].Name, r.BestSellers[i].Sold)
		}
	}
	return b.String()
}
