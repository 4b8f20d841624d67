package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sangkips/smartventory-api/pkg/apperror"
	"github.com/sangkips/smartventory-api/pkg/notify"
	"go.uber.org/zap"
)

// ShareService sends saved bills to customers
type ShareService struct {
	senders   *notify.Registry
	documents *DocumentService
	bills     *BillService
	settings  *SettingsService
	log       *zap.Logger
}

// NewShareService creates a new share service
func NewShareService(
	senders *notify.Registry,
	documents *DocumentService,
	bills *BillService,
	settings *SettingsService,
	log *zap.Logger,
) *ShareService {
	return &ShareService{
		senders:   senders,
		documents: documents,
		bills:     bills,
		settings:  settings,
		log:       log,
	}
}

// ShareBillInput selects the channel and recipient. An empty recipient on
// the whatsapp channel falls back to the phone saved on the bill.
type ShareBillInput struct {
	Number  string
	Channel string
	To      string
	Message string
}

// Channels lists the configured share channels
func (s *ShareService) Channels() []string {
	return s.senders.Channels()
}

// ShareBill sends the bill with its PDF invoice attached
func (s *ShareService) ShareBill(ctx context.Context, input *ShareBillInput) (*notify.Delivery, error) {
	channel := strings.ToLower(strings.TrimSpace(input.Channel))
	if channel == "" {
		channel = notify.ChannelWhatsApp
	}
	sender, err := s.senders.Get(channel)
	if err != nil {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("Unsupported share channel %q", channel))
	}

	detail, err := s.bills.GetBill(ctx, input.Number)
	if err != nil {
		return nil, err
	}
	store, err := s.settings.GetStoreSettings(ctx)
	if err != nil {
		return nil, err
	}

	to := strings.TrimSpace(input.To)
	if to == "" && channel == notify.ChannelWhatsApp {
		to = detail.CustomerPhone
	}
	if to == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "to", Message: "Recipient is required"},
		})
	}

	doc, err := s.documents.RenderBill(ctx, input.Number)
	if err != nil {
		return nil, err
	}

	body := input.Message
	if body == "" {
		body = billMessage(store.StoreName, detail)
	}

	delivery, err := sender.Send(ctx, notify.Message{
		To:      to,
		Subject: fmt.Sprintf("Invoice %s from %s", detail.BillNumber, store.StoreName),
		Body:    body,
		Attachments: []notify.Attachment{{
			Name:        doc.FileName,
			ContentType: "application/pdf",
			Data:        doc.Data,
		}},
	})
	switch {
	case errors.Is(err, notify.ErrInvalidRecipient):
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "to", Message: "Please enter a valid " + recipientLabel(channel)},
		})
	case errors.Is(err, notify.ErrNotConfigured):
		return nil, apperror.NewAppError(apperror.ErrUnavailable.Code, "The "+channel+" channel is not configured")
	case err != nil:
		s.log.Error("failed to share bill",
			zap.String("bill_number", detail.BillNumber),
			zap.String("channel", channel),
			zap.Error(err),
		)
		return nil, apperror.NewInternalError("Failed to share bill", err)
	}

	s.log.Info("bill shared",
		zap.String("bill_number", detail.BillNumber),
		zap.String("channel", delivery.Channel),
		zap.Bool("simulated", delivery.Simulated),
	)
	return delivery, nil
}

func billMessage(storeName string, b *BillDetail) string {
	name := b.CustomerName
	if name == "" {
		name = "Customer"
	}
	return fmt.Sprintf(
		"Dear %s, thank you for shopping at %s. Your bill %s for %d item(s) comes to Rs. %s. The invoice is attached.",
		name, storeName, b.BillNumber, b.ItemCount, formatAmount(b.Total),
	)
}

func recipientLabel(channel string) string {
	switch channel {
	case notify.ChannelWhatsApp:
		return "WhatsApp number"
	case notify.ChannelEmail:
		return "email address"
	}
	return "recipient"
}
