package service

import (
	"context"
	"time"

	"github.com/sangkips/smartventory-api/internal/domain/entity"
	"github.com/sangkips/smartventory-api/pkg/apperror"
	"github.com/sangkips/smartventory-api/pkg/printer"
	"go.uber.org/zap"
)

const receiptDateLayout = "02/01/2006 15:04"

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer   printer.Printer
	bills     *BillService
	settings  *SettingsService
	charWidth int
	log       *zap.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	bills *BillService,
	settings *SettingsService,
	charWidth int,
	log *zap.Logger,
) *PrinterService {
	return &PrinterService{
		printer:   p,
		bills:     bills,
		settings:  settings,
		charWidth: charWidth,
		log:       log,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printer.Kind() != printer.KindNone,
		Connected:  s.printer.IsConnected(ctx),
		Type:       s.printer.Kind(),
	}
}

// TestPrint sends a test page to the printer.
// Returns the receipt data so the handler can return it as JSON when printer is disabled.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.Receipt, error) {
	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: "PRINTER TEST",
			Address:   "Test Address",
			Phone:     "0000000000",
		},
		BillNumber: "INV-000000-000",
		Date:       time.Now().Format(receiptDateLayout),
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: entity.MoneyFromInt(10), Total: entity.MoneyFromInt(10)},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: entity.MoneyFromInt(5), Total: entity.MoneyFromInt(10)},
		},
		SubTotal: entity.MoneyFromInt(20),
		Tax:      entity.ZeroMoney,
		Total:    entity.MoneyFromInt(20),
	}

	if err := s.printer.Print(ctx, FormatReceipt(receipt, s.charWidth)); err != nil {
		return receipt, apperror.NewInternalError("Test print failed", err)
	}
	return receipt, nil
}

// PrintBill prints the receipt of a saved bill.
func (s *PrinterService) PrintBill(ctx context.Context, number string) (*entity.Receipt, error) {
	detail, err := s.bills.GetBill(ctx, number)
	if err != nil {
		return nil, err
	}
	store, err := s.settings.GetStoreSettings(ctx)
	if err != nil {
		return nil, err
	}
	tax, err := s.settings.GetTaxSettings(ctx)
	if err != nil {
		return nil, err
	}

	receipt := entity.NewReceipt(detail.Bill, *store, *tax, receiptDateLayout)
	if err := s.printer.Print(ctx, FormatReceipt(receipt, s.charWidth)); err != nil {
		s.log.Error("printer error",
			zap.String("bill_number", number),
			zap.String("printer", s.printer.Kind()),
			zap.Error(err),
		)
		return receipt, apperror.NewInternalError("Failed to print receipt", err)
	}
	return receipt, nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, charWidth int) []byte {
	doc := printer.NewDocument(charWidth)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.GSTNumber != "" {
		doc.TextF("GSTIN: %s", r.Header.GSTNumber)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Bill:", r.BillNumber).
		KeyValue("Date:", r.Date)

	if r.Customer != "" {
		doc.KeyValue("Customer:", r.Customer)
	}
	if r.Phone != "" {
		doc.KeyValue("Phone:", r.Phone)
	}

	doc.Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Name, formatAmount(item.Total))
		if item.Quantity > 1 {
			doc.TextF("  @ %s each", formatAmount(item.UnitPrice))
		}
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Subtotal:", formatAmount(r.SubTotal))
	if r.SplitTax {
		doc.KeyValue("CGST:", formatAmount(r.Tax.Half())).
			KeyValue("SGST:", formatAmount(r.Tax.Half()))
	} else {
		doc.KeyValue("GST:", formatAmount(r.Tax))
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", formatAmount(r.Total)).
		SetBold(false)

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		FeedLines(1).
		Text("Thank you for your business!").
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

// formatAmount renders money with two decimals for printed documents
func formatAmount(m entity.Money) string {
	return m.StringFixed(2)
}
