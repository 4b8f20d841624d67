package service

import (
	"context"
	"strings"

	"github.com/sangkips/smartventory-api/internal/domain/repository"
	"github.com/sangkips/smartventory-api/pkg/apperror"
	"github.com/sangkips/smartventory-api/pkg/pdf"
)

const pdfDateLayout = "02 Jan 2006, 15:04"

// DocumentService renders saved bills as PDF invoices
type DocumentService struct {
	renderer pdf.Renderer
	bills    *BillService
	settings *SettingsService
	catalog  repository.CatalogRepository
}

// NewDocumentService creates a new document service
func NewDocumentService(
	renderer pdf.Renderer,
	bills *BillService,
	settings *SettingsService,
	catalog repository.CatalogRepository,
) *DocumentService {
	return &DocumentService{
		renderer: renderer,
		bills:    bills,
		settings: settings,
		catalog:  catalog,
	}
}

// BillDocument is a rendered invoice
type BillDocument struct {
	FileName string
	Data     []byte
}

// RenderBill produces the PDF invoice of a saved bill
func (s *DocumentService) RenderBill(ctx context.Context, number string) (*BillDocument, error) {
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

	data := pdf.BillData{
		StoreName:     store.StoreName,
		StoreAddress:  store.Address,
		StorePhone:    store.Phone,
		GSTNumber:     store.GSTNumber,
		BillNumber:    detail.BillNumber,
		Date:          detail.Date.Format(pdfDateLayout),
		CustomerName:  detail.CustomerName,
		CustomerPhone: detail.CustomerPhone,
		Subtotal:      formatAmount(detail.Subtotal),
		Total:         formatAmount(detail.Total),
		Footer:        "Thank you for your business!",
	}
	if tax.CGSTSGSTSplit {
		data.Taxes = []pdf.TaxLine{
			{Label: "CGST", Amount: formatAmount(detail.CGST)},
			{Label: "SGST", Amount: formatAmount(detail.SGST)},
		}
	} else {
		data.Taxes = []pdf.TaxLine{{Label: "GST", Amount: formatAmount(detail.TaxTotal)}}
	}

	for _, line := range detail.Items {
		// HSN codes are not part of the bill snapshot; look them up while
		// the item still exists.
		hsn := ""
		if item, err := s.catalog.FindByID(ctx, line.ItemID); err == nil && item != nil {
			hsn = item.HSNCode
		}
		data.Items = append(data.Items, pdf.BillItem{
			Name:      line.Name,
			HSNCode:   hsn,
			Qty:       line.Quantity,
			UnitPrice: formatAmount(line.SellingPrice),
			Amount:    formatAmount(line.Subtotal()),
		})
	}

	out, err := s.renderer.RenderBill(ctx, data)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to render invoice", err)
	}
	return &BillDocument{
		FileName: strings.ToLower(detail.BillNumber) + ".pdf",
		Data:     out,
	}, nil
}
