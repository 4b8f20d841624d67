package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// BillData is a bill already formatted for display. Amounts are strings so
// the caller controls currency formatting.
type BillData struct {
	StoreName     string
	StoreAddress  string
	StorePhone    string
	GSTNumber     string
	BillNumber    string
	Date          string
	CustomerName  string
	CustomerPhone string

	Items []BillItem

	Subtotal string
	// Tax lines in print order, e.g. CGST and SGST, or a single GST line
	Taxes  []TaxLine
	Total  string
	Footer string
}

type BillItem struct {
	Name      string
	HSNCode   string
	Qty       int
	UnitPrice string
	Amount    string
}

type TaxLine struct {
	Label  string
	Amount string
}

// Renderer turns bills into PDF documents
type Renderer interface {
	RenderBill(ctx context.Context, data BillData) ([]byte, error)
}

type marotoRenderer struct{}

// NewRenderer creates a maroto-backed renderer
func NewRenderer() Renderer {
	return &marotoRenderer{}
}

func (r *marotoRenderer) RenderBill(ctx context.Context, data BillData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if data.BillNumber == "" {
		return nil, fmt.Errorf("pdf: bill number is required")
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, data.StoreName, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)
	m.AddRow(14,
		col.New(12).Add(
			text.New(data.StoreAddress, props.Text{Size: 9, Align: align.Center}),
			text.New(contactLine(data), props.Text{Size: 9, Align: align.Center, Top: 5}),
		),
	)

	m.AddRow(10,
		text.NewCol(12, "Tax Invoice", props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	m.AddRow(16,
		col.New(6).Add(
			text.New("Bill number: "+data.BillNumber, props.Text{Size: 9}),
			text.New("Date: "+data.Date, props.Text{Size: 9, Top: 5}),
		),
		col.New(6).Add(
			text.New("Customer: "+orDash(data.CustomerName), props.Text{Size: 9, Align: align.Right}),
			text.New("Phone: "+orDash(data.CustomerPhone), props.Text{Size: 9, Align: align.Right, Top: 5}),
		),
	)

	m.AddRow(8,
		text.NewCol(5, "Item", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "HSN", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(1, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Rate", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range data.Items {
		m.AddRow(7,
			text.NewCol(5, item.Name, props.Text{Size: 9}),
			text.NewCol(2, item.HSNCode, props.Text{Size: 9}),
			text.NewCol(1, fmt.Sprintf("%d", item.Qty), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.UnitPrice, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.Amount, props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(4, col.New(12))
	addTotalRow(m, "Subtotal", data.Subtotal, false)
	for _, tax := range data.Taxes {
		addTotalRow(m, tax.Label, tax.Amount, false)
	}
	addTotalRow(m, "Total", data.Total, true)

	if data.Footer != "" {
		m.AddRow(16,
			text.NewCol(12, data.Footer, props.Text{Size: 9, Align: align.Center, Top: 8}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate bill %s: %w", data.BillNumber, err)
	}
	return doc.GetBytes(), nil
}

func addTotalRow(m core.Maroto, label, amount string, bold bool) {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	m.AddRow(7,
		col.New(8),
		text.NewCol(2, label, props.Text{Size: 9, Style: style}),
		text.NewCol(2, amount, props.Text{Size: 9, Style: style, Align: align.Right}),
	)
}

func contactLine(data BillData) string {
	switch {
	case data.StorePhone != "" && data.GSTNumber != "":
		return "Phone: " + data.StorePhone + "  GSTIN: " + data.GSTNumber
	case data.GSTNumber != "":
		return "GSTIN: " + data.GSTNumber
	case data.StorePhone != "":
		return "Phone: " + data.StorePhone
	}
	return ""
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
