package billing

import (
	"github.com/sangkips/smartventory-api/internal/domain/entity"
)

// Totals is the money summary of a set of lines
type Totals struct {
	Subtotal entity.Money `json:"subtotal"`
	Tax      entity.Money `json:"gst"`
	CGST     entity.Money `json:"cgst"`
	SGST     entity.Money `json:"sgst"`
	Total    entity.Money `json:"total"`
	Profit   entity.Money `json:"profit"`
}

// ComputeSubtotal sums sellingPrice x quantity over all lines
func ComputeSubtotal(d Draft) entity.Money {
	sum := entity.ZeroMoney
	for i := range d.Lines {
		sum = sum.Plus(d.Lines[i].Subtotal())
	}
	return sum
}

// ComputeTax sums each line subtotal scaled by its category rate
func ComputeTax(d Draft, table TaxTable) entity.Money {
	sum := entity.ZeroMoney
	for i := range d.Lines {
		line := &d.Lines[i]
		sum = sum.Plus(line.Subtotal().Percent(table.RateFor(line.Category)))
	}
	return sum
}

// ComputeTotal is subtotal plus tax
func ComputeTotal(d Draft, table TaxTable) entity.Money {
	return ComputeSubtotal(d).Plus(ComputeTax(d, table))
}

// ComputeProfit sums (sellingPrice - purchasePrice) x quantity over all lines
func ComputeProfit(d Draft) entity.Money {
	sum := entity.ZeroMoney
	for i := range d.Lines {
		sum = sum.Plus(d.Lines[i].Profit())
	}
	return sum
}

// ComputeTotals evaluates every figure of the draft at once
func ComputeTotals(d Draft, table TaxTable) Totals {
	subtotal := ComputeSubtotal(d)
	tax := ComputeTax(d, table)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		CGST:     tax.Half(),
		SGST:     tax.Half(),
		Total:    subtotal.Plus(tax),
		Profit:   ComputeProfit(d),
	}
}
