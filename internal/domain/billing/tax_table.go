package billing

import (
	"github.com/sangkips/smartventory-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// TaxTable maps a category label to a GST percentage, with a default for
// categories it does not list
type TaxTable struct {
	rates    map[string]decimal.Decimal
	fallback decimal.Decimal
}

// NewTaxTable validates and builds a table. Every rate must be within 0..100.
func NewTaxTable(rates map[string]decimal.Decimal, fallback decimal.Decimal) (TaxTable, error) {
	if !validRate(fallback) {
		return TaxTable{}, ErrInvalidRate
	}
	t := TaxTable{rates: make(map[string]decimal.Decimal, len(rates)), fallback: fallback}
	for category, rate := range rates {
		if !validRate(rate) {
			return TaxTable{}, ErrInvalidRate
		}
		t.rates[category] = rate
	}
	return t, nil
}

// TaxTableFromSettings builds the table described by persisted tax settings
func TaxTableFromSettings(s entity.TaxSettings) (TaxTable, error) {
	rates := make(map[string]decimal.Decimal, len(s.CategoryRates))
	for category, rate := range s.CategoryRates {
		rates[category] = rate.Decimal
	}
	return NewTaxTable(rates, s.GSTPercentage.Decimal)
}

// DefaultTaxTable is the stock GST table
func DefaultTaxTable() TaxTable {
	t, _ := TaxTableFromSettings(entity.DefaultTaxSettings())
	return t
}

// RateFor returns the percentage for category, or the default rate
func (t TaxTable) RateFor(category string) decimal.Decimal {
	if rate, ok := t.rates[category]; ok {
		return rate
	}
	return t.fallback
}

func validRate(r decimal.Decimal) bool {
	return !r.IsNegative() && r.LessThanOrEqual(hundred)
}
