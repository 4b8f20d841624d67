package entity

import (
	"github.com/shopspring/decimal"
)

// Money is an exact decimal amount. It is stored as a numeric column and
// encoded as a bare JSON number so persisted bill records keep their
// original shape.
type Money struct {
	decimal.Decimal
}

// ZeroMoney is the additive identity.
var ZeroMoney = Money{decimal.Zero}

// NewMoney wraps a decimal value
func NewMoney(d decimal.Decimal) Money {
	return Money{d}
}

// MoneyFromInt builds a whole amount
func MoneyFromInt(v int64) Money {
	return Money{decimal.NewFromInt(v)}
}

// MustMoney parses a decimal literal and panics on malformed input.
// Intended for seed data and tests.
func MustMoney(s string) Money {
	return Money{decimal.RequireFromString(s)}
}

// Plus returns m + o
func (m Money) Plus(o Money) Money {
	return Money{m.Decimal.Add(o.Decimal)}
}

// Minus returns m - o
func (m Money) Minus(o Money) Money {
	return Money{m.Decimal.Sub(o.Decimal)}
}

// Times multiplies by a whole quantity
func (m Money) Times(qty int) Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(int64(qty)))}
}

// Percent returns m * pct / 100 without rounding
func (m Money) Percent(pct decimal.Decimal) Money {
	return Money{m.Decimal.Mul(pct).Shift(-2)}
}

// Half returns m / 2, used for the CGST/SGST display split
func (m Money) Half() Money {
	return Money{m.Decimal.Div(decimal.NewFromInt(2))}
}

// Float64 returns the nearest float for display-only contexts
func (m Money) Float64() float64 {
	f, _ := m.Decimal.Float64()
	return f
}

// MarshalJSON writes the amount as a JSON number
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.String()), nil
}

// Percentage is a rate in the 0..100 range, encoded as a JSON number
type Percentage struct {
	decimal.Decimal
}

// PercentageFromInt builds a whole percentage
func PercentageFromInt(v int64) Percentage {
	return Percentage{decimal.NewFromInt(v)}
}

// MarshalJSON writes the rate as a JSON number
func (p Percentage) MarshalJSON() ([]byte, error) {
	return []byte(p.Decimal.String()), nil
}
