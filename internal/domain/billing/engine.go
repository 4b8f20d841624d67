package billing

import (
	"context"
	"time"

	"github.com/sangkips/smartventory-api/internal/domain/entity"
	"github.com/sangkips/smartventory-api/internal/domain/repository"
)

// Customer identifies who a bill is issued to. Both fields are optional.
type Customer struct {
	Name  string `json:"customerName"`
	Phone string `json:"customerPhone"`
}

// Engine turns drafts into persisted bills. It holds no draft state of its
// own; callers thread drafts through explicitly.
type Engine struct {
	store    repository.BillStore
	numberer Numberer
}

// NewEngine creates an engine over a bill store
func NewEngine(store repository.BillStore, numberer Numberer) *Engine {
	if numberer == nil {
		numberer = NewRandomNumberer(nil)
	}
	return &Engine{store: store, numberer: numberer}
}

// NewDraft starts an empty draft with a freshly minted number
func (e *Engine) NewDraft(ctx context.Context, now time.Time) (Draft, error) {
	number, err := e.numberer.Next(ctx, now)
	if err != nil {
		return Draft{}, &PersistenceError{Op: "mint bill number", Err: err}
	}
	return NewDraft(number), nil
}

// BuildBill snapshots a draft into a bill with every total fixed at now
func BuildBill(d Draft, customer Customer, now time.Time, table TaxTable) *entity.Bill {
	lines := make([]entity.BillLine, len(d.Lines))
	for i, l := range d.Lines {
		l.ID = 0
		l.BillID = 0
		l.Position = i
		lines[i] = l
	}

	totals := ComputeTotals(d, table)
	return &entity.Bill{
		BillNumber:    d.BillNumber,
		CustomerName:  customer.Name,
		CustomerPhone: customer.Phone,
		Items:         lines,
		Subtotal:      totals.Subtotal,
		TaxTotal:      totals.Tax,
		Total:         totals.Total,
		Profit:        totals.Profit,
		Date:          now,
	}
}

// SaveBill persists the draft and then mints the number for the next one.
//
// An empty draft fails with ErrEmptyBill and the store is not touched. A
// store failure returns the input draft unchanged with a *PersistenceError.
// On success the returned draft is empty and carries the new number. If
// minting fails after the bill was stored, the bill is still returned along
// with an empty, unnumbered draft and a *PersistenceError.
func (e *Engine) SaveBill(ctx context.Context, d Draft, customer Customer, now time.Time, table TaxTable) (*entity.Bill, Draft, error) {
	if d.IsEmpty() {
		return nil, d, ErrEmptyBill
	}

	bill := BuildBill(d, customer, now, table)
	if err := e.store.Append(ctx, bill); err != nil {
		return nil, d, &PersistenceError{Op: "append bill", Err: err}
	}

	next, err := e.NewDraft(ctx, now)
	if err != nil {
		return bill, Draft{}, err
	}
	return bill, next, nil
}

// History lists saved bills newest first
func (e *Engine) History(ctx context.Context) ([]entity.Bill, error) {
	bills, err := e.store.ListAll(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "list bills", Err: err}
	}
	return bills, nil
}
