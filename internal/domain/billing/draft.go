package billing

import (
	"github.com/sangkips/smartventory-api/internal/domain/entity"
)

// Draft is an in-progress bill. Drafts are values: every operation returns
// a new Draft and leaves its argument untouched.
type Draft struct {
	BillNumber string            `json:"billNumber"`
	Lines      []entity.BillLine `json:"items"`
}

// NewDraft starts an empty draft under the given bill number
func NewDraft(billNumber string) Draft {
	return Draft{BillNumber: billNumber}
}

// IsEmpty reports whether the draft has no lines
func (d Draft) IsEmpty() bool {
	return len(d.Lines) == 0
}

func (d Draft) indexOf(itemID uint) int {
	for i := range d.Lines {
		if d.Lines[i].ItemID == itemID {
			return i
		}
	}
	return -1
}

func (d Draft) clone() Draft {
	lines := make([]entity.BillLine, len(d.Lines))
	copy(lines, d.Lines)
	return Draft{BillNumber: d.BillNumber, Lines: lines}
}

// AddLine adds quantity units of item. An item already on the draft has the
// quantity added to its existing line, keeping its original position;
// otherwise a new line is appended.
func AddLine(d Draft, item entity.CatalogItem, quantity int) (Draft, error) {
	if quantity < 1 {
		return d, ErrInvalidQuantity
	}

	next := d.clone()
	if i := next.indexOf(item.ID); i >= 0 {
		next.Lines[i].Quantity += quantity
		return next, nil
	}

	next.Lines = append(next.Lines, entity.NewBillLine(item, quantity))
	return next, nil
}

// RemoveLine drops the line for itemID. Removing an absent item is a no-op.
func RemoveLine(d Draft, itemID uint) Draft {
	i := d.indexOf(itemID)
	if i < 0 {
		return d
	}

	next := Draft{BillNumber: d.BillNumber, Lines: make([]entity.BillLine, 0, len(d.Lines)-1)}
	next.Lines = append(next.Lines, d.Lines[:i]...)
	next.Lines = append(next.Lines, d.Lines[i+1:]...)
	return next
}

// SetLineQuantity replaces the quantity of an existing line. A non-positive
// quantity never removes the line: the draft comes back unchanged with
// ErrInvalidQuantity.
func SetLineQuantity(d Draft, itemID uint, quantity int) (Draft, error) {
	if quantity <= 0 {
		return d, ErrInvalidQuantity
	}

	i := d.indexOf(itemID)
	if i < 0 {
		return d, nil
	}

	next := d.clone()
	next.Lines[i].Quantity = quantity
	return next, nil
}
