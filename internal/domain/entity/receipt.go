package entity

// ReceiptHeader holds the store header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	GSTNumber string `json:"gst_number,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice Money  `json:"unit_price"`
	Total     Money  `json:"total"`
}

// Receipt is a printable view of a saved bill. It is composed at print
// time and never persisted.
type Receipt struct {
	Header     ReceiptHeader `json:"header"`
	BillNumber string        `json:"bill_number"`
	Date       string        `json:"date"`
	Customer   string        `json:"customer,omitempty"`
	Phone      string        `json:"phone,omitempty"`
	Items      []ReceiptItem `json:"items"`
	SubTotal   Money         `json:"sub_total"`
	Tax        Money         `json:"gst"`
	SplitTax   bool          `json:"split_tax"`
	Total      Money         `json:"total"`
}

// NewReceipt builds a receipt from a bill and the store settings
func NewReceipt(bill *Bill, store StoreSettings, tax TaxSettings, dateLayout string) *Receipt {
	r := &Receipt{
		Header: ReceiptHeader{
			StoreName: store.StoreName,
			Address:   store.Address,
			Phone:     store.Phone,
			GSTNumber: store.GSTNumber,
		},
		BillNumber: bill.BillNumber,
		Date:       bill.Date.Format(dateLayout),
		Customer:   bill.CustomerName,
		Phone:      bill.CustomerPhone,
		Items:      make([]ReceiptItem, 0, len(bill.Items)),
		SubTotal:   bill.Subtotal,
		Tax:        bill.TaxTotal,
		SplitTax:   tax.CGSTSGSTSplit,
		Total:      bill.Total,
	}
	for i := range bill.Items {
		line := &bill.Items[i]
		r.Items = append(r.Items, ReceiptItem{
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.SellingPrice,
			Total:     line.Subtotal(),
		})
	}
	return r
}
