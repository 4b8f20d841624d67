package request

// AddLineRequest adds a catalog item to a draft. Quantity defaults to 1.
type AddLineRequest struct {
	ItemID   uint `json:"itemId" binding:"required"`
	Quantity *int `json:"quantity"`
}

// SetLineQuantityRequest replaces the quantity of a draft line. Zero and
// negative values are passed through so the billing rules decide.
type SetLineQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// SaveDraftRequest carries the optional customer details of a bill
type SaveDraftRequest struct {
	CustomerName  string `json:"customerName" binding:"max=255"`
	CustomerPhone string `json:"customerPhone" binding:"max=32"`
}

// BillFilterRequest represents bill history filter parameters. Dates are
// YYYY-MM-DD.
type BillFilterRequest struct {
	Search  string `form:"search"`
	Date    string `form:"date"`
	From    string `form:"from"`
	To      string `form:"to"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

// ShareBillRequest sends a saved bill over a notification channel
type ShareBillRequest struct {
	Channel string `json:"channel" binding:"omitempty,max=20"`
	To      string `json:"to" binding:"max=255"`
	Message string `json:"message" binding:"max=1000"`
}

// ReportRequest selects the days of a report
type ReportRequest struct {
	From string `form:"from"`
	To   string `form:"to"`
}
