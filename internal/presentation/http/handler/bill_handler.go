package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/smartventory-api/internal/application/service"
	"github.com/sangkips/smartventory-api/internal/presentation/http/dto/request"
	"github.com/sangkips/smartventory-api/internal/presentation/http/dto/response"
)

// BillHandler handles saved bill HTTP requests
type BillHandler struct {
	billService     *service.BillService
	documentService *service.DocumentService
	printerService  *service.PrinterService
	shareService    *service.ShareService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(
	billService *service.BillService,
	documentService *service.DocumentService,
	printerService *service.PrinterService,
	shareService *service.ShareService,
) *BillHandler {
	return &BillHandler{
		billService:     billService,
		documentService: documentService,
		printerService:  printerService,
		shareService:    shareService,
	}
}

// List handles listing the bill history
func (h *BillHandler) List(c *gin.Context) {
	var filter request.BillFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.billService.ListBills(c.Request.Context(), &service.ListBillsInput{
		Search:     filter.Search,
		Date:       filter.Date,
		From:       filter.From,
		To:         filter.To,
		Pagination: pageParams(filter.Page, filter.PerPage),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Bills retrieved successfully", result)
}

// Get handles getting a bill by number
func (h *BillHandler) Get(c *gin.Context) {
	bill, err := h.billService.GetBill(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

// PDF handles downloading the invoice of a bill
func (h *BillHandler) PDF(c *gin.Context) {
	doc, err := h.documentService.RenderBill(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	c.Data(http.StatusOK, "application/pdf", doc.Data)
}

// Print handles printing the receipt of a bill
func (h *BillHandler) Print(c *gin.Context) {
	receipt, err := h.printerService.PrintBill(c.Request.Context(), c.Param("number"))
	if err != nil {
		// If receipt was built but printing failed, return receipt with warning
		if receipt != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": receipt,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", gin.H{
		"receipt": receipt,
	})
}

// Share handles sending a bill to a customer
func (h *BillHandler) Share(c *gin.Context) {
	var req request.ShareBillRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body: "+err.Error())
			return
		}
	}

	delivery, err := h.shareService.ShareBill(c.Request.Context(), &service.ShareBillInput{
		Number:  c.Param("number"),
		Channel: req.Channel,
		To:      req.To,
		Message: req.Message,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill shared successfully", delivery)
}

// ShareChannels handles listing the available share channels
func (h *BillHandler) ShareChannels(c *gin.Context) {
	response.OK(c, "Share channels retrieved successfully", h.shareService.Channels())
}
