package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/smartventory-api/internal/application/service"
	"github.com/sangkips/smartventory-api/internal/domain/billing"
	"github.com/sangkips/smartventory-api/internal/presentation/http/dto/request"
	"github.com/sangkips/smartventory-api/internal/presentation/http/dto/response"
)

// DraftHandler handles the in-progress bills of the billing screen
type DraftHandler struct {
	billingService *service.BillingService
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(billingService *service.BillingService) *DraftHandler {
	return &DraftHandler{billingService: billingService}
}

// Create handles starting a new bill
func (h *DraftHandler) Create(c *gin.Context) {
	draft, err := h.billingService.NewDraft(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Draft created successfully", draft)
}

// Get handles getting a draft with its totals
func (h *DraftHandler) Get(c *gin.Context) {
	draft, err := h.billingService.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Draft retrieved successfully", draft)
}

// AddLine handles adding a catalog item to a draft
func (h *DraftHandler) AddLine(c *gin.Context) {
	var req request.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	draft, err := h.billingService.AddLine(c.Request.Context(), c.Param("id"), req.ItemID, quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added to bill", draft)
}

// UpdateLine handles changing the quantity of a draft line
func (h *DraftHandler) UpdateLine(c *gin.Context) {
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}

	var req request.SetLineQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	draft, err := h.billingService.SetLineQuantity(c.Request.Context(), c.Param("id"), itemID, *req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quantity updated", draft)
}

// RemoveLine handles dropping an item from a draft
func (h *DraftHandler) RemoveLine(c *gin.Context) {
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}

	draft, err := h.billingService.RemoveLine(c.Request.Context(), c.Param("id"), itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed from bill", draft)
}

// Save handles persisting a draft as a bill
func (h *DraftHandler) Save(c *gin.Context) {
	var req request.SaveDraftRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body: "+err.Error())
			return
		}
	}

	result, err := h.billingService.SaveDraft(c.Request.Context(), c.Param("id"), billing.Customer{
		Name:  req.CustomerName,
		Phone: req.CustomerPhone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill saved successfully!", result)
}

// Discard handles abandoning a draft
func (h *DraftHandler) Discard(c *gin.Context) {
	if err := h.billingService.DiscardDraft(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Draft discarded", nil)
}
