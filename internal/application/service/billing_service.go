package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/smartventory-api/internal/domain/billing"
	"github.com/sangkips/smartventory-api/internal/domain/entity"
	"github.com/sangkips/smartventory-api/internal/domain/repository"
	"github.com/sangkips/smartventory-api/pkg/apperror"
	"go.uber.org/zap"
)

// TaxTableSource supplies the tax table a bill is computed with
type TaxTableSource interface {
	TaxTable(ctx context.Context) (billing.TaxTable, error)
}

// BillingOptions tunes the draft session service
type BillingOptions struct {
	// StrictQuantity rejects non-positive quantities with a 422 instead of
	// leaving the draft unchanged.
	StrictQuantity bool
	DraftTTL       time.Duration
	Location       *time.Location
	Now            func() time.Time
}

// BillingService keeps the in-progress drafts of the billing screens. Each
// session owns one draft; saving a draft keeps the session open with a new,
// empty draft.
type BillingService struct {
	engine  *billing.Engine
	catalog repository.CatalogRepository
	taxes   TaxTableSource
	log     *zap.Logger
	opts    BillingOptions

	mu       sync.Mutex
	sessions map[string]*draftSession
}

type draftSession struct {
	draft     billing.Draft
	updatedAt time.Time
}

// NewBillingService creates a new billing service
func NewBillingService(
	engine *billing.Engine,
	catalog repository.CatalogRepository,
	taxes TaxTableSource,
	log *zap.Logger,
	opts BillingOptions,
) *BillingService {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &BillingService{
		engine:   engine,
		catalog:  catalog,
		taxes:    taxes,
		log:      log,
		opts:     opts,
		sessions: make(map[string]*draftSession),
	}
}

// DraftLineView is a draft line with its computed amounts
type DraftLineView struct {
	ItemID        uint              `json:"id"`
	Name          string            `json:"name"`
	Category      string            `json:"category"`
	SellingPrice  entity.Money      `json:"sellingPrice"`
	PurchasePrice entity.Money      `json:"purchasePrice"`
	Quantity      int               `json:"quantity"`
	TaxRate       entity.Percentage `json:"taxRate"`
	Amount        entity.Money      `json:"amount"`
}

// DraftView is what the billing screen renders
type DraftView struct {
	ID         string          `json:"id"`
	BillNumber string          `json:"billNumber"`
	Items      []DraftLineView `json:"items"`
	ItemCount  int             `json:"itemCount"`
	Totals     billing.Totals  `json:"totals"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// SaveDraftResult carries the persisted bill and the draft that replaced it
type SaveDraftResult struct {
	Bill *entity.Bill `json:"bill"`
	Next *DraftView   `json:"next,omitempty"`
}

func (s *BillingService) now() time.Time {
	return s.opts.Now().In(s.opts.Location)
}

// NewDraft opens a session with an empty, freshly numbered draft
func (s *BillingService) NewDraft(ctx context.Context) (*DraftView, error) {
	table, err := s.taxes.TaxTable(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	draft, err := s.engine.NewDraft(ctx, now)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to generate bill number", err)
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &draftSession{draft: draft, updatedAt: now}
	s.mu.Unlock()

	return newDraftView(id, draft, now, table), nil
}

// GetDraft returns the draft of a session with its totals
func (s *BillingService) GetDraft(ctx context.Context, id string) (*DraftView, error) {
	table, err := s.taxes.TaxTable(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, apperror.NewNotFoundError("Draft")
	}
	return newDraftView(id, sess.draft, sess.updatedAt, table), nil
}

// AddLine puts quantity units of a catalog item on the draft
func (s *BillingService) AddLine(ctx context.Context, id string, itemID uint, quantity int) (*DraftView, error) {
	item, err := s.catalog.FindByID(ctx, itemID)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load item", err)
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Item")
	}

	return s.update(ctx, id, func(d billing.Draft) (billing.Draft, error) {
		return billing.AddLine(d, *item, quantity)
	})
}

// SetLineQuantity replaces the quantity of a line. Items not on the draft
// are ignored.
func (s *BillingService) SetLineQuantity(ctx context.Context, id string, itemID uint, quantity int) (*DraftView, error) {
	return s.update(ctx, id, func(d billing.Draft) (billing.Draft, error) {
		return billing.SetLineQuantity(d, itemID, quantity)
	})
}

// RemoveLine drops an item from the draft
func (s *BillingService) RemoveLine(ctx context.Context, id string, itemID uint) (*DraftView, error) {
	return s.update(ctx, id, func(d billing.Draft) (billing.Draft, error) {
		return billing.RemoveLine(d, itemID), nil
	})
}

func (s *BillingService) update(ctx context.Context, id string, fn func(billing.Draft) (billing.Draft, error)) (*DraftView, error) {
	table, err := s.taxes.TaxTable(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, apperror.NewNotFoundError("Draft")
	}

	next, err := fn(sess.draft)
	if errors.Is(err, billing.ErrInvalidQuantity) {
		if s.opts.StrictQuantity {
			return nil, apperror.NewUnprocessableError("Quantity must be at least 1")
		}
		err = nil
	}
	if err != nil {
		return nil, err
	}

	sess.draft = next
	sess.updatedAt = s.now()
	return newDraftView(id, sess.draft, sess.updatedAt, table), nil
}

// SaveDraft persists the session's draft as a bill. Saves are serialised
// with every other draft operation.
func (s *BillingService) SaveDraft(ctx context.Context, id string, customer billing.Customer) (*SaveDraftResult, error) {
	table, err := s.taxes.TaxTable(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, apperror.NewNotFoundError("Draft")
	}

	now := s.now()
	bill, next, err := s.engine.SaveBill(ctx, sess.draft, customer, now, table)
	switch {
	case errors.Is(err, billing.ErrEmptyBill):
		return nil, apperror.NewUnprocessableError("Please add items to the bill")
	case err != nil && bill == nil:
		s.log.Error("failed to save bill",
			zap.String("draft_id", id),
			zap.String("bill_number", sess.draft.BillNumber),
			zap.Error(err),
		)
		return nil, apperror.NewInternalError("Failed to save bill", err)
	case err != nil:
		// The bill is stored but no number could be minted for the next one.
		s.log.Warn("bill saved without a follow-up draft",
			zap.String("bill_number", bill.BillNumber),
			zap.Error(err),
		)
		delete(s.sessions, id)
		return &SaveDraftResult{Bill: bill}, nil
	}

	s.log.Info("bill saved",
		zap.String("bill_number", bill.BillNumber),
		zap.Int("lines", len(bill.Items)),
		zap.String("total", bill.Total.String()),
	)

	sess.draft = next
	sess.updatedAt = now
	return &SaveDraftResult{
		Bill: bill,
		Next: newDraftView(id, next, now, table),
	}, nil
}

// DiscardDraft closes a session without saving
func (s *BillingService) DiscardDraft(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return apperror.NewNotFoundError("Draft")
	}
	delete(s.sessions, id)
	return nil
}

// EvictStale drops sessions idle for longer than the draft TTL and returns
// how many were removed
func (s *BillingService) EvictStale() int {
	if s.opts.DraftTTL <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.opts.DraftTTL)
	removed := 0
	for id, sess := range s.sessions {
		if sess.updatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunCleanup evicts stale drafts periodically until ctx is done
func (s *BillingService) RunCleanup(ctx context.Context, interval time.Duration) {
	if s.opts.DraftTTL <= 0 || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.EvictStale(); n > 0 {
				s.log.Info("evicted stale drafts", zap.Int("count", n))
			}
		}
	}
}

func newDraftView(id string, d billing.Draft, updatedAt time.Time, table billing.TaxTable) *DraftView {
	view := &DraftView{
		ID:         id,
		BillNumber: d.BillNumber,
		Items:      make([]DraftLineView, 0, len(d.Lines)),
		Totals:     billing.ComputeTotals(d, table),
		UpdatedAt:  updatedAt,
	}
	for i := range d.Lines {
		line := &d.Lines[i]
		view.ItemCount += line.Quantity
		view.Items = append(view.Items, DraftLineView{
			ItemID:        line.ItemID,
			Name:          line.Name,
			Category:      line.Category,
			SellingPrice:  line.SellingPrice,
			PurchasePrice: line.PurchasePrice,
			Quantity:      line.Quantity,
			TaxRate:       entity.Percentage{Decimal: table.RateFor(line.Category)},
			Amount:        line.Subtotal(),
		})
	}
	return view
}
