package service

import (
	"context"
	"time"

	"github.com/sangkips/smartventory-api/internal/domain/entity"
	"github.com/sangkips/smartventory-api/internal/domain/repository"
	"github.com/sangkips/smartventory-api/pkg/apperror"
	"github.com/sangkips/smartventory-api/pkg/pagination"
)

// DateLayout is the calendar-day format accepted by history and report filters
const DateLayout = "2006-01-02"

// BillService serves the saved bill history
type BillService struct {
	billRepo repository.BillRepository
	loc      *time.Location
}

// NewBillService creates a new bill service
func NewBillService(billRepo repository.BillRepository, loc *time.Location) *BillService {
	if loc == nil {
		loc = time.Local
	}
	return &BillService{billRepo: billRepo, loc: loc}
}

// ListBillsInput filters the bill history. Date selects one calendar day and
// takes precedence over From/To, which are inclusive days.
type ListBillsInput struct {
	Search     string
	Date       string
	From       string
	To         string
	Pagination *pagination.PaginationParams
}

// BillDetail is a saved bill with the figures derived for display
type BillDetail struct {
	*entity.Bill
	CGST      entity.Money `json:"cgst"`
	SGST      entity.Money `json:"sgst"`
	ItemCount int          `json:"itemCount"`
}

// NewBillDetail derives the display figures of a bill
func NewBillDetail(b *entity.Bill) *BillDetail {
	return &BillDetail{
		Bill:      b,
		CGST:      b.CGST(),
		SGST:      b.SGST(),
		ItemCount: b.ItemCount(),
	}
}

// ListBills lists bills newest first
func (s *BillService) ListBills(ctx context.Context, input *ListBillsInput) (*pagination.PaginatedResult[entity.Bill], error) {
	params := &repository.BillFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
	}
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	var err error
	if input.Date != "" {
		params.From, params.To, err = s.dayRange(input.Date, input.Date)
	} else {
		params.From, params.To, err = s.dayRange(input.From, input.To)
	}
	if err != nil {
		return nil, err
	}

	bills, total, err := s.billRepo.Query(ctx, params)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load bills", err)
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(bills, pag), nil
}

// GetBill returns the most recent bill with the given number
func (s *BillService) GetBill(ctx context.Context, number string) (*BillDetail, error) {
	bill, err := s.billRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load bill", err)
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return NewBillDetail(bill), nil
}

// dayRange turns inclusive calendar days into a [from, to) instant range in
// the configured location. Empty bounds stay open.
func (s *BillService) dayRange(from, to string) (*time.Time, *time.Time, error) {
	return parseDayRange(from, to, s.loc)
}

func parseDayRange(from, to string, loc *time.Location) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if from != "" {
		t, err := time.ParseInLocation(DateLayout, from, loc)
		if err != nil {
			return nil, nil, apperror.NewBadRequestError("Invalid date, expected YYYY-MM-DD")
		}
		start = &t
	}
	if to != "" {
		t, err := time.ParseInLocation(DateLayout, to, loc)
		if err != nil {
			return nil, nil, apperror.NewBadRequestError("Invalid date, expected YYYY-MM-DD")
		}
		t = t.AddDate(0, 0, 1)
		end = &t
	}
	if start != nil && end != nil && !start.Before(*end) {
		return nil, nil, apperror.NewBadRequestError("Start date must not be after end date")
	}
	return start, end, nil
}
