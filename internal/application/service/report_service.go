package service

import (
	"context"
	"sort"
	"time"

	"github.com/sangkips/smartventory-api/internal/domain/entity"
	"github.com/sangkips/smartventory-api/internal/domain/repository"
	"github.com/sangkips/smartventory-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

const (
	defaultReportDays = 7
	maxReportDays     = 366
	bestSellerLimit   = 5
)

// ReportService aggregates saved bills into sales reports
type ReportService struct {
	billRepo          repository.BillRepository
	catalogRepo       repository.CatalogRepository
	lowStockThreshold int
	loc               *time.Location
	now               func() time.Time
}

// NewReportService creates a new report service
func NewReportService(
	billRepo repository.BillRepository,
	catalogRepo repository.CatalogRepository,
	lowStockThreshold int,
	loc *time.Location,
) *ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportService{
		billRepo:          billRepo,
		catalogRepo:       catalogRepo,
		lowStockThreshold: lowStockThreshold,
		loc:               loc,
		now:               time.Now,
	}
}

// ReportSummary represents the sales report for a range of days
type ReportSummary struct {
	From              string               `json:"from"`
	To                string               `json:"to"`
	BillCount         int                  `json:"billCount"`
	ItemsSold         int                  `json:"itemsSold"`
	Subtotal          entity.Money         `json:"subtotal"`
	Tax               entity.Money         `json:"gst"`
	CGST              entity.Money         `json:"cgst"`
	SGST              entity.Money         `json:"sgst"`
	Revenue           entity.Money         `json:"revenue"`
	Profit            entity.Money         `json:"profit"`
	AverageBillValue  entity.Money         `json:"averageBillValue"`
	TotalItems        int64                `json:"totalItems"`
	DailySalesData    []DailySalesPoint    `json:"dailySales"`
	CategorySalesData []CategorySalesPoint `json:"categorySales"`
	BestSellers       []BestSellerPoint    `json:"bestSellers"`
	LowStock          []entity.CatalogItem `json:"lowStock"`
}

// DailySalesPoint represents a daily sales data point
type DailySalesPoint struct {
	Date    string       `json:"date"`
	Bills   int          `json:"bills"`
	Revenue entity.Money `json:"revenue"`
	Profit  entity.Money `json:"profit"`
}

// CategorySalesPoint represents sales by category, before tax
type CategorySalesPoint struct {
	Category string       `json:"category"`
	Quantity int          `json:"quantity"`
	Amount   entity.Money `json:"amount"`
}

// BestSellerPoint represents one of the most sold items
type BestSellerPoint struct {
	ItemID  uint         `json:"id"`
	Name    string       `json:"name"`
	Sold    int          `json:"sold"`
	Revenue entity.Money `json:"revenue"`
}

// SummaryInput selects inclusive calendar days. With neither bound the
// report covers the last seven days including today; a single bound is
// widened to seven days.
type SummaryInput struct {
	From string
	To   string
}

// GetSummary returns the sales report for a range of days
func (s *ReportService) GetSummary(ctx context.Context, input *SummaryInput) (*ReportSummary, error) {
	first, last, err := s.resolveDays(input)
	if err != nil {
		return nil, err
	}
	end := last.AddDate(0, 0, 1)

	bills, _, err := s.billRepo.Query(ctx, &repository.BillFilterParams{From: &first, To: &end})
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load bills", err)
	}

	summary := &ReportSummary{
		From:     first.Format(DateLayout),
		To:       last.Format(DateLayout),
		Subtotal: entity.ZeroMoney,
		Tax:      entity.ZeroMoney,
		Revenue:  entity.ZeroMoney,
		Profit:   entity.ZeroMoney,
	}

	days := make(map[string]int)
	for d := first; d.Before(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(DateLayout)
		days[key] = len(summary.DailySalesData)
		summary.DailySalesData = append(summary.DailySalesData, DailySalesPoint{
			Date:    key,
			Revenue: entity.ZeroMoney,
			Profit:  entity.ZeroMoney,
		})
	}

	categories := make(map[string]*CategorySalesPoint)
	items := make(map[uint]*BestSellerPoint)
	for i := range bills {
		b := &bills[i]
		summary.BillCount++
		summary.Subtotal = summary.Subtotal.Plus(b.Subtotal)
		summary.Tax = summary.Tax.Plus(b.TaxTotal)
		summary.Revenue = summary.Revenue.Plus(b.Total)
		summary.Profit = summary.Profit.Plus(b.Profit)

		if idx, ok := days[b.Date.In(s.loc).Format(DateLayout)]; ok {
			day := &summary.DailySalesData[idx]
			day.Bills++
			day.Revenue = day.Revenue.Plus(b.Total)
			day.Profit = day.Profit.Plus(b.Profit)
		}

		for j := range b.Items {
			line := &b.Items[j]
			amount := line.Subtotal()
			summary.ItemsSold += line.Quantity

			cat, ok := categories[line.Category]
			if !ok {
				cat = &CategorySalesPoint{Category: line.Category, Amount: entity.ZeroMoney}
				categories[line.Category] = cat
			}
			cat.Quantity += line.Quantity
			cat.Amount = cat.Amount.Plus(amount)

			item, ok := items[line.ItemID]
			if !ok {
				item = &BestSellerPoint{ItemID: line.ItemID, Name: line.Name, Revenue: entity.ZeroMoney}
				items[line.ItemID] = item
			}
			item.Sold += line.Quantity
			item.Revenue = item.Revenue.Plus(amount)
		}
	}

	summary.CGST = summary.Tax.Half()
	summary.SGST = summary.Tax.Half()
	summary.AverageBillValue = entity.ZeroMoney
	if summary.BillCount > 0 {
		avg := summary.Revenue.Decimal.Div(decimal.NewFromInt(int64(summary.BillCount))).Round(2)
		summary.AverageBillValue = entity.NewMoney(avg)
	}
	summary.CategorySalesData = sortedCategories(categories)
	summary.BestSellers = topSellers(items, bestSellerLimit)

	summary.TotalItems, err = s.catalogRepo.Count(ctx)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to count items", err)
	}
	summary.LowStock, err = s.catalogRepo.LowStock(ctx, s.lowStockThreshold)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to load low stock items", err)
	}

	return summary, nil
}

// resolveDays returns the first and last day of the report at midnight in
// the configured location
func (s *ReportService) resolveDays(input *SummaryInput) (time.Time, time.Time, error) {
	from, to, err := parseDayRange(input.From, input.To, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	var first, last time.Time
	switch {
	case from != nil && to != nil:
		first, last = *from, to.AddDate(0, 0, -1)
	case from != nil:
		first = *from
		last = first.AddDate(0, 0, defaultReportDays-1)
	case to != nil:
		last = to.AddDate(0, 0, -1)
		first = last.AddDate(0, 0, -(defaultReportDays - 1))
	default:
		now := s.now().In(s.loc)
		last = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
		first = last.AddDate(0, 0, -(defaultReportDays - 1))
	}

	if last.Sub(first) >= maxReportDays*24*time.Hour {
		return time.Time{}, time.Time{}, apperror.NewBadRequestError("Report range cannot exceed one year")
	}
	return first, last, nil
}

func sortedCategories(m map[string]*CategorySalesPoint) []CategorySalesPoint {
	out := make([]CategorySalesPoint, 0, len(m))
	for _, c := range m {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount.Decimal); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func topSellers(m map[uint]*BestSellerPoint, limit int) []BestSellerPoint {
	out := make([]BestSellerPoint, 0, len(m))
	for _, it := range m {
		out = append(out, *it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sold != out[j].Sold {
			return out[i].Sold > out[j].Sold
		}
		if c := out[i].Revenue.Cmp(out[j].Revenue.Decimal); c != 0 {
			return c > 0
		}
		return out[i].ItemID < out[j].ItemID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
