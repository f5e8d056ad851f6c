package analytics

import (
	"sort"
	"time"

	"github.com/sellerlytics/sellerlytics/internal/models"
)

// Each breakdown is an independent pure aggregation over the same filtered
// set, composed rather than layered, so every table is testable in
// isolation.

type MonthlyTrendRow struct {
	SellerID    string  `json:"seller_id"`
	SellerName  string  `json:"seller_name"`
	Month       string  `json:"month"` // "2006-01"
	TotalOrders int     `json:"total_orders"`
	Revenue     float64 `json:"monthly_revenue"`
}

type StatusDistributionRow struct {
	SellerID   string  `json:"seller_id"`
	Status     string  `json:"order_status"`
	OrderCount int     `json:"order_count"`
	Percentage float64 `json:"percentage"`
}

type CategoryDistributionRow struct {
	SellerID   string  `json:"seller_id"`
	Category   string  `json:"product_category"`
	OrderCount int     `json:"order_count"`
	Percentage float64 `json:"percentage"`
	Revenue    float64 `json:"category_revenue"`
}

type ReturnReasonRow struct {
	SellerID    string `json:"seller_id"`
	Reason      string `json:"return_reason"`
	ReturnCount int    `json:"return_count"`
}

// MonthlyTrend totals orders and revenue per (seller, calendar month).
// Months with no orders are zero-filled across the active range so charts
// stay monotonic on the time axis. The range is the filter's when bounded,
// otherwise the span of the filtered orders.
func MonthlyTrend(fs *FilteredSet, f FilterSpec) []MonthlyTrendRow {
	start, end := trendRange(fs, f)
	if start.IsZero() {
		return nil
	}

	type key struct {
		seller string
		month  string
	}
	orders := make(map[key]int)
	revenue := make(map[key]float64)
	for _, o := range fs.Orders {
		k := key{o.SellerID, o.OrderDate.Format("2006-01")}
		orders[k]++
		if o.CountsAsRevenue() {
			revenue[k] += o.Value
		}
	}

	var rows []MonthlyTrendRow
	for _, seller := range fs.Sellers {
		for m := firstOfMonth(start); !m.After(end); m = m.AddDate(0, 1, 0) {
			k := key{seller.ID, m.Format("2006-01")}
			rows = append(rows, MonthlyTrendRow{
				SellerID:    seller.ID,
				SellerName:  seller.Name,
				Month:       k.month,
				TotalOrders: orders[k],
				Revenue:     round2(revenue[k]),
			})
		}
	}
	return rows
}

func trendRange(fs *FilteredSet, f FilterSpec) (time.Time, time.Time) {
	start, end := f.StartDate, f.EndDate
	if start.IsZero() || end.IsZero() {
		var min, max time.Time
		for _, o := range fs.Orders {
			if min.IsZero() || o.OrderDate.Before(min) {
				min = o.OrderDate
			}
			if o.OrderDate.After(max) {
				max = o.OrderDate
			}
		}
		if start.IsZero() {
			start = min
		}
		if end.IsZero() {
			end = max
		}
	}
	return start, end
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// StatusDistribution counts each seller's orders per terminal status. Every
// retained seller gets a row for every status, zero-filled, so the table
// shape does not depend on the data.
func StatusDistribution(fs *FilteredSet) []StatusDistributionRow {
	var rows []StatusDistributionRow
	for _, seller := range fs.Sellers {
		counts := make(map[string]int, len(models.OrderStatuses))
		total := 0
		for _, o := range fs.OrdersBySeller[seller.ID] {
			counts[o.Status]++
			total++
		}
		for _, status := range models.OrderStatuses {
			rows = append(rows, StatusDistributionRow{
				SellerID:   seller.ID,
				Status:     status,
				OrderCount: counts[status],
				Percentage: round2(ratio(float64(counts[status]), float64(total)) * 100),
			})
		}
	}
	return rows
}

// CategoryDistribution reports, per seller, the order count, share, and
// revenue of each product category they sold in under the filter. Only
// observed categories appear; counts sum to the seller's total_orders.
func CategoryDistribution(fs *FilteredSet) []CategoryDistributionRow {
	var rows []CategoryDistributionRow
	for _, seller := range fs.Sellers {
		counts := make(map[string]int)
		revenue := make(map[string]float64)
		total := 0
		for _, o := range fs.OrdersBySeller[seller.ID] {
			counts[o.Category]++
			total++
			if o.CountsAsRevenue() {
				revenue[o.Category] += o.Value
			}
		}

		categories := make([]string, 0, len(counts))
		for c := range counts {
			categories = append(categories, c)
		}
		sort.Strings(categories)

		for _, c := range categories {
			rows = append(rows, CategoryDistributionRow{
				SellerID:   seller.ID,
				Category:   c,
				OrderCount: counts[c],
				Percentage: round2(ratio(float64(counts[c]), float64(total)) * 100),
				Revenue:    round2(revenue[c]),
			})
		}
	}
	return rows
}

// ReturnReasons counts returns per (seller, reason) under the filter.
func ReturnReasons(fs *FilteredSet) []ReturnReasonRow {
	var rows []ReturnReasonRow
	for _, seller := range fs.Sellers {
		counts := make(map[string]int)
		for _, r := range fs.ReturnsBySeller[seller.ID] {
			counts[r.Reason]++
		}

		reasons := make([]string, 0, len(counts))
		for r := range counts {
			reasons = append(reasons, r)
		}
		sort.Strings(reasons)

		for _, reason := range reasons {
			rows = append(rows, ReturnReasonRow{
				SellerID:    seller.ID,
				Reason:      reason,
				ReturnCount: counts[reason],
			})
		}
	}
	return rows
}
