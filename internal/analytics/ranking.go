package analytics

import "sort"

// Rankings operate on the per-seller aggregate rows already computed under
// the active filter; they never re-scan raw records. Sellers below the
// minimum order count are ineligible for either list.

// TopSellers orders eligible sellers by revenue descending, breaking ties
// by average rating descending, then return rate ascending.
func TopSellers(rows []SellerKPI, minOrders, limit int) []SellerKPI {
	ranked := eligible(rows, minOrders)
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.TotalRevenue != b.TotalRevenue {
			return a.TotalRevenue > b.TotalRevenue
		}
		if a.AverageRating != b.AverageRating {
			return a.AverageRating > b.AverageRating
		}
		if a.ReturnRate != b.ReturnRate {
			return a.ReturnRate < b.ReturnRate
		}
		return a.SellerID < b.SellerID
	})
	return truncate(ranked, limit)
}

// Underperformers orders eligible sellers by return rate descending,
// breaking ties by cancellation rate descending, then average rating
// ascending.
func Underperformers(rows []SellerKPI, minOrders, limit int) []SellerKPI {
	ranked := eligible(rows, minOrders)
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.ReturnRate != b.ReturnRate {
			return a.ReturnRate > b.ReturnRate
		}
		if a.CancellationRate != b.CancellationRate {
			return a.CancellationRate > b.CancellationRate
		}
		if a.AverageRating != b.AverageRating {
			return a.AverageRating < b.AverageRating
		}
		return a.SellerID < b.SellerID
	})
	return truncate(ranked, limit)
}

func eligible(rows []SellerKPI, minOrders int) []SellerKPI {
	out := make([]SellerKPI, 0, len(rows))
	for _, r := range rows {
		if r.TotalOrders >= minOrders {
			out = append(out, r)
		}
	}
	return out
}

func truncate(rows []SellerKPI, limit int) []SellerKPI {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
