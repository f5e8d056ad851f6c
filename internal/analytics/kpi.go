package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/sellerlytics/sellerlytics/internal/models"
)

// SellerKPI is one aggregate row per seller under the active filter.
// Revenue excludes cancelled and returned orders everywhere, including the
// average order value numerator.
type SellerKPI struct {
	SellerID                 string  `json:"seller_id"`
	SellerName               string  `json:"seller_name"`
	SellerLocation           string  `json:"seller_location"`
	Specialization           string  `json:"category_specialization"`
	TotalOrders              int     `json:"total_orders"`
	TotalRevenue             float64 `json:"total_revenue"`
	AverageOrderValue        float64 `json:"average_order_value"`
	OnTimeDeliveryRate       float64 `json:"ontime_delivery_rate"`
	CancellationRate         float64 `json:"cancellation_rate"`
	ReturnRate               float64 `json:"return_rate"`
	AverageRating            float64 `json:"average_rating"`
	TotalReviewCount         int     `json:"total_review_count"`
	NegativeReviewCount      int     `json:"negative_review_count"`
	NegativeReviewPercentage float64 `json:"negative_review_percentage"`
	DaysSinceJoining         int     `json:"days_since_joining"`
}

// round2 rounds to two decimal places, the convention for every percentage
// and rate in the report.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ratio is null-safe division: a zero denominator yields 0, never an error
// or NaN.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// AggregateSellers computes one KPI row per retained seller. It is total
// over any filtered set: a seller with no matching orders gets an all-zero
// row. Rows come back ordered by total revenue descending, then seller id.
func AggregateSellers(fs *FilteredSet, referenceDate time.Time, onTimeDays int) []SellerKPI {
	rows := make([]SellerKPI, 0, len(fs.Sellers))

	for _, seller := range fs.Sellers {
		row := SellerKPI{
			SellerID:         seller.ID,
			SellerName:       seller.Name,
			SellerLocation:   seller.Location,
			Specialization:   seller.Specialization,
			DaysSinceJoining: int(referenceDate.Sub(seller.JoinDate).Hours() / 24),
		}

		var delivered, cancelled, returned, onTime int
		var revenue float64
		for _, o := range fs.OrdersBySeller[seller.ID] {
			row.TotalOrders++
			switch o.Status {
			case models.OrderStatusCancelled:
				cancelled++
			case models.OrderStatusReturned:
				returned++
			default:
				delivered++
			}
			if o.CountsAsRevenue() {
				revenue += o.Value
			}
			if o.ReachedDelivery() && o.DeliveredWithin(onTimeDays) {
				onTime++
			}
		}

		var scoreSum, negative int
		ratings := fs.RatingsBySeller[seller.ID]
		for _, r := range ratings {
			scoreSum += r.Score
			if r.Score <= 2 {
				negative++
			}
		}

		row.TotalRevenue = round2(revenue)
		row.AverageOrderValue = round2(ratio(revenue, float64(row.TotalOrders)))
		row.OnTimeDeliveryRate = round2(ratio(float64(onTime), float64(delivered+returned)) * 100)
		row.CancellationRate = round2(ratio(float64(cancelled), float64(row.TotalOrders)) * 100)
		row.ReturnRate = round2(ratio(float64(returned), float64(delivered+returned)) * 100)
		row.AverageRating = round2(ratio(float64(scoreSum), float64(len(ratings))))
		row.TotalReviewCount = len(ratings)
		row.NegativeReviewCount = negative
		row.NegativeReviewPercentage = round2(ratio(float64(negative), float64(len(ratings))) * 100)

		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalRevenue != rows[j].TotalRevenue {
			return rows[i].TotalRevenue > rows[j].TotalRevenue
		}
		return rows[i].SellerID < rows[j].SellerID
	})
	return rows
}
