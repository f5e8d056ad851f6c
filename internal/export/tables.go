package export

import (
	"strconv"
	"time"

	"github.com/sellerlytics/sellerlytics/internal/analytics"
	"github.com/sellerlytics/sellerlytics/internal/models"
)

// Table is a flat, already-formatted result table ready for any exporter.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string
}

func fdate(t time.Time) string {
	return t.Format("2006-01-02")
}

func fdatep(t *time.Time) string {
	if t == nil {
		return ""
	}
	return fdate(*t)
}

func fnum(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// SnapshotTables flattens the four record collections.
func SnapshotTables(snap *models.Snapshot) []Table {
	sellers := Table{
		Name:    "sellers",
		Headers: []string{"seller_id", "seller_name", "seller_location", "join_date", "category_specialization"},
	}
	for _, s := range snap.Sellers {
		sellers.Rows = append(sellers.Rows, []string{s.ID, s.Name, s.Location, fdate(s.JoinDate), s.Specialization})
	}

	orders := Table{
		Name:    "orders",
		Headers: []string{"order_id", "seller_id", "order_date", "shipped_date", "delivered_date", "order_status", "product_category", "order_value"},
	}
	for _, o := range snap.Orders {
		orders.Rows = append(orders.Rows, []string{
			o.ID, o.SellerID, fdate(o.OrderDate), fdatep(o.ShippedDate), fdatep(o.DeliveredDate),
			o.Status, o.Category, fnum(o.Value),
		})
	}

	ratings := Table{
		Name:    "ratings",
		Headers: []string{"rating_id", "order_id", "seller_id", "rating_score", "review_text"},
	}
	for _, r := range snap.Ratings {
		ratings.Rows = append(ratings.Rows, []string{r.ID, r.OrderID, r.SellerID, strconv.Itoa(r.Score), r.Review})
	}

	returns := Table{
		Name:    "returns",
		Headers: []string{"return_id", "order_id", "seller_id", "return_reason", "return_date"},
	}
	for _, r := range snap.Returns {
		returns.Rows = append(returns.Rows, []string{r.ID, r.OrderID, r.SellerID, r.Reason, fdate(r.ReturnDate)})
	}

	return []Table{sellers, orders, ratings, returns}
}

// ResultTables flattens every table a query produced.
func ResultTables(result *analytics.Result) []Table {
	kpis := kpiTable("seller_kpis", result.SellerKPIs)
	top := kpiTable("top_sellers", result.TopSellers)
	under := kpiTable("underperformers", result.Underperformers)

	trend := Table{
		Name:    "monthly_trend",
		Headers: []string{"seller_id", "seller_name", "month", "total_orders", "monthly_revenue"},
	}
	for _, r := range result.MonthlyTrend {
		trend.Rows = append(trend.Rows, []string{r.SellerID, r.SellerName, r.Month, strconv.Itoa(r.TotalOrders), fnum(r.Revenue)})
	}

	status := Table{
		Name:    "status_distribution",
		Headers: []string{"seller_id", "order_status", "order_count", "percentage"},
	}
	for _, r := range result.StatusDistribution {
		status.Rows = append(status.Rows, []string{r.SellerID, r.Status, strconv.Itoa(r.OrderCount), fnum(r.Percentage)})
	}

	categories := Table{
		Name:    "category_distribution",
		Headers: []string{"seller_id", "product_category", "order_count", "percentage", "category_revenue"},
	}
	for _, r := range result.CategoryDistribution {
		categories.Rows = append(categories.Rows, []string{r.SellerID, r.Category, strconv.Itoa(r.OrderCount), fnum(r.Percentage), fnum(r.Revenue)})
	}

	reasons := Table{
		Name:    "return_reasons",
		Headers: []string{"seller_id", "return_reason", "return_count"},
	}
	for _, r := range result.ReturnReasons {
		reasons.Rows = append(reasons.Rows, []string{r.SellerID, r.Reason, strconv.Itoa(r.ReturnCount)})
	}

	return []Table{kpis, trend, status, categories, reasons, top, under}
}

func kpiTable(name string, rows []analytics.SellerKPI) Table {
	t := Table{
		Name: name,
		Headers: []string{
			"seller_id", "seller_name", "seller_location", "category_specialization",
			"total_orders", "total_revenue", "average_order_value", "ontime_delivery_rate",
			"cancellation_rate", "return_rate", "average_rating", "total_review_count",
			"negative_review_count", "negative_review_percentage", "days_since_joining",
		},
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.SellerID, r.SellerName, r.SellerLocation, r.Specialization,
			strconv.Itoa(r.TotalOrders), fnum(r.TotalRevenue), fnum(r.AverageOrderValue), fnum(r.OnTimeDeliveryRate),
			fnum(r.CancellationRate), fnum(r.ReturnRate), fnum(r.AverageRating), strconv.Itoa(r.TotalReviewCount),
			strconv.Itoa(r.NegativeReviewCount), fnum(r.NegativeReviewPercentage), strconv.Itoa(r.DaysSinceJoining),
		})
	}
	return t
}
