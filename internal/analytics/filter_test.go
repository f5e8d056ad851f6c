package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerlytics/sellerlytics/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type orderSpec struct {
	seller   string
	date     time.Time
	status   string
	category string
	value    float64
	shipGap  int // order to shipped, days
	gapDays  int // shipped to delivered, days
	rating   int // 0 means unrated
	reason   string
}

// buildSnapshot assembles a snapshot from compact order specs, deriving
// ratings and returns with sequential ids the way the generator does.
func buildSnapshot(sellers []models.Seller, specs []orderSpec) *models.Snapshot {
	var orders []models.Order
	var ratings []models.Rating
	var returns []models.Return

	for i, s := range specs {
		order := models.Order{
			ID:        orderID(i + 1),
			SellerID:  s.seller,
			OrderDate: s.date,
			Status:    s.status,
			Category:  s.category,
			Value:     s.value,
		}
		if s.status != models.OrderStatusCancelled {
			shipGap := s.shipGap
			if shipGap == 0 {
				shipGap = 1
			}
			shipped := s.date.AddDate(0, 0, shipGap)
			delivered := shipped.AddDate(0, 0, s.gapDays)
			order.ShippedDate = &shipped
			order.DeliveredDate = &delivered
		}
		if s.status == models.OrderStatusReturned {
			reason := s.reason
			if reason == "" {
				reason = "Defective item"
			}
			returns = append(returns, models.Return{
				ID:         recordID("RET", len(returns)+1),
				OrderID:    order.ID,
				SellerID:   s.seller,
				Reason:     reason,
				ReturnDate: order.DeliveredDate.AddDate(0, 0, 2),
			})
		}
		if s.rating > 0 {
			ratings = append(ratings, models.Rating{
				ID:       recordID("RAT", len(ratings)+1),
				OrderID:  order.ID,
				SellerID: s.seller,
				Score:    s.rating,
			})
		}
		orders = append(orders, order)
	}
	return models.NewSnapshot(sellers, orders, ratings, returns)
}

func orderID(n int) string {
	return recordID("ORD", n)
}

func recordID(prefix string, n int) string {
	return fmt.Sprintf("%s-%06d", prefix, n)
}

func twoSellerSnapshot() *models.Snapshot {
	sellers := []models.Seller{
		{ID: "SEL-0001", Name: "Acme Goods", Location: "Austin", JoinDate: day(2023, 1, 1), Specialization: "Electronics"},
		{ID: "SEL-0002", Name: "Budget Barn", Location: "Denver", JoinDate: day(2023, 6, 1), Specialization: "Toys & Games"},
	}
	return buildSnapshot(sellers, []orderSpec{
		{seller: "SEL-0001", date: day(2024, 1, 15), status: models.OrderStatusDelivered, category: "Electronics", value: 100, gapDays: 3, rating: 5},
		{seller: "SEL-0001", date: day(2024, 2, 10), status: models.OrderStatusReturned, category: "Electronics", value: 80, gapDays: 4, rating: 2, reason: "Defective item"},
		{seller: "SEL-0001", date: day(2024, 3, 5), status: models.OrderStatusCancelled, category: "Toys & Games", value: 60},
		{seller: "SEL-0002", date: day(2024, 2, 20), status: models.OrderStatusDelivered, category: "Toys & Games", value: 40, gapDays: 9, rating: 4},
	})
}

func TestFilterValidateDateRange(t *testing.T) {
	snap := twoSellerSnapshot()

	spec := FilterSpec{StartDate: day(2024, 3, 1), EndDate: day(2024, 1, 1)}
	err := spec.Validate(snap)
	require.Error(t, err)

	var filterErr *models.FilterError
	require.ErrorAs(t, err, &filterErr)
	assert.Equal(t, "date_range", filterErr.Field)
}

func TestFilterValidateUnknownSeller(t *testing.T) {
	snap := twoSellerSnapshot()

	spec := FilterSpec{SellerID: "SEL-9999"}
	err := spec.Validate(snap)
	require.Error(t, err)

	var filterErr *models.FilterError
	require.ErrorAs(t, err, &filterErr)
	assert.Equal(t, "seller_id", filterErr.Field)
}

func TestFilterValidateAcceptsEmpty(t *testing.T) {
	snap := twoSellerSnapshot()
	assert.NoError(t, FilterSpec{}.Validate(snap))
}

func TestFilterApplyConjunction(t *testing.T) {
	snap := twoSellerSnapshot()

	spec := FilterSpec{
		StartDate: day(2024, 1, 1),
		EndDate:   day(2024, 2, 28),
		Location:  "Austin",
		Category:  "Electronics",
	}
	fs := spec.Apply(snap)

	require.Len(t, fs.Sellers, 1)
	assert.Equal(t, "SEL-0001", fs.Sellers[0].ID)
	assert.Len(t, fs.Orders, 2)
	for _, o := range fs.Orders {
		assert.Equal(t, "Electronics", o.Category)
	}
}

func TestFilterApplyRetainsZeroOrderSellers(t *testing.T) {
	snap := twoSellerSnapshot()

	// SEL-0002 sold nothing in January but must stay in the set.
	spec := FilterSpec{StartDate: day(2024, 1, 1), EndDate: day(2024, 1, 31)}
	fs := spec.Apply(snap)

	assert.Len(t, fs.Sellers, 2)
	assert.Len(t, fs.Orders, 1)
	assert.Empty(t, fs.OrdersBySeller["SEL-0002"])
}

func TestFilterApplyEmptyResultIsValid(t *testing.T) {
	snap := twoSellerSnapshot()

	spec := FilterSpec{Location: "Austin", Category: "Books"}
	fs := spec.Apply(snap)

	assert.Len(t, fs.Sellers, 1)
	assert.Empty(t, fs.Orders)
}

func TestFilterApplyCarriesRatingsAndReturns(t *testing.T) {
	snap := twoSellerSnapshot()

	fs := FilterSpec{}.Apply(snap)
	assert.Len(t, fs.RatingsBySeller["SEL-0001"], 2)
	assert.Len(t, fs.ReturnsBySeller["SEL-0001"], 1)
	assert.Len(t, fs.RatingsBySeller["SEL-0002"], 1)
	assert.Empty(t, fs.ReturnsBySeller["SEL-0002"])

	// Dropping the returned order drops its rating and return too.
	fs = FilterSpec{StartDate: day(2024, 3, 1)}.Apply(snap)
	assert.Empty(t, fs.RatingsBySeller["SEL-0001"])
	assert.Empty(t, fs.ReturnsBySeller["SEL-0001"])
}

func TestFilterSignature(t *testing.T) {
	ref := day(2024, 12, 31)

	a := FilterSpec{Location: "Austin"}
	b := FilterSpec{Location: "Denver"}

	assert.Equal(t, a.Signature(1, ref), a.Signature(1, ref))
	assert.NotEqual(t, a.Signature(1, ref), b.Signature(1, ref))
	assert.NotEqual(t, a.Signature(1, ref), a.Signature(2, ref))
	assert.NotEqual(t, a.Signature(1, ref), a.Signature(1, day(2025, 1, 1)))
}
