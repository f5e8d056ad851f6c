package generator

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerlytics/sellerlytics/internal/models"
)

func testConfig(seed int64, sellers int) *models.Config {
	cfg := models.DefaultConfig()
	cfg.Seed = seed
	cfg.SellerCount = sellers
	cfg.StartDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg.EndDate = time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	return cfg
}

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := testConfig(7, 20)

	a, err := New(cfg).Generate()
	require.NoError(t, err)
	b, err := New(cfg).Generate()
	require.NoError(t, err)

	// Versions differ by construction; every record must not.
	assert.Equal(t, a.Sellers, b.Sellers)
	assert.Equal(t, a.Orders, b.Orders)
	assert.Equal(t, a.Ratings, b.Ratings)
	assert.Equal(t, a.Returns, b.Returns)
}

func TestGenerateDifferentSeedsDiffer(t *testing.T) {
	a, err := New(testConfig(1, 10)).Generate()
	require.NoError(t, err)
	b, err := New(testConfig(2, 10)).Generate()
	require.NoError(t, err)

	assert.NotEqual(t, a.Sellers, b.Sellers)
}

func TestGenerateRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(1, 0)

	_, err := New(cfg).Generate()
	require.Error(t, err)

	var genErr *models.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "seller_count", genErr.Param)
}

func TestGenerateRecordInvariants(t *testing.T) {
	cfg := testConfig(99, 30)
	snap, err := New(cfg).Generate()
	require.NoError(t, err)

	require.Len(t, snap.Sellers, 30)
	require.NotEmpty(t, snap.Orders)

	sellerIDs := make(map[string]bool)
	for _, s := range snap.Sellers {
		assert.Regexp(t, `^SEL-\d{4}$`, s.ID)
		assert.False(t, sellerIDs[s.ID], "duplicate seller id %s", s.ID)
		sellerIDs[s.ID] = true

		assert.NotEmpty(t, s.Name)
		assert.Contains(t, cfg.Locations, s.Location)
		assert.Contains(t, cfg.Categories, s.Specialization)
		assert.False(t, s.JoinDate.After(cfg.EndDate))
	}

	orderIDs := make(map[string]bool)
	for i := range snap.Orders {
		o := &snap.Orders[i]
		assert.Regexp(t, `^ORD-\d{6}$`, o.ID)
		assert.False(t, orderIDs[o.ID], "duplicate order id %s", o.ID)
		orderIDs[o.ID] = true

		assert.True(t, sellerIDs[o.SellerID], "order %s references unknown seller", o.ID)
		assert.Contains(t, models.OrderStatuses, o.Status)
		assert.Contains(t, cfg.Categories, o.Category)
		assert.GreaterOrEqual(t, o.Value, 5.0)
		assert.LessOrEqual(t, o.Value, 500.0)
		assert.False(t, o.OrderDate.Before(cfg.StartDate))
		assert.False(t, o.OrderDate.After(cfg.EndDate))

		if o.Status == models.OrderStatusCancelled {
			assert.Nil(t, o.ShippedDate)
			assert.Nil(t, o.DeliveredDate)
		} else {
			require.NotNil(t, o.ShippedDate)
			require.NotNil(t, o.DeliveredDate)
			assert.True(t, o.ShippedDate.After(o.OrderDate))
			assert.True(t, o.DeliveredDate.After(*o.ShippedDate))
		}
	}

	ratedOrders := make(map[string]bool)
	for _, r := range snap.Ratings {
		assert.Regexp(t, `^RAT-\d{6}$`, r.ID)
		assert.True(t, orderIDs[r.OrderID], "rating %s references unknown order", r.ID)
		assert.True(t, sellerIDs[r.SellerID])
		assert.GreaterOrEqual(t, r.Score, 1)
		assert.LessOrEqual(t, r.Score, 5)
		assert.False(t, ratedOrders[r.OrderID], "order %s rated twice", r.OrderID)
		ratedOrders[r.OrderID] = true
	}

	returnedOrders := make(map[string]bool)
	for _, r := range snap.Returns {
		assert.Regexp(t, `^RET-\d{6}$`, r.ID)
		assert.True(t, sellerIDs[r.SellerID])
		assert.False(t, returnedOrders[r.OrderID], "order %s returned twice", r.OrderID)
		returnedOrders[r.OrderID] = true

		order := orderByID(snap, r.OrderID)
		require.NotNil(t, order, "return %s references unknown order", r.ID)
		assert.Equal(t, models.OrderStatusReturned, order.Status)
		assert.Equal(t, order.SellerID, r.SellerID)
		require.NotNil(t, order.DeliveredDate)
		assert.True(t, r.ReturnDate.After(*order.DeliveredDate))
		assert.Contains(t, cfg.ReturnReasons, r.Reason)
	}

	// Every returned order has exactly one return record.
	for i := range snap.Orders {
		if snap.Orders[i].Status == models.OrderStatusReturned {
			assert.True(t, returnedOrders[snap.Orders[i].ID], "returned order %s has no return record", snap.Orders[i].ID)
		}
	}
}

func orderByID(snap *models.Snapshot, id string) *models.Order {
	for i := range snap.Orders {
		if snap.Orders[i].ID == id {
			return &snap.Orders[i]
		}
	}
	return nil
}

// Sellers with high return rates should rate worse than sellers with low
// return rates: both derive from the same hidden quality value.
func TestGenerateQualityCorrelation(t *testing.T) {
	cfg := testConfig(42, 200)
	snap, err := New(cfg).Generate()
	require.NoError(t, err)

	type sellerStats struct {
		returnRate float64
		avgRating  float64
		orders     int
	}

	var stats []sellerStats
	for _, s := range snap.Sellers {
		orders := snap.OrdersBySeller(s.ID)
		if len(orders) < 20 {
			continue
		}
		var delivered, returned, scoreSum, scored int
		for _, o := range orders {
			switch o.Status {
			case models.OrderStatusReturned:
				returned++
			case models.OrderStatusDelivered:
				delivered++
			}
			if r := snap.RatingForOrder(o.ID); r != nil {
				scoreSum += r.Score
				scored++
			}
		}
		if delivered+returned == 0 || scored == 0 {
			continue
		}
		stats = append(stats, sellerStats{
			returnRate: float64(returned) / float64(delivered+returned),
			avgRating:  float64(scoreSum) / float64(scored),
			orders:     len(orders),
		})
	}
	require.Greater(t, len(stats), 100)

	sort.Slice(stats, func(i, j int) bool { return stats[i].returnRate < stats[j].returnRate })

	quartile := len(stats) / 4
	var lowReturn, highReturn float64
	for i := 0; i < quartile; i++ {
		lowReturn += stats[i].avgRating
		highReturn += stats[len(stats)-1-i].avgRating
	}
	lowReturn /= float64(quartile)
	highReturn /= float64(quartile)

	assert.Greater(t, lowReturn, highReturn,
		"sellers with the fewest returns should carry better ratings")
}

func TestGenerateProgressCallback(t *testing.T) {
	cfg := testConfig(5, 8)
	gen := New(cfg)

	var calls int
	var lastDone, lastTotal int
	gen.Progress = func(done, total int) {
		calls++
		lastDone, lastTotal = done, total
	}

	_, err := gen.Generate()
	require.NoError(t, err)
	assert.Equal(t, 8, calls)
	assert.Equal(t, 8, lastDone)
	assert.Equal(t, 8, lastTotal)
}

func TestSellerFactoryDeterminism(t *testing.T) {
	cfg := testConfig(3, 1)

	a, err := New(cfg).Generate()
	require.NoError(t, err)
	b, err := New(cfg).Generate()
	require.NoError(t, err)

	assert.Equal(t, a.Sellers[0].Name, b.Sellers[0].Name)
	assert.Equal(t, a.Sellers[0].JoinDate, b.Sellers[0].JoinDate)
}
