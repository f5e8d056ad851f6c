package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankingRows() []SellerKPI {
	return []SellerKPI{
		{SellerID: "SEL-0001", TotalOrders: 50, TotalRevenue: 5000, AverageRating: 4.5, ReturnRate: 5, CancellationRate: 2},
		{SellerID: "SEL-0002", TotalOrders: 40, TotalRevenue: 5000, AverageRating: 4.8, ReturnRate: 3, CancellationRate: 1},
		{SellerID: "SEL-0003", TotalOrders: 60, TotalRevenue: 3000, AverageRating: 3.2, ReturnRate: 20, CancellationRate: 8},
		{SellerID: "SEL-0004", TotalOrders: 9, TotalRevenue: 9000, AverageRating: 5.0, ReturnRate: 0, CancellationRate: 0},
		{SellerID: "SEL-0005", TotalOrders: 30, TotalRevenue: 1000, AverageRating: 2.8, ReturnRate: 20, CancellationRate: 12},
	}
}

func TestTopSellersOrderingAndTieBreaks(t *testing.T) {
	rows := rankingRows()

	top := TopSellers(rows, 10, 20)
	require.Len(t, top, 4)

	// SEL-0004 has the most revenue but only 9 orders, so it is ineligible.
	// The 5000-revenue tie breaks on average rating.
	assert.Equal(t, "SEL-0002", top[0].SellerID)
	assert.Equal(t, "SEL-0001", top[1].SellerID)
	assert.Equal(t, "SEL-0003", top[2].SellerID)
	assert.Equal(t, "SEL-0005", top[3].SellerID)
}

func TestTopSellersEligibilityBoundary(t *testing.T) {
	rows := []SellerKPI{
		{SellerID: "SEL-0001", TotalOrders: 10, TotalRevenue: 100},
		{SellerID: "SEL-0002", TotalOrders: 9, TotalRevenue: 900},
	}

	top := TopSellers(rows, 10, 20)
	require.Len(t, top, 1)
	assert.Equal(t, "SEL-0001", top[0].SellerID)
}

func TestTopSellersLimit(t *testing.T) {
	rows := rankingRows()
	top := TopSellers(rows, 10, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "SEL-0002", top[0].SellerID)
}

func TestUnderperformersOrderingAndTieBreaks(t *testing.T) {
	rows := rankingRows()

	under := Underperformers(rows, 10, 20)
	require.Len(t, under, 4)

	// SEL-0003 and SEL-0005 tie on return rate; the higher cancellation
	// rate ranks worse.
	assert.Equal(t, "SEL-0005", under[0].SellerID)
	assert.Equal(t, "SEL-0003", under[1].SellerID)
	assert.Equal(t, "SEL-0001", under[2].SellerID)
	assert.Equal(t, "SEL-0002", under[3].SellerID)
}

func TestTopSellersReturnRateTieBreak(t *testing.T) {
	rows := []SellerKPI{
		{SellerID: "SEL-0001", TotalOrders: 20, TotalRevenue: 100, AverageRating: 4, ReturnRate: 8},
		{SellerID: "SEL-0002", TotalOrders: 20, TotalRevenue: 100, AverageRating: 4, ReturnRate: 3},
	}

	top := TopSellers(rows, 10, 20)
	require.Len(t, top, 2)
	assert.Equal(t, "SEL-0002", top[0].SellerID)
}

func TestRankingsFinalTieBreakIsSellerID(t *testing.T) {
	rows := []SellerKPI{
		{SellerID: "SEL-0002", TotalOrders: 20, TotalRevenue: 100, AverageRating: 4, ReturnRate: 5, CancellationRate: 2},
		{SellerID: "SEL-0001", TotalOrders: 20, TotalRevenue: 100, AverageRating: 4, ReturnRate: 5, CancellationRate: 2},
	}

	top := TopSellers(rows, 10, 20)
	assert.Equal(t, "SEL-0001", top[0].SellerID)

	under := Underperformers(rows, 10, 20)
	assert.Equal(t, "SEL-0001", under[0].SellerID)
}

func TestRankingsDoNotMutateInput(t *testing.T) {
	rows := rankingRows()
	TopSellers(rows, 10, 20)
	assert.Equal(t, "SEL-0001", rows[0].SellerID)
}
