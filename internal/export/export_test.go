package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerlytics/sellerlytics/internal/models"
)

func sampleSnapshot() *models.Snapshot {
	shipped := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	delivered := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	return models.NewSnapshot(
		[]models.Seller{
			{ID: "SEL-0001", Name: "Acme Goods", Location: "Austin", JoinDate: time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC), Specialization: "Electronics"},
		},
		[]models.Order{
			{ID: "ORD-000001", SellerID: "SEL-0001", OrderDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), ShippedDate: &shipped, DeliveredDate: &delivered, Status: models.OrderStatusDelivered, Category: "Electronics", Value: 119.5},
			{ID: "ORD-000002", SellerID: "SEL-0001", OrderDate: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), Status: models.OrderStatusCancelled, Category: "Electronics", Value: 60},
		},
		[]models.Rating{
			{ID: "RAT-000001", OrderID: "ORD-000001", SellerID: "SEL-0001", Score: 5, Review: "arrived fast"},
		},
		[]models.Return{},
	)
}

func TestSnapshotTables(t *testing.T) {
	tables := SnapshotTables(sampleSnapshot())
	require.Len(t, tables, 4)

	byName := make(map[string]Table)
	for _, tbl := range tables {
		byName[tbl.Name] = tbl
	}

	orders := byName["orders"]
	require.Len(t, orders.Rows, 2)
	assert.Equal(t, []string{"ORD-000001", "SEL-0001", "2024-03-01", "2024-03-02", "2024-03-05", "delivered", "Electronics", "119.50"}, orders.Rows[0])

	// Cancelled orders have empty shipment columns, not placeholder dates.
	assert.Equal(t, "", orders.Rows[1][3])
	assert.Equal(t, "", orders.Rows[1][4])

	assert.Len(t, byName["sellers"].Rows, 1)
	assert.Len(t, byName["ratings"].Rows, 1)
	assert.Empty(t, byName["returns"].Rows)

	for _, tbl := range tables {
		for _, row := range tbl.Rows {
			assert.Len(t, row, len(tbl.Headers), "table %s row width", tbl.Name)
		}
	}
}

func TestCSVExporterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	exp := NewCSVExporter(dir)

	tbl := Table{
		Name:    "sellers",
		Headers: []string{"seller_id", "seller_name"},
		Rows:    [][]string{{"SEL-0001", "Acme Goods"}},
	}
	require.NoError(t, exp.WriteTable(tbl))
	require.NoError(t, exp.Close())

	f, err := os.Open(filepath.Join(dir, "sellers.csv"))
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, tbl.Headers, records[0])
	assert.Equal(t, tbl.Rows[0], records[1])
}

func TestJSONExporterWritesNDJSON(t *testing.T) {
	dir := t.TempDir()
	exp := NewJSONExporter(dir)

	tbl := Table{
		Name:    "ratings",
		Headers: []string{"rating_id", "rating_score"},
		Rows:    [][]string{{"RAT-000001", "5"}, {"RAT-000002", "3"}},
	}
	require.NoError(t, exp.WriteTable(tbl))

	data, err := os.ReadFile(filepath.Join(dir, "ratings.json"))
	require.NoError(t, err)

	var first map[string]string
	require.NoError(t, json.Unmarshal([]byte(splitFirstLine(string(data))), &first))
	assert.Equal(t, "RAT-000001", first["rating_id"])
	assert.Equal(t, "5", first["rating_score"])
}

func splitFirstLine(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return s[:i]
		}
	}
	return s
}
