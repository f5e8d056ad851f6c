package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sellerlytics/sellerlytics/internal/models"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) BulkCreate(ctx context.Context, orders []models.Order) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"orders"},
		[]string{
			"order_id", "seller_id", "order_date", "shipped_date", "delivered_date",
			"order_status", "product_category", "order_value",
		},
		pgx.CopyFromSlice(len(orders), func(i int) ([]interface{}, error) {
			return []interface{}{
				orders[i].ID,
				orders[i].SellerID,
				orders[i].OrderDate,
				orders[i].ShippedDate,
				orders[i].DeliveredDate,
				orders[i].Status,
				orders[i].Category,
				orders[i].Value,
			}, nil
		}),
	)
	return err
}

func (r *OrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	query := `
        SELECT
            order_id,
            seller_id,
            order_date,
            shipped_date,
            delivered_date,
            order_status,
            product_category,
            order_value
        FROM orders
        ORDER BY order_id
    `
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.SellerID, &o.OrderDate, &o.ShippedDate, &o.DeliveredDate, &o.Status, &o.Category, &o.Value); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM orders").Scan(&count)
	return count, err
}

func (r *OrderRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE orders CASCADE")
	return err
}
