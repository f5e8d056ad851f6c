package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sellerlytics/sellerlytics/internal/models"
)

type ReturnRepository struct {
	pool *pgxpool.Pool
}

func NewReturnRepository(pool *pgxpool.Pool) *ReturnRepository {
	return &ReturnRepository{pool: pool}
}

func (r *ReturnRepository) BulkCreate(ctx context.Context, returns []models.Return) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"returns"},
		[]string{"return_id", "order_id", "seller_id", "return_reason", "return_date"},
		pgx.CopyFromSlice(len(returns), func(i int) ([]interface{}, error) {
			return []interface{}{
				returns[i].ID,
				returns[i].OrderID,
				returns[i].SellerID,
				returns[i].Reason,
				returns[i].ReturnDate,
			}, nil
		}),
	)
	return err
}

func (r *ReturnRepository) GetAll(ctx context.Context) ([]models.Return, error) {
	query := `
        SELECT
            return_id,
            order_id,
            seller_id,
            return_reason,
            return_date
        FROM returns
        ORDER BY return_id
    `
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var returns []models.Return
	for rows.Next() {
		var rt models.Return
		if err := rows.Scan(&rt.ID, &rt.OrderID, &rt.SellerID, &rt.Reason, &rt.ReturnDate); err != nil {
			return nil, err
		}
		returns = append(returns, rt)
	}
	return returns, rows.Err()
}

func (r *ReturnRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM returns").Scan(&count)
	return count, err
}

func (r *ReturnRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE returns CASCADE")
	return err
}
