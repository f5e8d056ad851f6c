package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sellerlytics/sellerlytics/internal/models"
)

type RatingRepository struct {
	pool *pgxpool.Pool
}

func NewRatingRepository(pool *pgxpool.Pool) *RatingRepository {
	return &RatingRepository{pool: pool}
}

func (r *RatingRepository) BulkCreate(ctx context.Context, ratings []models.Rating) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"ratings"},
		[]string{"rating_id", "order_id", "seller_id", "rating_score", "review_text"},
		pgx.CopyFromSlice(len(ratings), func(i int) ([]interface{}, error) {
			return []interface{}{
				ratings[i].ID,
				ratings[i].OrderID,
				ratings[i].SellerID,
				ratings[i].Score,
				ratings[i].Review,
			}, nil
		}),
	)
	return err
}

func (r *RatingRepository) GetAll(ctx context.Context) ([]models.Rating, error) {
	query := `
        SELECT
            rating_id,
            order_id,
            seller_id,
            rating_score,
            review_text
        FROM ratings
        ORDER BY rating_id
    `
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []models.Rating
	for rows.Next() {
		var rt models.Rating
		if err := rows.Scan(&rt.ID, &rt.OrderID, &rt.SellerID, &rt.Score, &rt.Review); err != nil {
			return nil, err
		}
		ratings = append(ratings, rt)
	}
	return ratings, rows.Err()
}

func (r *RatingRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM ratings").Scan(&count)
	return count, err
}

func (r *RatingRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE ratings CASCADE")
	return err
}
