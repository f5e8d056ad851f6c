package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sellerlytics/sellerlytics/internal/models"
)

type SellerRepository struct {
	pool *pgxpool.Pool
}

func NewSellerRepository(pool *pgxpool.Pool) *SellerRepository {
	return &SellerRepository{pool: pool}
}

func (r *SellerRepository) BulkCreate(ctx context.Context, sellers []models.Seller) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"sellers"},
		[]string{"seller_id", "seller_name", "seller_location", "join_date", "category_specialization"},
		pgx.CopyFromSlice(len(sellers), func(i int) ([]interface{}, error) {
			return []interface{}{
				sellers[i].ID,
				sellers[i].Name,
				sellers[i].Location,
				sellers[i].JoinDate,
				sellers[i].Specialization,
			}, nil
		}),
	)
	return err
}

func (r *SellerRepository) GetAll(ctx context.Context) ([]models.Seller, error) {
	query := `
        SELECT
            seller_id,
            seller_name,
            seller_location,
            join_date,
            category_specialization
        FROM sellers
        ORDER BY seller_id
    `
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sellers []models.Seller
	for rows.Next() {
		var s models.Seller
		if err := rows.Scan(&s.ID, &s.Name, &s.Location, &s.JoinDate, &s.Specialization); err != nil {
			return nil, err
		}
		sellers = append(sellers, s)
	}
	return sellers, rows.Err()
}

func (r *SellerRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM sellers").Scan(&count)
	return count, err
}

func (r *SellerRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE sellers CASCADE")
	return err
}
