package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sellerlytics/sellerlytics/internal/logging"
	"github.com/sellerlytics/sellerlytics/internal/models"
	"github.com/sellerlytics/sellerlytics/internal/store"
)

var (
	_ store.SellerRepository = (*SellerRepository)(nil)
	_ store.OrderRepository  = (*OrderRepository)(nil)
	_ store.RatingRepository = (*RatingRepository)(nil)
	_ store.ReturnRepository = (*ReturnRepository)(nil)
)

const schema = `
CREATE TABLE IF NOT EXISTS sellers (
    seller_id               TEXT PRIMARY KEY,
    seller_name             TEXT NOT NULL,
    seller_location         TEXT NOT NULL,
    join_date               TIMESTAMPTZ NOT NULL,
    category_specialization TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS orders (
    order_id         TEXT PRIMARY KEY,
    seller_id        TEXT NOT NULL REFERENCES sellers (seller_id),
    order_date       TIMESTAMPTZ NOT NULL,
    shipped_date     TIMESTAMPTZ,
    delivered_date   TIMESTAMPTZ,
    order_status     TEXT NOT NULL,
    product_category TEXT NOT NULL,
    order_value      DOUBLE PRECISION NOT NULL
);

CREATE TABLE IF NOT EXISTS ratings (
    rating_id    TEXT PRIMARY KEY,
    order_id     TEXT NOT NULL UNIQUE REFERENCES orders (order_id),
    seller_id    TEXT NOT NULL REFERENCES sellers (seller_id),
    rating_score INT NOT NULL CHECK (rating_score BETWEEN 1 AND 5),
    review_text  TEXT
);

CREATE TABLE IF NOT EXISTS returns (
    return_id     TEXT PRIMARY KEY,
    order_id      TEXT NOT NULL UNIQUE REFERENCES orders (order_id),
    seller_id     TEXT NOT NULL REFERENCES sellers (seller_id),
    return_reason TEXT NOT NULL,
    return_date   TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_seller ON orders (seller_id);
CREATE INDEX IF NOT EXISTS idx_orders_date ON orders (order_date);
`

// Store bundles the four repositories over one connection pool.
type Store struct {
	pool    *pgxpool.Pool
	Sellers *SellerRepository
	Orders  *OrderRepository
	Ratings *RatingRepository
	Returns *ReturnRepository
}

func NewStore(ctx context.Context, cfg *models.DatabaseConfig) (*Store, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	return &Store{
		pool:    pool,
		Sellers: NewSellerRepository(pool),
		Orders:  NewOrderRepository(pool),
		Ratings: NewRatingRepository(pool),
		Returns: NewReturnRepository(pool),
	}, nil
}

// Migrate creates the four record tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schema)
	return err
}

// SaveSnapshot replaces the stored dataset with the snapshot's records.
// Order matters: sellers before orders before ratings/returns, for the
// foreign keys.
func (s *Store) SaveSnapshot(ctx context.Context, snap *models.Snapshot) error {
	for _, del := range []func(context.Context) error{
		s.Returns.DeleteAll, s.Ratings.DeleteAll, s.Orders.DeleteAll, s.Sellers.DeleteAll,
	} {
		if err := del(ctx); err != nil {
			return err
		}
	}

	if err := s.Sellers.BulkCreate(ctx, snap.Sellers); err != nil {
		return fmt.Errorf("failed to persist sellers: %w", err)
	}
	if err := s.Orders.BulkCreate(ctx, snap.Orders); err != nil {
		return fmt.Errorf("failed to persist orders: %w", err)
	}
	if err := s.Ratings.BulkCreate(ctx, snap.Ratings); err != nil {
		return fmt.Errorf("failed to persist ratings: %w", err)
	}
	if err := s.Returns.BulkCreate(ctx, snap.Returns); err != nil {
		return fmt.Errorf("failed to persist returns: %w", err)
	}

	logging.Info().
		Int("sellers", len(snap.Sellers)).
		Int("orders", len(snap.Orders)).
		Msg("snapshot persisted")
	return nil
}

// LoadSnapshot reads the stored dataset back as a fresh snapshot. This is
// the ingestion path for data produced outside the generator; records are
// assumed to satisfy the model invariants already.
func (s *Store) LoadSnapshot(ctx context.Context) (*models.Snapshot, error) {
	sellers, err := s.Sellers.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sellers: %w", err)
	}
	orders, err := s.Orders.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	ratings, err := s.Ratings.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ratings: %w", err)
	}
	returns, err := s.Returns.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load returns: %w", err)
	}

	return models.NewSnapshot(sellers, orders, ratings, returns), nil
}

func (s *Store) Close() {
	s.pool.Close()
}
