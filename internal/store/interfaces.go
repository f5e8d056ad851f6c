// Package store defines the persistence interfaces for snapshot records.
// The analytics engine never touches these; they serve the external
// ingestion path and the generate command's optional persistence.
package store

import (
	"context"

	"github.com/sellerlytics/sellerlytics/internal/models"
)

type SellerRepository interface {
	BulkCreate(ctx context.Context, sellers []models.Seller) error
	GetAll(ctx context.Context) ([]models.Seller, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type OrderRepository interface {
	BulkCreate(ctx context.Context, orders []models.Order) error
	GetAll(ctx context.Context) ([]models.Order, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type RatingRepository interface {
	BulkCreate(ctx context.Context, ratings []models.Rating) error
	GetAll(ctx context.Context) ([]models.Rating, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type ReturnRepository interface {
	BulkCreate(ctx context.Context, returns []models.Return) error
	GetAll(ctx context.Context) ([]models.Return, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}
