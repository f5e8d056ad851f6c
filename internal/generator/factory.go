package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jaswdr/faker"

	"github.com/sellerlytics/sellerlytics/internal/models"
)

type SellerFactory struct {
	fake faker.Faker
}

func NewSellerFactory(seed int64) *SellerFactory {
	return &SellerFactory{fake: faker.NewWithSeed(rand.NewSource(seed))}
}

// CreateSeller builds the i-th seller. The join date is uniform across the
// configured window so cohort effects show up in days_since_joining.
func (sf *SellerFactory) CreateSeller(cfg *models.Config, rng *rand.Rand, i int) models.Seller {
	window := cfg.EndDate.Sub(cfg.StartDate)
	joinOffset := time.Duration(rng.Int63n(int64(window)))
	joinDate := cfg.StartDate.Add(joinOffset).Truncate(24 * time.Hour)

	return models.Seller{
		ID:             fmt.Sprintf("SEL-%04d", i+1),
		Name:           sf.fake.Company().Name(),
		Location:       cfg.Locations[rng.Intn(len(cfg.Locations))],
		JoinDate:       joinDate,
		Specialization: cfg.Categories[rng.Intn(len(cfg.Categories))],
	}
}

// ReviewText produces a short free-text review. Seeded alongside the seller
// names so snapshots stay reproducible.
func (sf *SellerFactory) ReviewText() string {
	return sf.fake.Lorem().Sentence(sf.fake.IntBetween(4, 12))
}
