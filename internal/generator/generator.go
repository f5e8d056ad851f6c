package generator

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/sellerlytics/sellerlytics/internal/models"
)

// Generator produces self-consistent marketplace snapshots. A hidden
// per-seller quality latent drives every correlated sampling step: order
// volume, cancellation and return probabilities, delivery lateness, and
// rating skew all derive from the same value, so top performers and
// underperformers emerge without explicit labeling.
type Generator struct {
	cfg     *models.Config
	rng     *rand.Rand
	factory *SellerFactory

	// Progress, when set, is called after each seller's records are built.
	Progress func(done, total int)
}

func New(cfg *models.Config) *Generator {
	return &Generator{
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		factory: NewSellerFactory(cfg.Seed),
	}
}

// Generate builds a snapshot satisfying every record invariant. Identical
// config (seed included) yields identical records.
func (g *Generator) Generate() (*models.Snapshot, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}

	days, dayWeights := g.buildDayWeights()
	months := g.cfg.EndDate.Sub(g.cfg.StartDate).Hours() / 24 / 30.44

	sellers := make([]models.Seller, g.cfg.SellerCount)
	latents := make([]float64, g.cfg.SellerCount)
	var orders []models.Order
	var ratings []models.Rating
	var returns []models.Return

	orderSeq, ratingSeq, returnSeq := 0, 0, 0

	for i := range sellers {
		sellers[i] = g.factory.CreateSeller(g.cfg, g.rng, i)
		q := g.rng.Float64()
		latents[i] = q

		count := g.orderCount(q, months)
		for n := 0; n < count; n++ {
			orderSeq++
			order := g.buildOrder(orderSeq, &sellers[i], q, days, dayWeights)

			if order.Status == models.OrderStatusReturned {
				returnSeq++
				returns = append(returns, g.buildReturn(returnSeq, &order))
			}
			if g.shouldRate(&order) {
				ratingSeq++
				ratings = append(ratings, g.buildRating(ratingSeq, &order, q))
			}
			orders = append(orders, order)
		}

		if g.Progress != nil {
			g.Progress(i+1, len(sellers))
		}
	}

	return models.NewSnapshot(sellers, orders, ratings, returns), nil
}

// buildDayWeights precomputes the sampling weight of every day in the
// window: day-of-week times monthly seasonal weight.
func (g *Generator) buildDayWeights() ([]time.Time, []float64) {
	var days []time.Time
	var weights []float64
	for d := g.cfg.StartDate; !d.After(g.cfg.EndDate); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
		weights = append(weights, dayOfWeekWeights[d.Weekday()]*monthWeights[d.Month()])
	}
	return days, weights
}

// orderCount scales the configured monthly volume by the quality latent;
// higher-quality sellers attract proportionally more demand.
func (g *Generator) orderCount(q, months float64) int {
	expected := g.cfg.OrdersPerSellerMonth * months * (0.4 + 1.2*q)
	noise := 0.8 + 0.4*g.rng.Float64()
	return int(math.Round(expected * noise))
}

func (g *Generator) buildOrder(seq int, seller *models.Seller, q float64, days []time.Time, dayWeights []float64) models.Order {
	orderDate := days[weightedIndex(g.rng, dayWeights)]
	category := g.pickCategory(seller)
	params, ok := categoryValueParams[category]
	if !ok {
		params = defaultValueParams
	}

	order := models.Order{
		ID:        fmt.Sprintf("ORD-%06d", seq),
		SellerID:  seller.ID,
		OrderDate: orderDate,
		Status:    g.pickStatus(q),
		Category:  category,
		Value:     sampleLogNormal(g.rng, params.Mu, params.Sigma, minOrderValue, maxOrderValue),
	}

	if order.Status != models.OrderStatusCancelled {
		shipped := orderDate.AddDate(0, 0, 1+g.rng.Intn(3))
		delivered := shipped.AddDate(0, 0, g.deliveryGapDays(q))
		order.ShippedDate = &shipped
		order.DeliveredDate = &delivered
	}
	return order
}

func (g *Generator) pickCategory(seller *models.Seller) string {
	if g.rng.Float64() < specializationShare || len(g.cfg.Categories) == 1 {
		return seller.Specialization
	}
	for {
		c := g.cfg.Categories[g.rng.Intn(len(g.cfg.Categories))]
		if c != seller.Specialization {
			return c
		}
	}
}

// pickStatus samples the terminal order status. Cancellation and return
// probabilities shrink as quality rises.
func (g *Generator) pickStatus(q float64) string {
	pCancel := 0.10 - 0.07*q
	pReturn := 0.12 - 0.09*q
	r := g.rng.Float64()
	switch {
	case r < pCancel:
		return models.OrderStatusCancelled
	case r < pCancel+pReturn:
		return models.OrderStatusReturned
	default:
		return models.OrderStatusDelivered
	}
}

// deliveryGapDays samples the shipment-to-delivery gap in days, 1..10. The
// mean rises as quality falls, so low-quality sellers breach the on-time
// threshold more often.
func (g *Generator) deliveryGapDays(q float64) int {
	gap := sampleNormal(g.rng, 3+5*(1-q), 2)
	return int(clamp(math.Round(gap), 1, 10))
}

func (g *Generator) buildReturn(seq int, order *models.Order) models.Return {
	reasons := g.cfg.ReturnReasons
	weights := make([]float64, len(reasons))
	bias := categoryReasonBias[order.Category]
	for i, reason := range reasons {
		weights[i] = 1.0
		if w, ok := bias[reason]; ok {
			weights[i] = w
		}
	}

	return models.Return{
		ID:         fmt.Sprintf("RET-%06d", seq),
		OrderID:    order.ID,
		SellerID:   order.SellerID,
		Reason:     reasons[weightedIndex(g.rng, weights)],
		ReturnDate: order.DeliveredDate.AddDate(0, 0, 1+g.rng.Intn(7)),
	}
}

func (g *Generator) shouldRate(order *models.Order) bool {
	p := g.cfg.RatingFraction
	if order.Status == models.OrderStatusCancelled {
		p *= 0.4
	}
	return g.rng.Float64() < p
}

// buildRating samples a score skewed toward 4-5 for high-quality sellers and
// shifted down for cancelled and returned orders. This is what makes average
// rating and return rate negatively correlated across the snapshot.
func (g *Generator) buildRating(seq int, order *models.Order, q float64) models.Rating {
	mean := 3.4 + 1.4*q
	switch order.Status {
	case models.OrderStatusReturned:
		mean -= 1.5
	case models.OrderStatusCancelled:
		mean -= 1.0
	}
	score := int(clamp(math.Round(sampleNormal(g.rng, mean, 0.8)), 1, 5))

	rating := models.Rating{
		ID:       fmt.Sprintf("RAT-%06d", seq),
		OrderID:  order.ID,
		SellerID: order.SellerID,
		Score:    score,
	}
	if g.rng.Float64() < 0.3 {
		rating.Review = g.factory.ReviewText()
	}
	return rating
}
