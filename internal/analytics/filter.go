package analytics

import (
	"fmt"
	"time"

	"github.com/sellerlytics/sellerlytics/internal/models"
)

// FilterSpec narrows a query to a date range over order_date, a seller
// location, a product category, and/or a single seller. Zero values mean
// "no constraint"; supplied predicates combine as a conjunction.
type FilterSpec struct {
	StartDate time.Time `json:"start_date,omitempty"`
	EndDate   time.Time `json:"end_date,omitempty"`
	Location  string    `json:"location,omitempty"`
	Category  string    `json:"category,omitempty"`
	SellerID  string    `json:"seller_id,omitempty"`
}

// Validate surfaces filter mistakes instead of silently returning empty
// results: a typo'd seller id would otherwise be indistinguishable from a
// seller with no orders.
func (f FilterSpec) Validate(snap *models.Snapshot) error {
	if !f.StartDate.IsZero() && !f.EndDate.IsZero() && f.EndDate.Before(f.StartDate) {
		return &models.FilterError{Field: "date_range", Constraint: "end date before start date"}
	}
	if f.SellerID != "" && snap.Seller(f.SellerID) == nil {
		return &models.FilterError{Field: "seller_id", Constraint: fmt.Sprintf("seller %q not in snapshot", f.SellerID)}
	}
	return nil
}

// Signature is the canonical, order-independent cache key for this filter
// against a given snapshot version and reference date.
func (f FilterSpec) Signature(version uint64, referenceDate time.Time) string {
	fmtDate := func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("2006-01-02")
	}
	return fmt.Sprintf("v=%d|ref=%s|start=%s|end=%s|loc=%s|cat=%s|seller=%s",
		version, fmtDate(referenceDate), fmtDate(f.StartDate), fmtDate(f.EndDate),
		f.Location, f.Category, f.SellerID)
}

func (f FilterSpec) matchOrder(o *models.Order) bool {
	if !f.StartDate.IsZero() && o.OrderDate.Before(f.StartDate) {
		return false
	}
	if !f.EndDate.IsZero() && o.OrderDate.After(f.EndDate) {
		return false
	}
	if f.Category != "" && o.Category != f.Category {
		return false
	}
	return true
}

func (f FilterSpec) matchSeller(s *models.Seller) bool {
	if f.SellerID != "" && s.ID != f.SellerID {
		return false
	}
	if f.Location != "" && s.Location != f.Location {
		return false
	}
	return true
}

// FilteredSet is the subset of a snapshot selected by a filter: the retained
// sellers, their matching orders, and the ratings and returns whose orders
// survived. Sellers with zero matching orders stay in the set so downstream
// tables can zero-fill them.
type FilteredSet struct {
	Snapshot *models.Snapshot
	Sellers  []*models.Seller
	Orders   []*models.Order

	OrdersBySeller  map[string][]*models.Order
	RatingsBySeller map[string][]*models.Rating
	ReturnsBySeller map[string][]*models.Return
}

// Apply evaluates the filter. It is pure: the snapshot is never mutated and
// an empty result is a valid outcome, not an error.
func (f FilterSpec) Apply(snap *models.Snapshot) *FilteredSet {
	fs := &FilteredSet{
		Snapshot:        snap,
		OrdersBySeller:  make(map[string][]*models.Order),
		RatingsBySeller: make(map[string][]*models.Rating),
		ReturnsBySeller: make(map[string][]*models.Return),
	}

	for i := range snap.Sellers {
		seller := &snap.Sellers[i]
		if !f.matchSeller(seller) {
			continue
		}
		fs.Sellers = append(fs.Sellers, seller)

		for _, order := range snap.OrdersBySeller(seller.ID) {
			if !f.matchOrder(order) {
				continue
			}
			fs.Orders = append(fs.Orders, order)
			fs.OrdersBySeller[seller.ID] = append(fs.OrdersBySeller[seller.ID], order)

			if r := snap.RatingForOrder(order.ID); r != nil {
				fs.RatingsBySeller[seller.ID] = append(fs.RatingsBySeller[seller.ID], r)
			}
			if r := snap.ReturnForOrder(order.ID); r != nil {
				fs.ReturnsBySeller[seller.ID] = append(fs.ReturnsBySeller[seller.ID], r)
			}
		}
	}
	return fs
}
