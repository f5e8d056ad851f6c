package models

import (
	"sort"
	"sync/atomic"
	"time"
)

var snapshotVersion atomic.Uint64

// Snapshot is one complete, immutable instance of the four record
// collections plus the lookup indexes the analytics engine reads from.
// Records must satisfy the referential invariants by construction; the
// snapshot does not re-validate them.
type Snapshot struct {
	Version uint64 `json:"version"`

	Sellers []Seller `json:"sellers"`
	Orders  []Order  `json:"orders"`
	Ratings []Rating `json:"ratings"`
	Returns []Return `json:"returns"`

	sellersByID    map[string]*Seller
	ordersBySeller map[string][]*Order
	ratingByOrder  map[string]*Rating
	returnByOrder  map[string]*Return
}

// NewSnapshot builds the indexes once and stamps a fresh version. Every call
// yields a distinct version, so cache entries keyed on a superseded snapshot
// can never collide with the replacement.
func NewSnapshot(sellers []Seller, orders []Order, ratings []Rating, returns []Return) *Snapshot {
	s := &Snapshot{
		Version:        snapshotVersion.Add(1),
		Sellers:        sellers,
		Orders:         orders,
		Ratings:        ratings,
		Returns:        returns,
		sellersByID:    make(map[string]*Seller, len(sellers)),
		ordersBySeller: make(map[string][]*Order, len(sellers)),
		ratingByOrder:  make(map[string]*Rating, len(ratings)),
		returnByOrder:  make(map[string]*Return, len(returns)),
	}
	for i := range sellers {
		s.sellersByID[sellers[i].ID] = &sellers[i]
	}
	for i := range orders {
		o := &orders[i]
		s.ordersBySeller[o.SellerID] = append(s.ordersBySeller[o.SellerID], o)
	}
	for i := range ratings {
		s.ratingByOrder[ratings[i].OrderID] = &ratings[i]
	}
	for i := range returns {
		s.returnByOrder[returns[i].OrderID] = &returns[i]
	}
	return s
}

func (s *Snapshot) Seller(id string) *Seller {
	return s.sellersByID[id]
}

func (s *Snapshot) OrdersBySeller(id string) []*Order {
	return s.ordersBySeller[id]
}

func (s *Snapshot) RatingForOrder(orderID string) *Rating {
	return s.ratingByOrder[orderID]
}

func (s *Snapshot) ReturnForOrder(orderID string) *Return {
	return s.returnByOrder[orderID]
}

// DateRange returns the earliest and latest order dates in the snapshot.
// Both are zero when the snapshot holds no orders.
func (s *Snapshot) DateRange() (min, max time.Time) {
	for i := range s.Orders {
		d := s.Orders[i].OrderDate
		if min.IsZero() || d.Before(min) {
			min = d
		}
		if d.After(max) {
			max = d
		}
	}
	return min, max
}

// Locations returns the distinct seller locations, sorted.
func (s *Snapshot) Locations() []string {
	return distinct(len(s.Sellers), func(i int) string { return s.Sellers[i].Location })
}

// Categories returns the distinct product categories present in orders, sorted.
func (s *Snapshot) Categories() []string {
	return distinct(len(s.Orders), func(i int) string { return s.Orders[i].Category })
}

func distinct(n int, key func(int) string) []string {
	seen := make(map[string]bool, n)
	var out []string
	for i := 0; i < n; i++ {
		k := key(i)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
