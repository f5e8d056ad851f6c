package models

import "time"

type Order struct {
	ID            string     `json:"order_id"`
	SellerID      string     `json:"seller_id"`
	OrderDate     time.Time  `json:"order_date"`
	ShippedDate   *time.Time `json:"shipped_date,omitempty"`
	DeliveredDate *time.Time `json:"delivered_date,omitempty"`
	Status        string     `json:"order_status"` // "delivered", "cancelled", "returned"
	Category      string     `json:"product_category"`
	Value         float64    `json:"order_value"`
}

// CountsAsRevenue reports whether the order contributes to revenue totals.
// Cancelled and returned orders never do.
func (o *Order) CountsAsRevenue() bool {
	return o.Status != OrderStatusCancelled && o.Status != OrderStatusReturned
}

// ReachedDelivery reports whether the order completed a delivery, regardless
// of whether it was later returned.
func (o *Order) ReachedDelivery() bool {
	return o.Status == OrderStatusDelivered || o.Status == OrderStatusReturned
}

// DeliveredWithin reports whether delivery completed within the given number
// of days after shipment. Orders that never shipped report false.
func (o *Order) DeliveredWithin(days int) bool {
	if o.ShippedDate == nil || o.DeliveredDate == nil {
		return false
	}
	return !o.DeliveredDate.After(o.ShippedDate.AddDate(0, 0, days))
}
