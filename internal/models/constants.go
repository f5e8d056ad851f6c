package models

const (
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
	OrderStatusReturned  = "returned"
)

// OrderStatuses lists every valid order status in display order.
var OrderStatuses = []string{
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusReturned,
}

var DefaultLocations = []string{
	"New York", "Los Angeles", "Chicago", "Houston", "Phoenix",
	"Philadelphia", "San Antonio", "San Diego", "Dallas", "San Jose",
}

var DefaultCategories = []string{
	"Electronics", "Fashion", "Home & Kitchen", "Books", "Toys",
	"Beauty", "Sports", "Automotive", "Grocery", "Health",
}

var DefaultReturnReasons = []string{
	"Damaged during shipping",
	"Not as described",
	"Wrong item received",
	"Changed mind",
	"Defective product",
	"Better price elsewhere",
	"Late delivery",
	"Missing parts",
}
