package models

import "time"

type Return struct {
	ID         string    `json:"return_id"`
	OrderID    string    `json:"order_id"`
	SellerID   string    `json:"seller_id"`
	Reason     string    `json:"return_reason"`
	ReturnDate time.Time `json:"return_date"`
}
