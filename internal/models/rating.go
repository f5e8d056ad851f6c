package models

type Rating struct {
	ID       string `json:"rating_id"`
	OrderID  string `json:"order_id"`
	SellerID string `json:"seller_id"`
	Score    int    `json:"rating_score"` // 1..5
	Review   string `json:"review_text,omitempty"`
}
