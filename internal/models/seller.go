package models

import "time"

type Seller struct {
	ID             string    `json:"seller_id"`
	Name           string    `json:"seller_name"`
	Location       string    `json:"seller_location"`
	JoinDate       time.Time `json:"join_date"`
	Specialization string    `json:"category_specialization"`
}
