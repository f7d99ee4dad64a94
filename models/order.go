package models

import "time"

// CouponOrder is one order that redeemed a given coupon code.
type CouponOrder struct {
	OrderID       int       `json:"order_id"`
	CustomerEmail string    `json:"customer_email"`
	Total         int       `json:"total"`
	TotalDiscount int       `json:"total_discount"`
	CreatedAt     time.Time `json:"created_at"`
}

type CouponOrderReport struct {
	CouponCode   string        `json:"coupon_code"`
	StartDate    string        `json:"start_date"`
	EndDate      string        `json:"end_date"`
	Orders       []CouponOrder `json:"orders"`
	OrderCount   int           `json:"order_count"`
	FullDiscount int           `json:"full_discount"`
}
