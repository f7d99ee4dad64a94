package models

import "time"

// FreeProductMetaKey is the coupon metadata field holding the linked product id.
const FreeProductMetaKey = "freeproductid"

// NoFreeProductLabel is shown for coupons without a linked product.
const NoFreeProductLabel = "No free product"

type Coupon struct {
	ID              int        `json:"id"`
	Code            string     `json:"code"`
	Description     string     `json:"description"`
	IsActive        bool       `json:"is_active"`
	FreeProductID   *ProductID `json:"free_product_id,omitempty"`
	FreeProductName string     `json:"free_product"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// CouponFreeProductLink associates a coupon with the one product it grants.
type CouponFreeProductLink struct {
	CouponID   int       `json:"coupon_id"`
	CouponCode string    `json:"coupon_code"`
	ProductID  ProductID `json:"product_id"`
}
