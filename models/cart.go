package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type CartLine struct {
	Key       string    `json:"key"`
	ProductID ProductID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	IsGift    bool      `json:"is_gift"`
	AddedAt   time.Time `json:"added_at"`
}

// Cart is a shopper's session cart. Lines keep insertion order.
type Cart struct {
	UserID         int        `json:"user_id"`
	Items          []CartLine `json:"items"`
	AppliedCoupons []string   `json:"applied_coupons"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func NewCart(userID int) *Cart {
	return &Cart{
		UserID:         userID,
		Items:          []CartLine{},
		AppliedCoupons: []string{},
	}
}

func (c *Cart) AppliedCouponCodes() []string {
	return c.AppliedCoupons
}

func (c *Cart) Lines() []CartLine {
	return c.Items
}

// AddLine appends a line and returns its key.
func (c *Cart) AddLine(productID ProductID, quantity int) string {
	return c.addLine(productID, quantity, false)
}

// AddGiftLine appends a line flagged as a coupon gift.
func (c *Cart) AddGiftLine(productID ProductID, quantity int) string {
	return c.addLine(productID, quantity, true)
}

func (c *Cart) addLine(productID ProductID, quantity int, gift bool) string {
	line := CartLine{
		Key:       uuid.NewString(),
		ProductID: productID,
		Quantity:  quantity,
		IsGift:    gift,
		AddedAt:   time.Now(),
	}
	c.Items = append(c.Items, line)
	return line.Key
}

func (c *Cart) RemoveLine(key string) bool {
	for i, line := range c.Items {
		if line.Key == key {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Cart) SetLineQuantity(key string, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].Key == key {
			c.Items[i].Quantity = quantity
			return true
		}
	}
	return false
}

func (c *Cart) Line(key string) (CartLine, bool) {
	for _, line := range c.Items {
		if line.Key == key {
			return line, true
		}
	}
	return CartLine{}, false
}

// HasCoupon compares codes case-insensitively without trimming whitespace.
func (c *Cart) HasCoupon(code string) bool {
	needle := strings.ToLower(code)
	for _, applied := range c.AppliedCoupons {
		if strings.ToLower(applied) == needle {
			return true
		}
	}
	return false
}

// ApplyCoupon records code unless a casing variant is already applied.
func (c *Cart) ApplyCoupon(code string) bool {
	if c.HasCoupon(code) {
		return false
	}
	c.AppliedCoupons = append(c.AppliedCoupons, code)
	return true
}

func (c *Cart) RemoveCoupon(code string) bool {
	needle := strings.ToLower(code)
	for i, applied := range c.AppliedCoupons {
		if strings.ToLower(applied) == needle {
			c.AppliedCoupons = append(c.AppliedCoupons[:i], c.AppliedCoupons[i+1:]...)
			return true
		}
	}
	return false
}
