package services

import (
	"errors"

	"free-gift-coupon/models"
	"free-gift-coupon/repositories"
)

var (
	ErrCouponNotFound      = errors.New("coupon not found")
	ErrCouponAlreadyExists = errors.New("coupon code already exists")
	ErrCouponNotApplied    = errors.New("coupon is not applied to the cart")
	ErrInvalidCouponCode   = errors.New("coupon code is required")
	ErrProductNotFound     = errors.New("product not found")
	ErrInvalidProductID    = models.ErrInvalidProductID
	ErrCartLineNotFound    = errors.New("cart item not found")
	ErrCartConflict        = repositories.ErrCartConflict
	ErrInvalidDateRange    = errors.New("invalid date range")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
)
