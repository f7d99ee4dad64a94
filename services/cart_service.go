package services

import (
	"context"
	"errors"
	"fmt"

	"free-gift-coupon/models"
	"free-gift-coupon/repositories"

	"go.uber.org/zap"
)

// CartStore applies fn to the stored cart and persists it when fn reports a change.
// fn may run more than once if the cart is written concurrently.
type CartStore interface {
	Update(ctx context.Context, userID int, fn func(*models.Cart) (bool, error)) (*models.Cart, error)
}

type LinkSource interface {
	ListLinks(ctx context.Context) ([]models.CouponFreeProductLink, error)
}

// CartService owns the shopper cart. Every operation ends with a cart check,
// which runs the free gift reconciler before the cart is written back.
type CartService struct {
	carts      CartStore
	coupons    CouponStore
	products   ProductStore
	links      LinkSource
	reconciler *Reconciler
	log        *zap.Logger
}

func NewCartService(carts CartStore, coupons CouponStore, products ProductStore, links LinkSource, reconciler *Reconciler, log *zap.Logger) *CartService {
	return &CartService{
		carts:      carts,
		coupons:    coupons,
		products:   products,
		links:      links,
		reconciler: reconciler,
		log:        log,
	}
}

// Check is the cart-check event: reconcile and persist if anything changed.
func (s *CartService) Check(ctx context.Context, userID int) (*models.CartResponse, error) {
	return s.update(ctx, userID, nil)
}

func (s *CartService) AddItem(ctx context.Context, userID int, productID models.ProductID, quantity int) (*models.CartResponse, error) {
	exists, err := s.products.Exists(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrProductNotFound
	}

	return s.update(ctx, userID, func(cart *models.Cart) error {
		cart.AddLine(productID, quantity)
		return nil
	})
}

func (s *CartService) UpdateItem(ctx context.Context, userID int, key string, quantity int) (*models.CartResponse, error) {
	return s.update(ctx, userID, func(cart *models.Cart) error {
		if !cart.SetLineQuantity(key, quantity) {
			return ErrCartLineNotFound
		}
		return nil
	})
}

func (s *CartService) RemoveItem(ctx context.Context, userID int, key string) (*models.CartResponse, error) {
	return s.update(ctx, userID, func(cart *models.Cart) error {
		if !cart.RemoveLine(key) {
			return ErrCartLineNotFound
		}
		return nil
	})
}

// ApplyCoupon applies an active coupon. The code is kept as typed; a casing
// variant of an already applied code is a no-op.
func (s *CartService) ApplyCoupon(ctx context.Context, userID int, code string) (*models.CartResponse, error) {
	if _, err := s.coupons.GetByCode(ctx, code); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}

	return s.update(ctx, userID, func(cart *models.Cart) error {
		cart.ApplyCoupon(code)
		return nil
	})
}

func (s *CartService) RemoveCoupon(ctx context.Context, userID int, code string) (*models.CartResponse, error) {
	return s.update(ctx, userID, func(cart *models.Cart) error {
		if !cart.RemoveCoupon(code) {
			return ErrCouponNotApplied
		}
		return nil
	})
}

func (s *CartService) update(ctx context.Context, userID int, mutate func(*models.Cart) error) (*models.CartResponse, error) {
	links, err := s.links.ListLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load coupon links: %w", err)
	}

	var result *models.ReconcileResult
	cart, err := s.carts.Update(ctx, userID, func(cart *models.Cart) (bool, error) {
		dirty := false
		if mutate != nil {
			if err := mutate(cart); err != nil {
				return false, err
			}
			dirty = true
		}

		res, err := s.reconciler.Reconcile(ctx, cart, links)
		if err != nil {
			s.log.Error("Cart reconciliation failed", zap.Int("user_id", userID), zap.Error(err))
			return false, err
		}
		result = res
		return dirty || res.Changed(), nil
	})
	if err != nil {
		return nil, err
	}

	return &models.CartResponse{Cart: cart, Reconcile: result}, nil
}
