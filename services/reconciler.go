package services

import (
	"context"
	"fmt"
	"strings"

	"free-gift-coupon/metrics"
	"free-gift-coupon/models"

	"go.uber.org/zap"
)

// CartSession is the slice of cart behaviour the reconciler needs.
type CartSession interface {
	AppliedCouponCodes() []string
	Lines() []models.CartLine
	AddGiftLine(productID models.ProductID, quantity int) string
	RemoveLine(key string) bool
	SetLineQuantity(key string, quantity int) bool
}

type ProductCatalog interface {
	Exists(ctx context.Context, id models.ProductID) (bool, error)
}

// Reconciler keeps coupon gift lines in a cart consistent with the applied coupons.
type Reconciler struct {
	catalog       ProductCatalog
	log           *zap.Logger
	metrics       *metrics.Gifts
	clampQuantity bool
}

type ReconcilerOption func(*Reconciler)

// WithQuantityClamp resets gift lines to quantity 1 on every pass.
func WithQuantityClamp(enabled bool) ReconcilerOption {
	return func(r *Reconciler) {
		r.clampQuantity = enabled
	}
}

func WithMetrics(m *metrics.Gifts) ReconcilerOption {
	return func(r *Reconciler) {
		r.metrics = m
	}
}

func NewReconciler(catalog ProductCatalog, log *zap.Logger, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		catalog: catalog,
		log:     log,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	return r
}

// Reconcile runs one pass over the cart.
//
// Presence is tracked per product: a product is wanted when any coupon linked
// to it is applied, so two coupons sharing a gift yield one line and removing
// one of them keeps the line. Only the first line of a product is removed when
// it is no longer wanted, whether or not the shopper added it. Gift lines whose
// product has no link at all are removed. Products missing from the catalog are skipped.
//
// On error the cart may be partially mutated and should not be persisted.
func (r *Reconciler) Reconcile(ctx context.Context, cart CartSession, links []models.CouponFreeProductLink) (*models.ReconcileResult, error) {
	result := &models.ReconcileResult{}

	applied := make(map[string]struct{}, len(cart.AppliedCouponCodes()))
	for _, code := range cart.AppliedCouponCodes() {
		applied[strings.ToLower(code)] = struct{}{}
	}

	var products []models.ProductID
	wanted := make(map[models.ProductID]bool)
	for _, link := range links {
		if link.ProductID.IsZero() {
			continue
		}
		if _, seen := wanted[link.ProductID]; !seen {
			products = append(products, link.ProductID)
			wanted[link.ProductID] = false
		}
		if _, ok := applied[strings.ToLower(link.CouponCode)]; ok {
			wanted[link.ProductID] = true
		}
	}

	for _, productID := range products {
		line, present := firstLine(cart.Lines(), productID)

		switch {
		case wanted[productID] && !present:
			exists, err := r.catalog.Exists(ctx, productID)
			if err != nil {
				r.metrics.Fail()
				return result, fmt.Errorf("failed to look up free product %d: %w", productID, err)
			}
			if !exists {
				r.log.Warn("Free product no longer exists, skipping", zap.Int64("product_id", int64(productID)))
				result.Skipped = append(result.Skipped, productID)
				continue
			}
			key := cart.AddGiftLine(productID, 1)
			r.log.Info("Free product added to cart",
				zap.Int64("product_id", int64(productID)), zap.String("line_key", key))
			result.Added = append(result.Added, productID)

		case !wanted[productID] && present:
			if cart.RemoveLine(line.Key) {
				r.log.Info("Free product removed from cart",
					zap.Int64("product_id", int64(productID)), zap.String("line_key", line.Key))
				result.Removed = append(result.Removed, productID)
			}

		case wanted[productID] && present && r.clampQuantity && line.Quantity != 1:
			if cart.SetLineQuantity(line.Key, 1) {
				result.Clamped = append(result.Clamped, productID)
			}
		}
	}

	// Gift lines left behind by a link that was changed or deleted.
	for _, line := range append([]models.CartLine(nil), cart.Lines()...) {
		if _, linked := wanted[line.ProductID]; linked || !line.IsGift {
			continue
		}
		if cart.RemoveLine(line.Key) {
			r.log.Info("Orphaned free product removed from cart",
				zap.Int64("product_id", int64(line.ProductID)), zap.String("line_key", line.Key))
			result.Removed = append(result.Removed, line.ProductID)
		}
	}

	r.metrics.Observe(len(result.Added), len(result.Removed), len(result.Skipped), len(result.Clamped))
	return result, nil
}

func firstLine(lines []models.CartLine, productID models.ProductID) (models.CartLine, bool) {
	for _, line := range lines {
		if line.ProductID == productID {
			return line, true
		}
	}
	return models.CartLine{}, false
}
