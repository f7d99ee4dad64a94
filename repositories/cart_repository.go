package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"free-gift-coupon/models"

	"github.com/redis/go-redis/v9"
)

// ErrCartConflict is returned when concurrent writers keep invalidating an update.
var ErrCartConflict = errors.New("cart was modified concurrently")

const maxCartRetries = 5

// cartGetter is satisfied by both *redis.Client and *redis.Tx.
type cartGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// CartRepository keeps shopper carts as JSON documents in Redis, one key per user.
type CartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCartRepository(client *redis.Client, ttl time.Duration) *CartRepository {
	return &CartRepository{client: client, ttl: ttl}
}

func cartKey(userID int) string {
	return fmt.Sprintf("cart:%d", userID)
}

// Load returns the stored cart, or an empty one when none exists.
func (r *CartRepository) Load(ctx context.Context, userID int) (*models.Cart, error) {
	return loadCart(ctx, r.client, userID)
}

func (r *CartRepository) Save(ctx context.Context, cart *models.Cart) error {
	raw, err := encodeCart(cart)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, cartKey(cart.UserID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Update loads the cart under WATCH, applies fn and writes the cart back in a
// MULTI block when fn reports a change. If another writer touches the cart in
// between, the whole cycle runs again on fresh state.
func (r *CartRepository) Update(ctx context.Context, userID int, fn func(*models.Cart) (bool, error)) (*models.Cart, error) {
	key := cartKey(userID)
	var cart *models.Cart

	txf := func(tx *redis.Tx) error {
		current, err := loadCart(ctx, tx, userID)
		if err != nil {
			return err
		}
		changed, err := fn(current)
		if err != nil {
			return err
		}
		cart = current
		if !changed {
			return nil
		}

		raw, err := encodeCart(current)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, r.ttl)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxCartRetries; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return nil, err
		}
	}
	return nil, ErrCartConflict
}

func loadCart(ctx context.Context, client cartGetter, userID int) (*models.Cart, error) {
	raw, err := client.Get(ctx, cartKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.NewCart(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	cart := models.NewCart(userID)
	if err := json.Unmarshal(raw, cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	if cart.Items == nil {
		cart.Items = []models.CartLine{}
	}
	if cart.AppliedCoupons == nil {
		cart.AppliedCoupons = []string{}
	}
	return cart, nil
}

func encodeCart(cart *models.Cart) ([]byte, error) {
	cart.UpdatedAt = time.Now()
	raw, err := json.Marshal(cart)
	if err != nil {
		return nil, fmt.Errorf("failed to encode cart: %w", err)
	}
	return raw, nil
}
