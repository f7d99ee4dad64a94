package repositories

import (
	"context"
	"fmt"
	"time"

	"free-gift-coupon/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{db: db}
}

// ListByCouponCode returns orders that redeemed code with an order date in [start, end].
func (r *OrderRepository) ListByCouponCode(ctx context.Context, code string, start, end time.Time) ([]models.CouponOrder, error) {
	query := `
		SELECT o.id, COALESCE(u.email, ''), o.total_amount, o.total_discount, o.created_at
		FROM orders o
		INNER JOIN order_coupons oc ON oc.order_id = o.id
		LEFT JOIN users u ON u.id = o.user_id
		WHERE LOWER(oc.code) = LOWER($1)
		AND DATE(o.created_at) BETWEEN $2 AND $3
		ORDER BY o.created_at
	`
	rows, err := r.db.Query(ctx, query, code, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query coupon orders: %w", err)
	}
	defer rows.Close()

	orders := []models.CouponOrder{}
	for rows.Next() {
		var o models.CouponOrder
		if err := rows.Scan(&o.OrderID, &o.CustomerEmail, &o.Total, &o.TotalDiscount, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan coupon order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
