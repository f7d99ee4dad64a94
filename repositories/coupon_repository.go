package repositories

import (
	"context"
	"errors"
	"fmt"

	"free-gift-coupon/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// CouponRepository stores coupons and their generic metadata rows.
// The free product link lives in coupon_meta under models.FreeProductMetaKey.
type CouponRepository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewCouponRepository(db *pgxpool.Pool, log *zap.Logger) *CouponRepository {
	return &CouponRepository{db: db, log: log}
}

const couponSelect = `
	SELECT c.id, c.code, c.description, c.is_active, c.created_at, c.updated_at, COALESCE(m.meta_value, '')
	FROM coupons c
	LEFT JOIN coupon_meta m ON m.coupon_id = c.id AND m.meta_key = $1`

func (r *CouponRepository) scanCoupon(row pgx.Row) (*models.Coupon, error) {
	var c models.Coupon
	var meta string
	if err := row.Scan(&c.ID, &c.Code, &c.Description, &c.IsActive, &c.CreatedAt, &c.UpdatedAt, &meta); err != nil {
		return nil, err
	}
	if id, ok := r.parseMeta(c.ID, meta); ok {
		c.FreeProductID = &id
	}
	return &c, nil
}

func (r *CouponRepository) parseMeta(couponID int, meta string) (models.ProductID, bool) {
	if meta == "" {
		return 0, false
	}
	id, err := models.ParseProductID(meta)
	if err != nil {
		r.log.Warn("Ignoring malformed free product metadata",
			zap.Int("coupon_id", couponID), zap.String("value", meta))
		return 0, false
	}
	return id, true
}

func (r *CouponRepository) List(ctx context.Context) ([]models.Coupon, error) {
	rows, err := r.db.Query(ctx, couponSelect+` ORDER BY c.created_at DESC`, models.FreeProductMetaKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query coupons: %w", err)
	}
	defer rows.Close()

	coupons := []models.Coupon{}
	for rows.Next() {
		c, err := r.scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupons = append(coupons, *c)
	}
	return coupons, rows.Err()
}

func (r *CouponRepository) GetByID(ctx context.Context, id int) (*models.Coupon, error) {
	c, err := r.scanCoupon(r.db.QueryRow(ctx, couponSelect+` WHERE c.id = $2`, models.FreeProductMetaKey, id))
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

// GetByCode finds an active coupon, ignoring letter case.
func (r *CouponRepository) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	c, err := r.scanCoupon(r.db.QueryRow(ctx,
		couponSelect+` WHERE LOWER(c.code) = LOWER($2) AND c.is_active = true`,
		models.FreeProductMetaKey, code))
	if err != nil {
		return nil, mapError(err)
	}
	return c, nil
}

func (r *CouponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	query := `
		INSERT INTO coupons (code, description, is_active, created_at, updated_at)
		VALUES ($1, $2, true, NOW(), NOW())
		RETURNING id, is_active, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, coupon.Code, coupon.Description).
		Scan(&coupon.ID, &coupon.IsActive, &coupon.CreatedAt, &coupon.UpdatedAt)
	return mapError(err)
}

// Delete removes the coupon; its metadata goes with it through the foreign key.
func (r *CouponRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CouponRepository) GetLinkedProduct(ctx context.Context, couponID int) (models.ProductID, bool, error) {
	var meta string
	err := r.db.QueryRow(ctx,
		`SELECT meta_value FROM coupon_meta WHERE coupon_id = $1 AND meta_key = $2`,
		couponID, models.FreeProductMetaKey,
	).Scan(&meta)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read coupon metadata: %w", err)
	}
	id, ok := r.parseMeta(couponID, meta)
	return id, ok, nil
}

// SaveLink upserts the coupon's free product, or clears it when productID is nil.
func (r *CouponRepository) SaveLink(ctx context.Context, couponID int, productID *models.ProductID) error {
	if productID == nil {
		_, err := r.db.Exec(ctx,
			`DELETE FROM coupon_meta WHERE coupon_id = $1 AND meta_key = $2`,
			couponID, models.FreeProductMetaKey)
		if err != nil {
			return fmt.Errorf("failed to clear free product: %w", err)
		}
		return nil
	}

	query := `
		INSERT INTO coupon_meta (coupon_id, meta_key, meta_value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (coupon_id, meta_key)
		DO UPDATE SET meta_value = EXCLUDED.meta_value, updated_at = NOW()
	`
	if _, err := r.db.Exec(ctx, query, couponID, models.FreeProductMetaKey, productID.String()); err != nil {
		return fmt.Errorf("failed to save free product: %w", err)
	}
	return nil
}

// ListLinks returns every active coupon that carries a free product.
func (r *CouponRepository) ListLinks(ctx context.Context) ([]models.CouponFreeProductLink, error) {
	query := `
		SELECT c.id, c.code, m.meta_value
		FROM coupons c
		JOIN coupon_meta m ON m.coupon_id = c.id AND m.meta_key = $1
		WHERE c.is_active = true AND m.meta_value <> ''
		ORDER BY c.id
	`
	rows, err := r.db.Query(ctx, query, models.FreeProductMetaKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query coupon links: %w", err)
	}
	defer rows.Close()

	links := []models.CouponFreeProductLink{}
	for rows.Next() {
		var l models.CouponFreeProductLink
		var meta string
		if err := rows.Scan(&l.CouponID, &l.CouponCode, &meta); err != nil {
			return nil, fmt.Errorf("failed to scan coupon link: %w", err)
		}
		id, ok := r.parseMeta(l.CouponID, meta)
		if !ok {
			continue
		}
		l.ProductID = id
		links = append(links, l)
	}
	return links, rows.Err()
}
