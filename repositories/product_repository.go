package repositories

import (
	"context"
	"fmt"
	"strings"

	"free-gift-coupon/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, name, description, price, is_active, created_at, updated_at`

func (r *ProductRepository) GetByID(ctx context.Context, id models.ProductID) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p models.Product
	err := r.db.QueryRow(ctx, query, int64(id)).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

func (r *ProductRepository) GetByIDs(ctx context.Context, ids []models.ProductID) (map[models.ProductID]models.Product, error) {
	products := make(map[models.ProductID]models.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	raw := make([]int64, len(ids))
	for i, id := range ids {
		raw[i] = int64(id)
	}

	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products WHERE id = ANY($1)`, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products[p.ID] = p
	}
	return products, rows.Err()
}

// Exists reports whether id names an active product.
func (r *ProductRepository) Exists(ctx context.Context, id models.ProductID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM products WHERE id = $1 AND is_active = true)`, int64(id),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check product: %w", err)
	}
	return exists, nil
}

// Search matches active products by name or exact id, the way the coupon form's product picker does.
func (r *ProductRepository) Search(ctx context.Context, term string, limit int) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
	          WHERE is_active = true AND (name ILIKE $1 OR CAST(id AS TEXT) = $2)
	          ORDER BY name LIMIT $3`

	rows, err := r.db.Query(ctx, query, "%"+escapeLike(term)+"%", term, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes term match literally inside an ILIKE pattern.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
