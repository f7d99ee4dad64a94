package services

import (
	"context"
	"strings"

	"free-gift-coupon/models"
)

const productSearchLimit = 20

type ProductService struct {
	products ProductStore
}

func NewProductService(products ProductStore) *ProductService {
	return &ProductService{products: products}
}

// Search backs the product picker on the coupon form.
func (s *ProductService) Search(ctx context.Context, term string) ([]models.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []models.Product{}, nil
	}
	return s.products.Search(ctx, term, productSearchLimit)
}
