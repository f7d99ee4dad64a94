package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ProductID identifies a catalog product. The zero value means "no product".
type ProductID int64

var ErrInvalidProductID = errors.New("product id must be a positive integer")

// ParseProductID validates an identifier coming from a form or from stored metadata.
func ParseProductID(raw string) (ProductID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrInvalidProductID
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidProductID, raw)
	}
	return ProductID(id), nil
}

func (id ProductID) IsZero() bool {
	return id <= 0
}

func (id ProductID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

type Product struct {
	ID          ProductID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int       `json:"price"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FormattedName is how admin screens label a product.
func (p Product) FormattedName() string {
	return fmt.Sprintf("%s (#%d)", p.Name, p.ID)
}
